package core

import "time"

// Role identifies which side of the marketplace a user is on.
type Role string

const (
	RoleFarmer Role = "farmer"
	RoleBuyer  Role = "buyer"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleBuyer
}

func (r Role) String() string {
	return string(r)
}

// User is the canonical profile shape for both farmers and buyers.
//
// The backend serves separate farmer and buyer profile documents; this is
// the superset of both, normalized once at the API boundary.
type User struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Role        Role      `json:"role,omitempty"`
	CompanyName string    `json:"companyName,omitempty"` // buyers only
	Address     string    `json:"address,omitempty"`
	City        string    `json:"city,omitempty"`
	State       string    `json:"state,omitempty"`
	Pincode     string    `json:"pincode,omitempty"`
	Verified    bool      `json:"verified,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// UserPatch is a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	CompanyName *string `json:"companyName,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Pincode     *string `json:"pincode,omitempty"`
}

// Apply shallow-merges the patch into a copy of u and returns it.
func (p UserPatch) Apply(u User) User {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.CompanyName != nil {
		u.CompanyName = *p.CompanyName
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.State != nil {
		u.State = *p.State
	}
	if p.Pincode != nil {
		u.Pincode = *p.Pincode
	}
	return u
}

// Session is the authenticated identity held by the running client.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
	Role  Role   `json:"role"`
}

// EntityRef is a canonical {id, name} pair for a crop or market reference
// extracted from an inconsistently shaped payload.
type EntityRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Crop is a reference crop entity.
type Crop struct {
	ID        string    `json:"_id"`
	CropName  string    `json:"cropName"`
	Category  string    `json:"category,omitempty"`
	Unit      string    `json:"unit,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}

// Market is a reference mandi entity.
type Market struct {
	ID         string    `json:"_id"`
	MarketName string    `json:"marketName"`
	Location   string    `json:"location,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitzero"`
}

// VoterList records which farmers agreed or disagreed with an entry.
// One-vote-per-user is enforced by the backend, not here.
type VoterList struct {
	Agree    []string `json:"agree"`
	Disagree []string `json:"disagree"`
}

// PriceEntry is a farmer-reported crop price at a market.
//
// cropId and marketId arrive either as plain ids or as populated objects
// depending on the endpoint; they are kept raw here and resolved with
// ExtractCropInfo/ExtractMarketInfo.
type PriceEntry struct {
	ID            string     `json:"_id"`
	FarmerID      string     `json:"farmerId"`
	CropID        RawRef     `json:"cropId"`
	MarketID      RawRef     `json:"marketId"`
	Price         float64    `json:"price"`
	Unit          string     `json:"unit,omitempty"`
	Quantity      float64    `json:"quantity,omitempty"`
	Quality       string     `json:"quality,omitempty"`
	Date          string     `json:"date,omitempty"`
	AgreeCount    int        `json:"agreeCount,omitempty"`
	DisagreeCount int        `json:"disagreeCount,omitempty"`
	Voters        *VoterList `json:"voters,omitempty"`
	CreatedAt     time.Time  `json:"createdAt,omitzero"`
	UpdatedAt     time.Time  `json:"updatedAt,omitzero"`
}

// PriceStats is a backend-computed price aggregate. The client only
// displays these values.
type PriceStats struct {
	ID           string    `json:"_id"`
	CropID       RawRef    `json:"cropId"`
	MarketID     RawRef    `json:"marketId"`
	AveragePrice float64   `json:"averagePrice"`
	MinPrice     float64   `json:"minPrice"`
	MaxPrice     float64   `json:"maxPrice"`
	TotalEntries int       `json:"totalEntries"`
	LastUpdated  time.Time `json:"lastUpdated,omitzero"`
}

// FarmerListing is produce offered for sale. Status values are
// backend-defined and treated as opaque strings beyond display.
type FarmerListing struct {
	ID           string    `json:"_id"`
	FarmerID     RawRef    `json:"farmerId"`
	Farmer       *User     `json:"farmer,omitempty"`
	CropID       RawRef    `json:"cropId"`
	Crop         *Crop     `json:"crop,omitempty"`
	MarketID     RawRef    `json:"marketId"`
	Market       *Market   `json:"market,omitempty"`
	Quantity     float64   `json:"quantity"`
	Unit         string    `json:"unit"`
	PricePerUnit float64   `json:"pricePerUnit"`
	Quality      string    `json:"quality,omitempty"`
	Description  string    `json:"description,omitempty"`
	Images       []string  `json:"images,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

// BuyerDemand is produce a buyer wants to source. The backend cases the
// status key as "Status" on this entity; stdlib unmarshalling matches
// keys case-insensitively so no special handling is needed on read.
type BuyerDemand struct {
	ID            string    `json:"_id"`
	BuyerID       RawRef    `json:"buyerId"`
	Buyer         *User     `json:"buyer,omitempty"`
	CropID        RawRef    `json:"cropId"`
	Crop          *Crop     `json:"crop,omitempty"`
	MarketID      RawRef    `json:"marketId,omitempty"`
	Market        *Market   `json:"market,omitempty"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	ExpectedPrice float64   `json:"expectedPrice,omitempty"`
	Description   string    `json:"description,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt,omitzero"`
	UpdatedAt     time.Time `json:"updatedAt,omitzero"`
}

// Notification is a backend-generated message for a user.
type Notification struct {
	ID        string         `json:"_id"`
	UserID    string         `json:"userId"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Read      bool           `json:"read"`
	Data      map[string]any `json:"data,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt,omitzero"`
}

// Connection request lifecycle states. Pending transitions to accepted or
// rejected; both are terminal.
const (
	ConnectionPending  = "pending"
	ConnectionAccepted = "accepted"
	ConnectionRejected = "rejected"
)

// RelatedTo links a connection request to the listing or demand that
// prompted it.
type RelatedTo struct {
	Type string `json:"type"` // "listing" or "demand"
	ID   string `json:"id"`
}

// ConnectionRequest is a farmer-buyer introduction request.
type ConnectionRequest struct {
	ID            string     `json:"_id"`
	SenderID      string     `json:"senderId"`
	Sender        *User      `json:"sender,omitempty"`
	SenderRole    Role       `json:"senderRole"`
	RecipientID   string     `json:"recipientId"`
	Recipient     *User      `json:"recipient,omitempty"`
	RecipientRole Role       `json:"recipientRole"`
	Status        string     `json:"status"`
	Message       string     `json:"message,omitempty"`
	RelatedTo     *RelatedTo `json:"relatedTo,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt,omitzero"`
}

// Connection is an established farmer-buyer link, distinct from a pending
// ConnectionRequest.
type Connection struct {
	ID          string    `json:"_id"`
	User1ID     string    `json:"user1Id"`
	User1       *User     `json:"user1,omitempty"`
	User1Role   Role      `json:"user1Role"`
	User2ID     string    `json:"user2Id"`
	User2       *User     `json:"user2,omitempty"`
	User2Role   Role      `json:"user2Role"`
	ConnectedAt time.Time `json:"connectedAt"`
}

// UploadedImage is the result of a marketplace image upload.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}
