package core

// Request payload shapes, one per backend write operation.

// SignupInput registers a new farmer or buyer.
type SignupInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	State    string `json:"state,omitempty"`
	Pincode  string `json:"pincode,omitempty"`
}

// LoginInput authenticates an existing user.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AddCropInput registers a new reference crop.
type AddCropInput struct {
	CropName string `json:"cropName"`
	Category string `json:"category,omitempty"`
	Unit     string `json:"unit,omitempty"`
}

// AddMarketInput registers a new reference market.
type AddMarketInput struct {
	MarketName string `json:"marketName"`
	Location   string `json:"location,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
}

// AddPriceEntryInput reports a crop price at a market.
type AddPriceEntryInput struct {
	CropID   string  `json:"cropId"`
	MarketID string  `json:"marketId"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity,omitempty"`
	Unit     string  `json:"unit,omitempty"`
	Quality  string  `json:"quality,omitempty"`
}

// CreateListingInput offers produce for sale.
type CreateListingInput struct {
	CropID       string   `json:"cropId"`
	MarketID     string   `json:"marketId"`
	Quantity     float64  `json:"quantity"`
	Unit         string   `json:"unit"`
	PricePerUnit float64  `json:"pricePerUnit"`
	Quality      string   `json:"quality,omitempty"`
	Description  string   `json:"description,omitempty"`
	Images       []string `json:"images,omitempty"`
}

// ListingPatch is a partial listing update. Nil fields are left untouched.
type ListingPatch struct {
	Quantity     *float64  `json:"quantity,omitempty"`
	Unit         *string   `json:"unit,omitempty"`
	PricePerUnit *float64  `json:"pricePerUnit,omitempty"`
	Quality      *string   `json:"quality,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Images       *[]string `json:"images,omitempty"`
	Status       *string   `json:"status,omitempty"`
}

// AddDemandInput posts a sourcing demand.
type AddDemandInput struct {
	CropID        string  `json:"cropId"`
	MarketID      string  `json:"marketId,omitempty"`
	Quantity      float64 `json:"quantity"`
	Unit          string  `json:"unit"`
	ExpectedPrice float64 `json:"expectedPrice,omitempty"`
	Description   string  `json:"description,omitempty"`
}

// SendConnectionInput asks another user for an introduction.
type SendConnectionInput struct {
	RecipientID   string     `json:"recipientId"`
	RecipientRole Role       `json:"recipientRole"`
	Message       string     `json:"message,omitempty"`
	RelatedTo     *RelatedTo `json:"relatedTo,omitempty"`
}

// DefaultConnectionMessage is sent when a connection request carries no
// message of its own.
const DefaultConnectionMessage = "Hi, I'd like to connect with you."

// BuildConnectionRequest assembles a connection request payload, filling
// the default greeting and attaching the related listing/demand when both
// parts of the reference are present.
func BuildConnectionRequest(recipientID string, recipientRole Role, relatedType, relatedID, message string) (SendConnectionInput, error) {
	if recipientID == "" {
		return SendConnectionInput{}, ErrRecipientRequired
	}
	if !recipientRole.Valid() {
		return SendConnectionInput{}, ErrInvalidRole
	}

	if message == "" {
		message = DefaultConnectionMessage
	}

	input := SendConnectionInput{
		RecipientID:   recipientID,
		RecipientRole: recipientRole,
		Message:       message,
	}
	if relatedType != "" && relatedID != "" {
		input.RelatedTo = &RelatedTo{Type: relatedType, ID: relatedID}
	}
	return input, nil
}
