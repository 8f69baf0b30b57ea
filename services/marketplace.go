package services

import (
	"context"
	"io"
	"net/url"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// FarmerMarketAPI covers crop listings and their image uploads.
type FarmerMarketAPI struct {
	client *transport.Client
}

func NewFarmerMarketAPI(client *transport.Client) *FarmerMarketAPI {
	return &FarmerMarketAPI{client: client}
}

// UploadImage posts a listing image as multipart form data and returns
// the hosted URL plus the public id needed to delete it later.
func (a *FarmerMarketAPI) UploadImage(ctx context.Context, fileName string, file io.Reader) (*core.UploadedImage, error) {
	var img core.UploadedImage
	if err := a.client.Upload(ctx, "/marketplace/farmer/upload", "image", fileName, file, &img); err != nil {
		return nil, err
	}
	return &img, nil
}

// DeleteImage removes a previously uploaded image by its public id.
func (a *FarmerMarketAPI) DeleteImage(ctx context.Context, publicID string) error {
	path := "/marketplace/farmer/delete?public_id=" + url.QueryEscape(publicID)
	return a.client.Delete(ctx, path, nil)
}

// CreateListing offers produce for sale.
func (a *FarmerMarketAPI) CreateListing(ctx context.Context, input core.CreateListingInput) (*core.FarmerListing, error) {
	var listing core.FarmerListing
	if err := a.client.Post(ctx, "/marketplace/farmer/cropListing", input, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetAllListings fetches every listing on the marketplace.
func (a *FarmerMarketAPI) GetAllListings(ctx context.Context) ([]core.FarmerListing, error) {
	var listings []core.FarmerListing
	if err := a.client.Get(ctx, "/marketplace/farmer/getAllListing", &listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// GetListing fetches one listing.
func (a *FarmerMarketAPI) GetListing(ctx context.Context, listingID string) (*core.FarmerListing, error) {
	var listing core.FarmerListing
	if err := a.client.Get(ctx, "/marketplace/farmer/listing/"+url.PathEscape(listingID), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// UpdateListing patches a listing and returns the updated document.
func (a *FarmerMarketAPI) UpdateListing(ctx context.Context, listingID string, patch core.ListingPatch) (*core.FarmerListing, error) {
	var listing core.FarmerListing
	if err := a.client.Patch(ctx, "/marketplace/farmer/listing/"+url.PathEscape(listingID), patch, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

// DeleteListing removes a listing.
func (a *FarmerMarketAPI) DeleteListing(ctx context.Context, listingID string) error {
	return a.client.Delete(ctx, "/marketplace/farmer/listing/"+url.PathEscape(listingID), nil)
}

// BuyerMarketAPI covers buyer sourcing demands.
type BuyerMarketAPI struct {
	client *transport.Client
}

func NewBuyerMarketAPI(client *transport.Client) *BuyerMarketAPI {
	return &BuyerMarketAPI{client: client}
}

// AddDemand posts a new sourcing demand.
func (a *BuyerMarketAPI) AddDemand(ctx context.Context, input core.AddDemandInput) (*core.BuyerDemand, error) {
	var demand core.BuyerDemand
	if err := a.client.Post(ctx, "/marketplace/buyer/add", input, &demand); err != nil {
		return nil, err
	}
	return &demand, nil
}

// GetAllDemands fetches every demand.
func (a *BuyerMarketAPI) GetAllDemands(ctx context.Context) ([]core.BuyerDemand, error) {
	var demands []core.BuyerDemand
	if err := a.client.Get(ctx, "/marketplace/buyer/all", &demands); err != nil {
		return nil, err
	}
	return demands, nil
}

// GetDemandsByBuyer fetches one buyer's demands.
func (a *BuyerMarketAPI) GetDemandsByBuyer(ctx context.Context, buyerID string) ([]core.BuyerDemand, error) {
	var demands []core.BuyerDemand
	if err := a.client.Get(ctx, "/marketplace/buyer/buyer/"+url.PathEscape(buyerID), &demands); err != nil {
		return nil, err
	}
	return demands, nil
}

// GetDemandsByStatus fetches demands in a given backend-defined status.
func (a *BuyerMarketAPI) GetDemandsByStatus(ctx context.Context, status string) ([]core.BuyerDemand, error) {
	var demands []core.BuyerDemand
	if err := a.client.Get(ctx, "/marketplace/buyer/status/"+url.PathEscape(status), &demands); err != nil {
		return nil, err
	}
	return demands, nil
}

// UpdateDemandStatus moves a demand to a new status. The backend expects
// the key cased as "Status" on this route.
func (a *BuyerMarketAPI) UpdateDemandStatus(ctx context.Context, demandID, status string) (*core.BuyerDemand, error) {
	body := map[string]string{"Status": status}
	var demand core.BuyerDemand
	if err := a.client.Patch(ctx, "/marketplace/buyer/updateStatus/"+url.PathEscape(demandID), body, &demand); err != nil {
		return nil, err
	}
	return &demand, nil
}

// DeleteDemand removes a demand.
func (a *BuyerMarketAPI) DeleteDemand(ctx context.Context, demandID string) error {
	return a.client.Delete(ctx, "/marketplace/buyer/delete/"+url.PathEscape(demandID), nil)
}
