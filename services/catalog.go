package services

import (
	"context"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// CatalogAPI covers the shared crop and market reference data. Callers
// typically fetch these wholesale once per session and keep id-to-name
// maps in their own state.
type CatalogAPI struct {
	client *transport.Client
}

func NewCatalogAPI(client *transport.Client) *CatalogAPI {
	return &CatalogAPI{client: client}
}

// AddCrop registers a new crop and returns the stored document.
func (a *CatalogAPI) AddCrop(ctx context.Context, input core.AddCropInput) (*core.Crop, error) {
	var crop core.Crop
	if err := a.client.Post(ctx, "/addCrop", input, &crop); err != nil {
		return nil, err
	}
	return &crop, nil
}

// GetAllCrops fetches the full crop list.
func (a *CatalogAPI) GetAllCrops(ctx context.Context) ([]core.Crop, error) {
	var crops []core.Crop
	if err := a.client.Get(ctx, "/getAllCrop", &crops); err != nil {
		return nil, err
	}
	return crops, nil
}

// AddMarket registers a new market and returns the stored document.
func (a *CatalogAPI) AddMarket(ctx context.Context, input core.AddMarketInput) (*core.Market, error) {
	var market core.Market
	if err := a.client.Post(ctx, "/addMarket", input, &market); err != nil {
		return nil, err
	}
	return &market, nil
}

// GetAllMarkets fetches the full market list.
func (a *CatalogAPI) GetAllMarkets(ctx context.Context) ([]core.Market, error) {
	var markets []core.Market
	if err := a.client.Get(ctx, "/getAllMarket", &markets); err != nil {
		return nil, err
	}
	return markets, nil
}
