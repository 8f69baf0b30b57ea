package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// PriceAPI covers farmer price entries and the agree/disagree voting on
// them. One-vote-per-user is enforced by the backend; this layer submits
// votes as-is.
type PriceAPI struct {
	client *transport.Client
}

func NewPriceAPI(client *transport.Client) *PriceAPI {
	return &PriceAPI{client: client}
}

// Add reports a new price entry.
func (a *PriceAPI) Add(ctx context.Context, input core.AddPriceEntryInput) (*core.PriceEntry, error) {
	var entry core.PriceEntry
	if err := a.client.Post(ctx, "/farmer-entries/add", input, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetAll fetches every price entry.
func (a *PriceAPI) GetAll(ctx context.Context) ([]core.PriceEntry, error) {
	var entries []core.PriceEntry
	if err := a.client.Get(ctx, "/farmer-entries/getAllEntries", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByCropAndMarket fetches entries for one crop at one market.
func (a *PriceAPI) GetByCropAndMarket(ctx context.Context, cropID, marketID string) ([]core.PriceEntry, error) {
	path := fmt.Sprintf("/farmer-entries/getByCropAndMarket/%s/%s", url.PathEscape(cropID), url.PathEscape(marketID))
	var entries []core.PriceEntry
	if err := a.client.Get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetByFarmer fetches every entry a farmer has reported.
func (a *PriceAPI) GetByFarmer(ctx context.Context, farmerID string) ([]core.PriceEntry, error) {
	path := "/farmer-entries/getByFarmerId/" + url.PathEscape(farmerID)
	var entries []core.PriceEntry
	if err := a.client.Get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Agree records the acting farmer's agreement with an entry's price.
func (a *PriceAPI) Agree(ctx context.Context, entryID, farmerID string) error {
	path := fmt.Sprintf("/farmer-entries/agree/%s/%s", url.PathEscape(entryID), url.PathEscape(farmerID))
	return a.client.Post(ctx, path, nil, nil)
}

// Disagree records the acting farmer's disagreement with an entry's price.
func (a *PriceAPI) Disagree(ctx context.Context, entryID, farmerID string) error {
	path := fmt.Sprintf("/farmer-entries/disagree/%s/%s", url.PathEscape(entryID), url.PathEscape(farmerID))
	return a.client.Post(ctx, path, nil, nil)
}

type countResponse struct {
	Count int `json:"count"`
}

// AgreeCount fetches the number of agree votes on an entry.
func (a *PriceAPI) AgreeCount(ctx context.Context, entryID string) (int, error) {
	var resp countResponse
	if err := a.client.Get(ctx, "/farmer-entries/agree-count/"+url.PathEscape(entryID), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}

// DisagreeCount fetches the number of disagree votes on an entry.
func (a *PriceAPI) DisagreeCount(ctx context.Context, entryID string) (int, error) {
	var resp countResponse
	if err := a.client.Get(ctx, "/farmer-entries/disagree-count/"+url.PathEscape(entryID), &resp); err != nil {
		return 0, err
	}
	return resp.Count, nil
}
