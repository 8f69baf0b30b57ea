package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mandiconnect/mandi-go/core"
	"github.com/mandiconnect/mandi-go/transport"
)

// StatsAPI serves backend-computed price aggregates. The values are
// display-only; nothing here derives or recomputes them.
type StatsAPI struct {
	client *transport.Client
}

func NewStatsAPI(client *transport.Client) *StatsAPI {
	return &StatsAPI{client: client}
}

// ByCropAndMarket fetches the aggregate for one crop at one market.
// The backend route spells "Marketid" with a lowercase d.
func (a *StatsAPI) ByCropAndMarket(ctx context.Context, cropID, marketID string) (*core.PriceStats, error) {
	path := fmt.Sprintf("/stats/getByCropIdAndMarketid/%s/%s", url.PathEscape(cropID), url.PathEscape(marketID))
	var stats core.PriceStats
	if err := a.client.Get(ctx, path, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ByMarket fetches aggregates for every crop at a market.
func (a *StatsAPI) ByMarket(ctx context.Context, marketID string) ([]core.PriceStats, error) {
	var stats []core.PriceStats
	if err := a.client.Get(ctx, "/stats/getByMarket/"+url.PathEscape(marketID), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ByCrop fetches aggregates for one crop across markets.
func (a *StatsAPI) ByCrop(ctx context.Context, cropID string) ([]core.PriceStats, error) {
	var stats []core.PriceStats
	if err := a.client.Get(ctx, "/stats/getByCrop/"+url.PathEscape(cropID), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
