package feed

import (
	"context"

	"github.com/shopspring/decimal"

	"suvarnadesk/internal/domain/rates"
)

// StaticFeed returns a fixed quote list. Used by seed tooling and in
// deployments without a market data subscription.
type StaticFeed struct {
	quotes []rates.Quote
}

// NewStaticFeed creates a feed that always returns the given quotes.
func NewStaticFeed(quotes []rates.Quote) *StaticFeed {
	return &StaticFeed{quotes: quotes}
}

// DefaultStaticFeed carries indicative bullion prices for a fresh install.
func DefaultStaticFeed() *StaticFeed {
	return NewStaticFeed([]rates.Quote{
		{MetalType: rates.MetalGold, Purity: "24K", RatePerGram: decimal.RequireFromString("7250.00")},
		{MetalType: rates.MetalGold, Purity: "22K", RatePerGram: decimal.RequireFromString("6645.00")},
		{MetalType: rates.MetalGold, Purity: "18K", RatePerGram: decimal.RequireFromString("5437.50")},
		{MetalType: rates.MetalSilver, Purity: "999", RatePerGram: decimal.RequireFromString("92.50")},
		{MetalType: rates.MetalSilver, Purity: "925", RatePerGram: decimal.RequireFromString("85.60")},
	})
}

// FetchCurrentPrices returns the configured quotes.
func (f *StaticFeed) FetchCurrentPrices(_ context.Context) ([]rates.Quote, error) {
	out := make([]rates.Quote, len(f.quotes))
	copy(out, f.quotes)
	return out, nil
}

var _ rates.PriceFeed = (*StaticFeed)(nil)
