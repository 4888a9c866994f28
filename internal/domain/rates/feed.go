package rates

import (
	"context"

	"github.com/shopspring/decimal"
)

// Quote is one market price returned by an external feed.
type Quote struct {
	MetalType   MetalType       `json:"metalType"`
	Purity      string          `json:"purity"`
	RatePerGram decimal.Decimal `json:"ratePerGram"`
}

// PriceFeed is the external market-data collaborator.
// Implementations must honor ctx cancellation and apply their own
// request timeout; a failed fetch must return an error rather than
// a partial quote list.
type PriceFeed interface {
	FetchCurrentPrices(ctx context.Context) ([]Quote, error)
}
