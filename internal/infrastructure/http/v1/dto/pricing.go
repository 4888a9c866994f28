package dto

import (
	"github.com/shopspring/decimal"

	"suvarnadesk/internal/domain/pricing"
)

// QuoteRequest is the request body for a price quote. Amounts accept
// decimal strings or raw numbers.
type QuoteRequest struct {
	LineItems  []pricing.LineItemInput `json:"lineItems" binding:"required"`
	GSTPercent decimal.Decimal         `json:"gstPercent"`
	AmountPaid decimal.Decimal         `json:"amountPaid"`
}
