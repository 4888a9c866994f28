package dto

import (
	"github.com/shopspring/decimal"
)

// RecordPaymentRequest is the request body for recording a payment
// against an invoice. Amount accepts a decimal string or raw number.
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}
