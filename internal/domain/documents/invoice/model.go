// Package invoice implements the sales invoice document.
//
// An invoice is a frozen pricing snapshot: line items capture the rate
// per gram and labour amount in force at creation time, and later rate
// or labour charge changes never alter a saved invoice.
package invoice

import (
	"context"
	"time"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/types"
	"suvarnadesk/internal/domain/pricing"
)

// PaymentStatus summarizes how much of the invoice has been settled.
type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
	// PaymentCredit means the customer overpaid; the negative balance
	// is a credit, not an error.
	PaymentCredit PaymentStatus = "credit"
)

// Invoice is the persisted sales document.
type Invoice struct {
	entity.Document

	CustomerID id.ID  `db:"customer_id" json:"customerId"`
	WorkerID   *id.ID `db:"worker_id" json:"workerId,omitempty"`

	Subtotal   types.MinorUnits `db:"subtotal" json:"subtotal"`
	GSTPercent types.MinorUnits `db:"gst_percent" json:"gstPercent"`
	GSTAmount  types.MinorUnits `db:"gst_amount" json:"gstAmount"`
	GrandTotal types.MinorUnits `db:"grand_total" json:"grandTotal"`
	AmountPaid types.MinorUnits `db:"amount_paid" json:"amountPaid"`
	BalanceDue types.MinorUnits `db:"balance_due" json:"balanceDue"`

	// Lines are loaded separately; not a column.
	Lines []*Line `db:"-" json:"lines,omitempty"`
}

// Line is one priced item on an invoice. All amounts are snapshots.
type Line struct {
	ID        id.ID `db:"id" json:"id"`
	InvoiceID id.ID `db:"invoice_id" json:"invoiceId"`
	LineNo    int   `db:"line_no" json:"lineNo"`

	ItemType    string           `db:"item_type" json:"itemType"`
	Purity      string           `db:"purity" json:"purity"`
	Description string           `db:"description" json:"description,omitempty"`
	WeightValue types.Quantity   `db:"weight_value" json:"weightValue"`
	WeightUnit  string           `db:"weight_unit" json:"weightUnit"`
	WeightGrams types.Quantity   `db:"weight_grams" json:"weightGrams"`
	RatePerGram types.MinorUnits `db:"rate_per_gram" json:"ratePerGram"`

	LabourChargeID     *id.ID           `db:"labour_charge_id" json:"labourChargeId,omitempty"`
	LabourChargeAmount types.MinorUnits `db:"labour_charge_amount" json:"labourChargeAmount"`

	ItemTotal types.MinorUnits `db:"item_total" json:"itemTotal"`
}

// New creates an empty draft invoice.
func New() *Invoice {
	return &Invoice{Document: entity.NewDocument()}
}

// Validate implements entity.Validatable.
func (i *Invoice) Validate(ctx context.Context) error {
	if err := i.Document.Validate(ctx); err != nil {
		return err
	}
	if id.IsNil(i.CustomerID) {
		return apperror.NewValidation("customerId is required").
			WithDetail("field", "customerId")
	}
	if len(i.Lines) == 0 {
		return apperror.NewValidation("at least one line item is required").
			WithDetail("field", "lines")
	}
	return nil
}

// PaymentStatus derives the settlement state from the balance.
func (i *Invoice) PaymentStatus() PaymentStatus {
	switch {
	case i.BalanceDue < 0:
		return PaymentCredit
	case i.BalanceDue == 0:
		return PaymentPaid
	case i.AmountPaid > 0:
		return PaymentPartial
	default:
		return PaymentUnpaid
	}
}

// ApplyTotals copies computed aggregates onto the document.
func (i *Invoice) ApplyTotals(totals *pricing.InvoiceTotals) {
	i.Subtotal = types.MinorUnitsFromDecimal(totals.Subtotal)
	i.GSTPercent = types.MinorUnitsFromDecimal(totals.GSTPercent)
	i.GSTAmount = types.MinorUnitsFromDecimal(totals.GSTAmount)
	i.GrandTotal = types.MinorUnitsFromDecimal(totals.GrandTotal)
	i.AmountPaid = types.MinorUnitsFromDecimal(totals.AmountPaid)
	i.BalanceDue = types.MinorUnitsFromDecimal(totals.BalanceDue)
}

// LineFromPriced converts a computed pricing result into a persisted line.
func LineFromPriced(invoiceID id.ID, lineNo int, p *pricing.PricedLineItem, description string) *Line {
	return &Line{
		ID:                 id.New(),
		InvoiceID:          invoiceID,
		LineNo:             lineNo,
		ItemType:           string(p.ItemType),
		Purity:             p.Purity,
		Description:        description,
		WeightValue:        types.QuantityFromDecimal(p.Weight.Value),
		WeightUnit:         string(p.Weight.Unit),
		WeightGrams:        types.QuantityFromDecimal(p.WeightGrams),
		RatePerGram:        types.MinorUnitsFromDecimal(p.RatePerGram),
		LabourChargeID:     p.LabourChargeID,
		LabourChargeAmount: types.MinorUnitsFromDecimal(p.LabourChargeAmount),
		ItemTotal:          types.MinorUnitsFromDecimal(p.ItemTotal),
	}
}

// RecordPayment adds a payment and recomputes the balance.
// The invoice must not be deletion-marked. Overpayment is allowed.
func (i *Invoice) RecordPayment(amount types.MinorUnits, at time.Time) error {
	if amount <= 0 {
		return apperror.NewValidation("payment amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", amount.String())
	}
	if i.DeletionMark {
		return apperror.NewBusinessRule(apperror.CodeBusinessRule,
			"Cannot record payment on a deleted invoice.").
			WithDetail("invoice_id", i.ID.String())
	}
	i.AmountPaid += amount
	i.BalanceDue = i.GrandTotal - i.AmountPaid
	i.SetUpdatedAt(at)
	return nil
}
