package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/domain/rates"
)

// ItemType identifies what kind of item a line prices.
type ItemType string

const (
	ItemGold   ItemType = "gold"
	ItemSilver ItemType = "silver"
	ItemOther  ItemType = "other"
)

// IsValid reports whether the item type is a known value.
func (t ItemType) IsValid() bool {
	return t == ItemGold || t == ItemSilver || t == ItemOther
}

// MetalType maps gold/silver item types onto the rate ledger.
// Returns false for ItemOther, which has no ledger series.
func (t ItemType) MetalType() (rates.MetalType, bool) {
	switch t {
	case ItemGold:
		return rates.MetalGold, true
	case ItemSilver:
		return rates.MetalSilver, true
	default:
		return "", false
	}
}

// Weight is a user-entered weight with its unit.
type Weight struct {
	Value decimal.Decimal `json:"value"`
	Unit  WeightUnit      `json:"unit"`
}

// LineItemInput describes one item to price.
//
// RatePerGram overrides the ledger lookup; it is required for
// ItemOther (the ledger only carries gold and silver series) and
// optional otherwise.
type LineItemInput struct {
	ItemType       ItemType         `json:"itemType"`
	Purity         string           `json:"purity"`
	Weight         Weight           `json:"weight"`
	LabourChargeID *id.ID           `json:"labourChargeId,omitempty"`
	RatePerGram    *decimal.Decimal `json:"ratePerGram,omitempty"`
}

// PricedLineItem is the computed result for one line. RatePerGram and
// LabourChargeAmount are snapshots: once the invoice is saved, later
// rate or charge changes never alter them.
type PricedLineItem struct {
	ItemType           ItemType        `json:"itemType"`
	Purity             string          `json:"purity"`
	Weight             Weight          `json:"weight"`
	WeightGrams        decimal.Decimal `json:"weightGrams"`
	RatePerGram        decimal.Decimal `json:"ratePerGram"`
	MetalPrice         decimal.Decimal `json:"metalPrice"`
	LabourChargeID     *id.ID          `json:"labourChargeId,omitempty"`
	LabourChargeAmount decimal.Decimal `json:"labourChargeAmount"`
	ItemTotal          decimal.Decimal `json:"itemTotal"`
}

// InvoiceTotals are the invoice-level aggregates.
type InvoiceTotals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	GSTPercent decimal.Decimal `json:"gstPercent"`
	GSTAmount  decimal.Decimal `json:"gstAmount"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
	AmountPaid decimal.Decimal `json:"amountPaid"`
	// BalanceDue may be negative: overpayment represents a credit.
	BalanceDue decimal.Decimal `json:"balanceDue"`
}

// RateResolver looks up the current rate per gram for a metal series.
type RateResolver interface {
	ResolveRate(ctx context.Context, metal rates.MetalType, purity string) (decimal.Decimal, error)
}

// ChargeResolver looks up a labour charge usable on new invoices.
type ChargeResolver interface {
	ResolveCharge(ctx context.Context, chargeID id.ID) (*labourcharge.LabourCharge, error)
}

// Calculator prices line items and invoices. It holds no mutable state:
// every computation starts from the resolved current rate.
type Calculator struct {
	rates   RateResolver
	charges ChargeResolver
}

// NewCalculator creates a pricing calculator.
func NewCalculator(rateResolver RateResolver, chargeResolver ChargeResolver) *Calculator {
	return &Calculator{rates: rateResolver, charges: chargeResolver}
}

// PriceLineItem computes the priced snapshot for one line item.
//
//	itemTotal = round2(weightInGrams * ratePerGram + labourChargeAmount)
func (c *Calculator) PriceLineItem(ctx context.Context, in LineItemInput) (*PricedLineItem, error) {
	if !in.ItemType.IsValid() {
		return nil, apperror.NewValidation("itemType must be gold, silver or other").
			WithDetail("field", "itemType").
			WithDetail("value", string(in.ItemType))
	}
	if !in.Weight.Value.IsPositive() {
		return nil, apperror.NewValidation("weight must be positive").
			WithDetail("field", "weight.value").
			WithDetail("value", in.Weight.Value.String())
	}

	weightGrams, err := ConvertToGrams(in.Weight.Value, in.Weight.Unit)
	if err != nil {
		return nil, err
	}

	rate, err := c.resolveRate(ctx, in)
	if err != nil {
		return nil, err
	}

	metalPrice := weightGrams.Mul(rate)

	labourAmount := decimal.Zero
	if in.LabourChargeID != nil {
		charge, err := c.charges.ResolveCharge(ctx, *in.LabourChargeID)
		if err != nil {
			return nil, err
		}
		switch charge.ChargeType {
		case labourcharge.ChargeFixedPerItem:
			labourAmount = charge.Amount.ToDecimal()
		case labourcharge.ChargePerGram:
			labourAmount = charge.Amount.ToDecimal().Mul(weightGrams)
		default:
			return nil, apperror.NewValidation("unrecognized chargeType").
				WithDetail("chargeType", string(charge.ChargeType))
		}
		labourAmount = labourAmount.Round(2)
	}

	return &PricedLineItem{
		ItemType:           in.ItemType,
		Purity:             in.Purity,
		Weight:             in.Weight,
		WeightGrams:        weightGrams,
		RatePerGram:        rate,
		MetalPrice:         metalPrice.Round(2),
		LabourChargeID:     in.LabourChargeID,
		LabourChargeAmount: labourAmount,
		ItemTotal:          metalPrice.Add(labourAmount).Round(2),
	}, nil
}

func (c *Calculator) resolveRate(ctx context.Context, in LineItemInput) (decimal.Decimal, error) {
	if in.RatePerGram != nil {
		if !in.RatePerGram.IsPositive() {
			return decimal.Zero, apperror.NewValidation("ratePerGram must be positive").
				WithDetail("field", "ratePerGram").
				WithDetail("value", in.RatePerGram.String())
		}
		return *in.RatePerGram, nil
	}

	metal, ok := in.ItemType.MetalType()
	if !ok {
		return decimal.Zero, apperror.NewValidation("ratePerGram is required for item type 'other'").
			WithDetail("field", "ratePerGram")
	}
	if in.Purity == "" {
		return decimal.Zero, apperror.NewValidation("purity is required").
			WithDetail("field", "purity")
	}

	return c.rates.ResolveRate(ctx, metal, in.Purity)
}

// PriceLineItems prices every input in order. Any failing line fails
// the whole computation: a quote with a silently dropped line would be
// worse than no quote.
func (c *Calculator) PriceLineItems(ctx context.Context, inputs []LineItemInput) ([]*PricedLineItem, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewValidation("at least one line item is required").
			WithDetail("field", "lineItems")
	}
	lines := make([]*PricedLineItem, 0, len(inputs))
	for i, in := range inputs {
		line, err := c.PriceLineItem(ctx, in)
		if err != nil {
			if appErr, ok := apperror.AsAppError(err); ok {
				return nil, appErr.WithDetail("lineIndex", i)
			}
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// PriceInvoice derives invoice aggregates from already-priced lines.
// Pure function: no lookups, no side effects.
//
//	subtotal   = sum of line itemTotal
//	gstAmount  = round2(subtotal * gstPercent / 100)
//	grandTotal = subtotal + gstAmount
//	balanceDue = grandTotal - amountPaid
func PriceInvoice(lines []*PricedLineItem, gstPercent, amountPaid decimal.Decimal) (*InvoiceTotals, error) {
	if gstPercent.IsNegative() {
		return nil, apperror.NewValidation("gstPercent must be non-negative").
			WithDetail("field", "gstPercent").
			WithDetail("value", gstPercent.String())
	}
	if amountPaid.IsNegative() {
		return nil, apperror.NewValidation("amountPaid must be non-negative").
			WithDetail("field", "amountPaid").
			WithDetail("value", amountPaid.String())
	}

	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.ItemTotal)
	}

	gstAmount := subtotal.Mul(gstPercent).Div(decimal.NewFromInt(100)).Round(2)
	grandTotal := subtotal.Add(gstAmount)

	return &InvoiceTotals{
		Subtotal:   subtotal,
		GSTPercent: gstPercent,
		GSTAmount:  gstAmount,
		GrandTotal: grandTotal,
		AmountPaid: amountPaid,
		BalanceDue: grandTotal.Sub(amountPaid),
	}, nil
}
