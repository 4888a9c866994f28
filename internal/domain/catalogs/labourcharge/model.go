// Package labourcharge defines the labour charge catalog.
//
// A labour charge is a configurable making/service fee applied per
// invoice line item, either flat per item or proportional to weight.
package labourcharge

import (
	"context"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/core/types"
)

// ChargeType determines how the charge amount is applied.
type ChargeType string

const (
	// ChargePerGram multiplies the amount by the item weight in grams.
	ChargePerGram ChargeType = "perGram"

	// ChargeFixedPerItem applies the amount once per line item.
	ChargeFixedPerItem ChargeType = "fixedPerItem"
)

// IsValid reports whether the charge type is a known value.
func (t ChargeType) IsValid() bool {
	return t == ChargePerGram || t == ChargeFixedPerItem
}

// LabourCharge is a named charge rule usable on invoice line items.
//
// Deactivated charges (deletion mark set) must not appear in
// new-invoice pickers but remain referenced by historical invoices.
type LabourCharge struct {
	entity.Catalog

	ChargeType ChargeType       `db:"charge_type" json:"chargeType"`
	Amount     types.MinorUnits `db:"amount" json:"amount"`
}

// New creates an active LabourCharge.
func New(code, name string, chargeType ChargeType, amount types.MinorUnits) *LabourCharge {
	return &LabourCharge{
		Catalog:    entity.NewCatalog(code, name),
		ChargeType: chargeType,
		Amount:     amount,
	}
}

// IsActive reports whether the charge may be used on new invoices.
func (c *LabourCharge) IsActive() bool {
	return !c.DeletionMark
}

// Validate implements entity.Validatable.
func (c *LabourCharge) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if !c.ChargeType.IsValid() {
		return apperror.NewValidation("chargeType must be perGram or fixedPerItem").
			WithDetail("field", "chargeType").
			WithDetail("value", string(c.ChargeType))
	}
	if c.Amount <= 0 {
		return apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", c.Amount.String())
	}
	return nil
}
