// Package rates implements the metal rate ledger.
//
// The ledger keeps one authoritative quotation per (metal type, purity)
// pair and retains every superseded quotation as history. Records are
// never physically deleted: a new quotation deactivates the previous
// one for the same pair.
package rates

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/types"
)

// MetalType identifies the traded metal.
type MetalType string

const (
	MetalGold   MetalType = "gold"
	MetalSilver MetalType = "silver"
)

// IsValid reports whether the metal type is a known value.
func (m MetalType) IsValid() bool {
	return m == MetalGold || m == MetalSilver
}

// Source identifies where a quotation came from.
type Source string

const (
	SourceManual Source = "manual"
	SourceAPI    Source = "api"
)

// IsValid reports whether the source is a known value.
func (s Source) IsValid() bool {
	return s == SourceManual || s == SourceAPI
}

// RateRecord is one priced quotation for a metal at a given purity.
//
// Invariant: at most one record with is_active = true exists per
// (metal_type, purity) pair. The storage layer backs this with a
// partial unique index; writers serialize per pair with an advisory lock.
type RateRecord struct {
	ID          id.ID            `db:"id" json:"id"`
	MetalType   MetalType        `db:"metal_type" json:"metalType"`
	Purity      string           `db:"purity" json:"purity"`
	RatePerGram types.MinorUnits `db:"rate_per_gram" json:"ratePerGram"`
	Source      Source           `db:"source" json:"source"`
	IsActive    bool             `db:"is_active" json:"isActive"`
	CreatedAt   time.Time        `db:"created_at" json:"createdAt"`
	LastUpdated time.Time        `db:"last_updated" json:"lastUpdated"`
}

// Rate returns the quotation as a decimal rupee amount per gram.
func (r *RateRecord) Rate() decimal.Decimal {
	return r.RatePerGram.ToDecimal()
}

// RateInput is the caller-supplied quotation for upsert operations.
type RateInput struct {
	MetalType   MetalType       `json:"metalType"`
	Purity      string          `json:"purity"`
	RatePerGram decimal.Decimal `json:"ratePerGram"`
	Source      Source          `json:"source"`
}

// Validate checks the input before any write happens.
func (in *RateInput) Validate(ctx context.Context) error {
	if !in.MetalType.IsValid() {
		return apperror.NewValidation("metalType must be gold or silver").
			WithDetail("field", "metalType").
			WithDetail("value", string(in.MetalType))
	}
	if in.Purity == "" {
		return apperror.NewValidation("purity is required").
			WithDetail("field", "purity")
	}
	if !in.RatePerGram.IsPositive() {
		return apperror.NewValidation("ratePerGram must be positive").
			WithDetail("field", "ratePerGram").
			WithDetail("value", in.RatePerGram.String())
	}
	if in.Source == "" {
		in.Source = SourceManual
	}
	if !in.Source.IsValid() {
		return apperror.NewValidation("source must be manual or api").
			WithDetail("field", "source").
			WithDetail("value", string(in.Source))
	}
	return nil
}

// NewRecord builds an active RateRecord from validated input.
func NewRecord(in RateInput) *RateRecord {
	now := time.Now().UTC()
	return &RateRecord{
		ID:          id.New(),
		MetalType:   in.MetalType,
		Purity:      in.Purity,
		RatePerGram: types.MinorUnitsFromDecimal(in.RatePerGram),
		Source:      in.Source,
		IsActive:    true,
		CreatedAt:   now,
		LastUpdated: now,
	}
}
