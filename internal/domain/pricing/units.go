// Package pricing derives line-item and invoice totals from rate data,
// labour charge rules, and user-entered weights.
//
// All currency arithmetic uses decimal to avoid floating-point drift.
// Rounding policy: each line's labour amount and item total are rounded
// to 2 decimal places; invoice aggregates sum the already-rounded line
// totals, and GST is rounded to 2 decimal places once.
package pricing

import (
	"github.com/shopspring/decimal"

	"suvarnadesk/internal/core/apperror"
)

// WeightUnit is a supported weight unit for line items.
type WeightUnit string

const (
	UnitGram      WeightUnit = "g"
	UnitMilligram WeightUnit = "mg"
	UnitKilogram  WeightUnit = "kg"
	UnitTola      WeightUnit = "tola"
)

// gramFactors maps each unit to its grams-per-unit factor.
// Tola is the Indian bullion unit, 11.66 g by convention.
var gramFactors = map[WeightUnit]decimal.Decimal{
	UnitGram:      decimal.NewFromInt(1),
	UnitMilligram: decimal.RequireFromString("0.001"),
	UnitKilogram:  decimal.NewFromInt(1000),
	UnitTola:      decimal.RequireFromString("11.66"),
}

// ConvertToGrams converts a weight value to grams.
// An unrecognized unit is a validation error, never a silent identity
// conversion.
func ConvertToGrams(value decimal.Decimal, unit WeightUnit) (decimal.Decimal, error) {
	factor, ok := gramFactors[unit]
	if !ok {
		return decimal.Zero, apperror.NewValidation("unrecognized weight unit").
			WithDetail("field", "unit").
			WithDetail("value", string(unit))
	}
	return value.Mul(factor), nil
}
