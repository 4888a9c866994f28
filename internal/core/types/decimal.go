package types

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with arbitrary precision.
// All price arithmetic goes through decimal to avoid float drift.
type Money = decimal.Decimal

// NewMoney creates Money from a float (use only in tests and seeds).
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString parses a decimal string into Money.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney parses a decimal string, panicking on error.
// Use only for constants and test fixtures.
func MustMoney(s string) Money {
	return decimal.RequireFromString(s)
}

// ZeroMoney returns zero Money.
func ZeroMoney() Money {
	return decimal.Zero
}

// MinorUnits is a monetary amount in minor currency units (paise).
// Used for storage: exact, comparable, no scanning ambiguity.
type MinorUnits int64

// MinorUnitsFromDecimal converts a rupee amount to paise.
// The amount is rounded to 2 decimal places first.
func MinorUnitsFromDecimal(d decimal.Decimal) MinorUnits {
	return MinorUnits(d.Round(2).Mul(decimal.NewFromInt(100)).IntPart())
}

// ToDecimal converts paise back to a rupee amount.
func (m MinorUnits) ToDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(m)).Div(decimal.NewFromInt(100))
}

// String formats the amount as a rupee string with 2 decimal places.
func (m MinorUnits) String() string {
	return m.ToDecimal().StringFixed(2)
}

// MarshalJSON serializes MinorUnits as a decimal string ("6500.00").
func (m MinorUnits) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both a decimal string and a raw number.
func (m *MinorUnits) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*m = 0
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	*m = MinorUnitsFromDecimal(d)
	return nil
}

// quantityScale is the fixed-point scale for Quantity: 4 decimal places.
// Weights are stored in grams at this scale, so 11.6600 g == 116600.
const quantityScale = 10000

// Quantity represents a physical measure (weight in grams) as a
// fixed-point integer with 4 decimal places.
type Quantity int64

// NewQuantity creates Quantity from whole units.
func NewQuantity(units int64) Quantity {
	return Quantity(units * quantityScale)
}

// QuantityFromDecimal converts a decimal measure to Quantity,
// rounding to 4 decimal places.
func QuantityFromDecimal(d decimal.Decimal) Quantity {
	return Quantity(d.Round(4).Mul(decimal.NewFromInt(quantityScale)).IntPart())
}

// ParseQuantity parses a decimal string like "11.66" into Quantity.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	return QuantityFromDecimal(d), nil
}

// ToDecimal converts Quantity to its decimal representation.
func (q Quantity) ToDecimal() decimal.Decimal {
	return decimal.NewFromInt(int64(q)).Div(decimal.NewFromInt(quantityScale))
}

// IsZero reports whether the quantity is zero.
func (q Quantity) IsZero() bool {
	return q == 0
}

// IsNegative reports whether the quantity is negative.
func (q Quantity) IsNegative() bool {
	return q < 0
}

// Add returns q + other.
func (q Quantity) Add(other Quantity) Quantity {
	return q + other
}

// Sub returns q - other.
func (q Quantity) Sub(other Quantity) Quantity {
	return q - other
}

// String formats Quantity without trailing zeros ("11.66", not "11.6600").
func (q Quantity) String() string {
	whole := int64(q) / quantityScale
	frac := int64(q) % quantityScale
	if frac < 0 {
		frac = -frac
	}
	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}
	s := fmt.Sprintf("%d.%04d", whole, frac)
	s = strings.TrimRight(s, "0")
	if int64(q) < 0 && whole == 0 {
		s = "-" + s
	}
	return s
}

// MarshalJSON serializes Quantity as a JSON number string.
func (q Quantity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + q.String() + `"`), nil
}

// UnmarshalJSON accepts both a string and a raw number.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*q = 0
		return nil
	}
	parsed, err := ParseQuantity(s)
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Value implements driver.Valuer for database storage.
func (q Quantity) Value() (driver.Value, error) {
	return int64(q), nil
}

// Scan implements sql.Scanner.
func (q *Quantity) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*q = Quantity(v)
		return nil
	case nil:
		*q = 0
		return nil
	default:
		return fmt.Errorf("cannot scan %T into Quantity", src)
	}
}
