package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributesScanPreservesPrecision(t *testing.T) {
	var a Attributes
	require.NoError(t, a.Scan([]byte(`{"huid":"HU123456","oldGoldCredit":"1234567890.123456789"}`)))

	assert.Equal(t, "HU123456", a.GetString("huid"))
	assert.True(t, a.GetDecimal("oldGoldCredit").Equal(decimal.RequireFromString("1234567890.123456789")))
}

func TestAttributesScanNil(t *testing.T) {
	a := Attributes{"huid": "HU123456"}
	require.NoError(t, a.Scan(nil))
	assert.Nil(t, a)
	assert.False(t, a.Has("huid"))
}

func TestAttributesValueRoundTrip(t *testing.T) {
	var a Attributes
	a.Set("hallmarked", true)

	v, err := a.Value()
	require.NoError(t, err)

	var decoded Attributes
	require.NoError(t, decoded.Scan(v))
	assert.True(t, decoded.Has("hallmarked"))
}

func TestAttributesNilValue(t *testing.T) {
	var a Attributes
	v, err := a.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestAttributesGetDecimalFallbacks(t *testing.T) {
	a := Attributes{"rate": "7450.50", "junk": "not-a-number"}
	assert.True(t, a.GetDecimal("rate").Equal(decimal.RequireFromString("7450.50")))
	assert.True(t, a.GetDecimal("junk").IsZero())
	assert.True(t, a.GetDecimal("missing").IsZero())
}
