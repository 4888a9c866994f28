package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/types"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/domain/rates"
)

type stubRates struct {
	table map[string]decimal.Decimal
}

func (s stubRates) ResolveRate(ctx context.Context, metal rates.MetalType, purity string) (decimal.Decimal, error) {
	if rate, ok := s.table[string(metal)+"/"+purity]; ok {
		return rate, nil
	}
	return decimal.Zero, apperror.NewNoActiveRate(string(metal), purity)
}

type stubCharges struct {
	table map[id.ID]*labourcharge.LabourCharge
}

func (s stubCharges) ResolveCharge(ctx context.Context, chargeID id.ID) (*labourcharge.LabourCharge, error) {
	if c, ok := s.table[chargeID]; ok {
		if !c.IsActive() {
			return nil, apperror.NewChargeInactive(chargeID.String())
		}
		return c, nil
	}
	return nil, apperror.NewNotFound("labour_charge", chargeID.String())
}

func goldCalculator(charges map[id.ID]*labourcharge.LabourCharge) *Calculator {
	return NewCalculator(
		stubRates{table: map[string]decimal.Decimal{
			"gold/24K": decimal.NewFromInt(6500),
		}},
		stubCharges{table: charges},
	)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestConvertToGrams(t *testing.T) {
	cases := []struct {
		value string
		unit  WeightUnit
		want  string
	}{
		{"10", UnitGram, "10"},
		{"1", UnitKilogram, "1000"},
		{"500", UnitMilligram, "0.5"},
		{"1", UnitTola, "11.66"},
		{"2", UnitTola, "23.32"},
	}

	for _, tc := range cases {
		got, err := ConvertToGrams(dec(tc.value), tc.unit)
		require.NoError(t, err)
		assert.True(t, got.Equal(dec(tc.want)),
			"convert %s %s: got %s, want %s", tc.value, tc.unit, got, tc.want)
	}
}

func TestConvertToGrams_GramsIsFixedPoint(t *testing.T) {
	once, err := ConvertToGrams(dec("12.34"), UnitGram)
	require.NoError(t, err)
	twice, err := ConvertToGrams(once, UnitGram)
	require.NoError(t, err)
	assert.True(t, twice.Equal(dec("12.34")))
}

func TestConvertToGrams_UnknownUnitIsError(t *testing.T) {
	_, err := ConvertToGrams(dec("10"), "oz")
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestPriceLineItem_BasicGoldItem(t *testing.T) {
	calc := goldCalculator(nil)

	line, err := calc.PriceLineItem(context.Background(), LineItemInput{
		ItemType: ItemGold,
		Purity:   "24K",
		Weight:   Weight{Value: dec("10"), Unit: UnitGram},
	})
	require.NoError(t, err)

	assert.True(t, line.ItemTotal.Equal(dec("65000")), "got %s", line.ItemTotal)
	assert.True(t, line.LabourChargeAmount.IsZero())
	assert.True(t, line.RatePerGram.Equal(dec("6500")))
}

func TestPriceLineItem_PerGramLabourCharge(t *testing.T) {
	chargeID := id.New()
	calc := goldCalculator(map[id.ID]*labourcharge.LabourCharge{
		chargeID: labourcharge.New("LC-001", "Basic Making", labourcharge.ChargePerGram, types.MinorUnitsFromDecimal(dec("200"))),
	})

	line, err := calc.PriceLineItem(context.Background(), LineItemInput{
		ItemType:       ItemGold,
		Purity:         "24K",
		Weight:         Weight{Value: dec("10"), Unit: UnitGram},
		LabourChargeID: &chargeID,
	})
	require.NoError(t, err)

	assert.True(t, line.LabourChargeAmount.Equal(dec("2000")), "got %s", line.LabourChargeAmount)
	assert.True(t, line.ItemTotal.Equal(dec("67000")), "got %s", line.ItemTotal)
}

func TestPriceLineItem_FixedLabourCharge(t *testing.T) {
	chargeID := id.New()
	calc := goldCalculator(map[id.ID]*labourcharge.LabourCharge{
		chargeID: labourcharge.New("LC-002", "Stone Setting", labourcharge.ChargeFixedPerItem, types.MinorUnitsFromDecimal(dec("500"))),
	})

	line, err := calc.PriceLineItem(context.Background(), LineItemInput{
		ItemType:       ItemGold,
		Purity:         "24K",
		Weight:         Weight{Value: dec("10"), Unit: UnitGram},
		LabourChargeID: &chargeID,
	})
	require.NoError(t, err)

	assert.True(t, line.LabourChargeAmount.Equal(dec("500")))
	assert.True(t, line.ItemTotal.Equal(dec("65500")), "got %s", line.ItemTotal)
}

func TestPriceLineItem_InactiveChargeRejected(t *testing.T) {
	chargeID := id.New()
	inactive := labourcharge.New("LC-003", "Retired", labourcharge.ChargePerGram, types.MinorUnitsFromDecimal(dec("100")))
	inactive.MarkDeleted()
	calc := goldCalculator(map[id.ID]*labourcharge.LabourCharge{chargeID: inactive})

	_, err := calc.PriceLineItem(context.Background(), LineItemInput{
		ItemType:       ItemGold,
		Purity:         "24K",
		Weight:         Weight{Value: dec("10"), Unit: UnitGram},
		LabourChargeID: &chargeID,
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeChargeInactive, appErr.Code)
}

func TestPriceLineItem_MissingRate(t *testing.T) {
	calc := goldCalculator(nil)

	_, err := calc.PriceLineItem(context.Background(), LineItemInput{
		ItemType: ItemSilver,
		Purity:   "999",
		Weight:   Weight{Value: dec("100"), Unit: UnitGram},
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeNoActiveRate, appErr.Code, "must not default to zero")
}

func TestPriceLineItem_TolaWeight(t *testing.T) {
	calc := goldCalculator(nil)

	line, err := calc.PriceLineItem(context.Background(), LineItemInput{
		ItemType: ItemGold,
		Purity:   "24K",
		Weight:   Weight{Value: dec("1"), Unit: UnitTola},
	})
	require.NoError(t, err)

	// 11.66 g * 6500/g = 75790
	assert.True(t, line.WeightGrams.Equal(dec("11.66")))
	assert.True(t, line.ItemTotal.Equal(dec("75790")), "got %s", line.ItemTotal)
}

func TestPriceLineItem_OtherRequiresExplicitRate(t *testing.T) {
	calc := goldCalculator(nil)
	ctx := context.Background()

	_, err := calc.PriceLineItem(ctx, LineItemInput{
		ItemType: ItemOther,
		Weight:   Weight{Value: dec("5"), Unit: UnitGram},
	})
	require.Error(t, err)

	rate := dec("1200")
	line, err := calc.PriceLineItem(ctx, LineItemInput{
		ItemType:    ItemOther,
		Weight:      Weight{Value: dec("5"), Unit: UnitGram},
		RatePerGram: &rate,
	})
	require.NoError(t, err)
	assert.True(t, line.ItemTotal.Equal(dec("6000")))
}

func TestPriceLineItem_Deterministic(t *testing.T) {
	calc := goldCalculator(nil)
	ctx := context.Background()
	in := LineItemInput{
		ItemType: ItemGold,
		Purity:   "24K",
		Weight:   Weight{Value: dec("3.75"), Unit: UnitGram},
	}

	first, err := calc.PriceLineItem(ctx, in)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := calc.PriceLineItem(ctx, in)
		require.NoError(t, err)
		assert.True(t, again.ItemTotal.Equal(first.ItemTotal))
	}
}

func TestPriceInvoice_Aggregation(t *testing.T) {
	lines := []*PricedLineItem{
		{ItemTotal: dec("67000")},
		{ItemTotal: dec("30000")},
	}

	totals, err := PriceInvoice(lines, dec("3"), dec("50000"))
	require.NoError(t, err)

	assert.True(t, totals.Subtotal.Equal(dec("97000")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.GSTAmount.Equal(dec("2910")), "gst %s", totals.GSTAmount)
	assert.True(t, totals.GrandTotal.Equal(dec("99910")), "grand %s", totals.GrandTotal)
	assert.True(t, totals.BalanceDue.Equal(dec("49910")), "balance %s", totals.BalanceDue)
}

func TestPriceInvoice_OverpaymentIsCredit(t *testing.T) {
	lines := []*PricedLineItem{{ItemTotal: dec("1000")}}

	totals, err := PriceInvoice(lines, dec("0"), dec("1500"))
	require.NoError(t, err)
	assert.True(t, totals.BalanceDue.Equal(dec("-500")), "balance %s", totals.BalanceDue)
}

func TestPriceInvoice_NegativeGSTRejected(t *testing.T) {
	_, err := PriceInvoice(nil, dec("-1"), decimal.Zero)
	require.Error(t, err)
}

func TestPriceLineItems_FailingLineReportsIndex(t *testing.T) {
	calc := goldCalculator(nil)

	_, err := calc.PriceLineItems(context.Background(), []LineItemInput{
		{ItemType: ItemGold, Purity: "24K", Weight: Weight{Value: dec("10"), Unit: UnitGram}},
		{ItemType: ItemGold, Purity: "24K", Weight: Weight{Value: dec("5"), Unit: "oz"}},
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 1, appErr.Details["lineIndex"])
}
