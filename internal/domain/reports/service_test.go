package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/domain/rates"
)

type fakeRepo struct {
	summary     *SalesSummary
	trend       *RateTrend
	outstanding *OutstandingReport

	lastTrendFilter RateTrendFilter
}

func (r *fakeRepo) GetSalesSummary(_ context.Context, _ SalesSummaryFilter) (*SalesSummary, error) {
	return r.summary, nil
}

func (r *fakeRepo) GetOutstandingReport(_ context.Context) (*OutstandingReport, error) {
	return r.outstanding, nil
}

func (r *fakeRepo) GetRateTrend(_ context.Context, filter RateTrendFilter) (*RateTrend, error) {
	r.lastTrendFilter = filter
	return r.trend, nil
}

func TestSalesSummaryOutstanding(t *testing.T) {
	repo := &fakeRepo{summary: &SalesSummary{
		InvoiceCount: 3,
		Subtotal:     10000_00,
		GSTCollected: 300_00,
		GrandTotal:   10300_00,
		AmountPaid:   8000_00,
	}}
	svc := NewService(repo)

	got, err := svc.GetSalesSummary(context.Background(), SalesSummaryFilter{
		FromDate: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "2300.00", got.Outstanding.String())
}

func TestSalesSummaryValidation(t *testing.T) {
	svc := NewService(&fakeRepo{})

	_, err := svc.GetSalesSummary(context.Background(), SalesSummaryFilter{})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.GetSalesSummary(context.Background(), SalesSummaryFilter{
		FromDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		ToDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}

func TestRateTrendDefaultsPeriod(t *testing.T) {
	repo := &fakeRepo{trend: &RateTrend{}}
	svc := NewService(repo)

	_, err := svc.GetRateTrend(context.Background(), RateTrendFilter{
		MetalType: rates.MetalGold,
		Purity:    "24K",
	})
	require.NoError(t, err)

	window := repo.lastTrendFilter.ToDate.Sub(repo.lastTrendFilter.FromDate)
	assert.InDelta(t, 30*24*time.Hour, window, float64(25*time.Hour))
}

func TestRateTrendValidation(t *testing.T) {
	svc := NewService(&fakeRepo{trend: &RateTrend{}})

	_, err := svc.GetRateTrend(context.Background(), RateTrendFilter{Purity: "24K"})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.GetRateTrend(context.Background(), RateTrendFilter{
		MetalType: rates.MetalGold,
		Purity:    "24K",
		FromDate:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		ToDate:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
}
