package reports

import (
	"context"
)

// Repository defines report data access interface.
type Repository interface {
	// Sales
	GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummary, error)
	GetOutstandingReport(ctx context.Context) (*OutstandingReport, error)

	// Rates
	GetRateTrend(ctx context.Context, filter RateTrendFilter) (*RateTrend, error)
}
