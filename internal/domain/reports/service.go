package reports

import (
	"context"
	"fmt"
	"time"

	"suvarnadesk/internal/core/apperror"
)

// maxTrendDays caps the rate trend window to keep the aggregate cheap.
const maxTrendDays = 366

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetSalesSummary generates the sales summary for a period.
func (s *Service) GetSalesSummary(ctx context.Context, filter SalesSummaryFilter) (*SalesSummary, error) {
	if filter.FromDate.IsZero() || filter.ToDate.IsZero() {
		return nil, apperror.NewValidation("fromDate and toDate are required")
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}

	report, err := s.repo.GetSalesSummary(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get sales summary: %w", err)
	}

	report.Outstanding = report.GrandTotal - report.AmountPaid
	return report, nil
}

// GetOutstanding lists customers with unpaid balances.
func (s *Service) GetOutstanding(ctx context.Context) (*OutstandingReport, error) {
	report, err := s.repo.GetOutstandingReport(ctx)
	if err != nil {
		return nil, fmt.Errorf("get outstanding report: %w", err)
	}
	if report.AsOf.IsZero() {
		report.AsOf = time.Now()
	}
	return report, nil
}

// GetRateTrend returns daily min/max/last rates for one metal/purity pair.
func (s *Service) GetRateTrend(ctx context.Context, filter RateTrendFilter) (*RateTrend, error) {
	if filter.MetalType == "" || filter.Purity == "" {
		return nil, apperror.NewValidation("metalType and purity are required")
	}
	if filter.ToDate.IsZero() {
		filter.ToDate = time.Now()
	}
	if filter.FromDate.IsZero() {
		filter.FromDate = filter.ToDate.AddDate(0, 0, -30)
	}
	if filter.FromDate.After(filter.ToDate) {
		return nil, apperror.NewValidation("fromDate must be before toDate")
	}
	if filter.ToDate.Sub(filter.FromDate) > maxTrendDays*24*time.Hour {
		return nil, apperror.NewValidation(
			fmt.Sprintf("period may not exceed %d days", maxTrendDays))
	}

	trend, err := s.repo.GetRateTrend(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get rate trend: %w", err)
	}

	return trend, nil
}
