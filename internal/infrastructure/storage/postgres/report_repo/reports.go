// Package report_repo provides PostgreSQL implementations for report repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"suvarnadesk/internal/domain/reports"
	"suvarnadesk/internal/infrastructure/storage/postgres"
)

// ReportRepo implements reports.Repository with read-only aggregate queries.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

// GetSalesSummary aggregates finalized invoices over the period.
// Soft-deleted invoices are excluded.
func (r *ReportRepo) GetSalesSummary(ctx context.Context, filter reports.SalesSummaryFilter) (*reports.SalesSummary, error) {
	summary := &reports.SalesSummary{
		FromDate: filter.FromDate,
		ToDate:   filter.ToDate,
	}

	query := `
		SELECT
			COUNT(*) AS invoice_count,
			COALESCE(SUM(subtotal), 0) AS subtotal,
			COALESCE(SUM(gst_amount), 0) AS gst_collected,
			COALESCE(SUM(grand_total), 0) AS grand_total,
			COALESCE(SUM(amount_paid), 0) AS amount_paid
		FROM doc_invoices
		WHERE finalized
		  AND NOT deletion_mark
		  AND date >= $1 AND date <= $2
	`
	args := []any{filter.FromDate, filter.ToDate}

	if filter.CustomerID != "" {
		query += " AND customer_id = $3"
		args = append(args, filter.CustomerID)
	}

	// Totals and the per-day breakdown must come from one snapshot,
	// so both queries run in a read-only transaction.
	err := r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		q := r.txm.GetQuerier(ctx)
		err := q.QueryRow(ctx, query, args...).Scan(
			&summary.InvoiceCount, &summary.Subtotal, &summary.GSTCollected,
			&summary.GrandTotal, &summary.AmountPaid,
		)
		if err != nil {
			return fmt.Errorf("sales summary totals: %w", err)
		}

		if filter.GroupByDay {
			rows, err := r.salesByDay(ctx, filter)
			if err != nil {
				return err
			}
			summary.Rows = rows
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}

func (r *ReportRepo) salesByDay(ctx context.Context, filter reports.SalesSummaryFilter) ([]reports.SalesSummaryRow, error) {
	query := `
		SELECT
			date_trunc('day', date) AS date,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(subtotal), 0) AS subtotal,
			COALESCE(SUM(gst_amount), 0) AS gst_amount,
			COALESCE(SUM(grand_total), 0) AS grand_total,
			COALESCE(SUM(amount_paid), 0) AS amount_paid
		FROM doc_invoices
		WHERE finalized
		  AND NOT deletion_mark
		  AND date >= $1 AND date <= $2
	`
	args := []any{filter.FromDate, filter.ToDate}

	if filter.CustomerID != "" {
		query += " AND customer_id = $3"
		args = append(args, filter.CustomerID)
	}

	query += `
		GROUP BY date_trunc('day', date)
		ORDER BY date
	`

	var rows []reports.SalesSummaryRow
	q := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("sales summary by day: %w", err)
	}
	return rows, nil
}

// GetOutstandingReport lists customers with non-zero balance due on
// finalized invoices, largest debtors first.
func (r *ReportRepo) GetOutstandingReport(ctx context.Context) (*reports.OutstandingReport, error) {
	report := &reports.OutstandingReport{AsOf: time.Now()}

	query := `
		SELECT
			i.customer_id AS customer_id,
			c.name AS customer_name,
			COUNT(*) AS invoice_count,
			SUM(i.balance_due) AS outstanding
		FROM doc_invoices i
		JOIN cat_customers c ON c.id = i.customer_id
		WHERE i.finalized
		  AND NOT i.deletion_mark
		  AND i.balance_due <> 0
		GROUP BY i.customer_id, c.name
		ORDER BY SUM(i.balance_due) DESC
	`

	q := r.txm.GetQuerier(ctx)
	if err := pgxscan.Select(ctx, q, &report.Rows, query); err != nil {
		return nil, fmt.Errorf("outstanding balances: %w", err)
	}

	for _, row := range report.Rows {
		if row.Outstanding > 0 {
			report.TotalOwed += row.Outstanding
		}
	}
	report.TotalRows = len(report.Rows)

	return report, nil
}

// GetRateTrend aggregates rate history by day for one pair. Last is the
// most recent rate of the day by created_at.
func (r *ReportRepo) GetRateTrend(ctx context.Context, filter reports.RateTrendFilter) (*reports.RateTrend, error) {
	trend := &reports.RateTrend{
		MetalType: filter.MetalType,
		Purity:    filter.Purity,
		FromDate:  filter.FromDate,
		ToDate:    filter.ToDate,
		Points:    []reports.RateTrendPoint{},
	}

	query := `
		SELECT
			date_trunc('day', created_at) AS date,
			MIN(rate_per_gram) AS min,
			MAX(rate_per_gram) AS max,
			(array_agg(rate_per_gram ORDER BY created_at DESC))[1] AS last
		FROM rate_records
		WHERE metal_type = $1 AND purity = $2
		  AND created_at >= $3 AND created_at <= $4
		GROUP BY date_trunc('day', created_at)
		ORDER BY date
	`

	q := r.txm.GetQuerier(ctx)
	err := pgxscan.Select(ctx, q, &trend.Points, query,
		filter.MetalType, filter.Purity, filter.FromDate, filter.ToDate)
	if err != nil {
		return nil, fmt.Errorf("rate trend: %w", err)
	}

	return trend, nil
}

// Ensure interface compliance
var _ reports.Repository = (*ReportRepo)(nil)
