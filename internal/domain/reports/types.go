// Package reports provides report generation services.
package reports

import (
	"time"

	"suvarnadesk/internal/core/types"
	"suvarnadesk/internal/domain/rates"
)

// --- Sales Summary Report ---

// SalesSummaryFilter defines the period and grouping for the sales summary.
type SalesSummaryFilter struct {
	// Period (required)
	FromDate time.Time
	ToDate   time.Time

	// Optional customer filter
	CustomerID string

	// Break totals down by day
	GroupByDay bool
}

// SalesSummaryRow is one day's slice of the summary when grouping by day.
type SalesSummaryRow struct {
	Date         time.Time        `json:"date"`
	InvoiceCount int              `json:"invoiceCount"`
	Subtotal     types.MinorUnits `json:"subtotal"`
	GSTAmount    types.MinorUnits `json:"gstAmount"`
	GrandTotal   types.MinorUnits `json:"grandTotal"`
	AmountPaid   types.MinorUnits `json:"amountPaid"`
}

// SalesSummary represents the full sales summary report.
type SalesSummary struct {
	FromDate time.Time `json:"fromDate"`
	ToDate   time.Time `json:"toDate"`

	InvoiceCount int              `json:"invoiceCount"`
	Subtotal     types.MinorUnits `json:"subtotal"`
	GSTCollected types.MinorUnits `json:"gstCollected"`
	GrandTotal   types.MinorUnits `json:"grandTotal"`
	AmountPaid   types.MinorUnits `json:"amountPaid"`
	// Outstanding is grand total minus payments; negative means
	// customers hold credit.
	Outstanding types.MinorUnits `json:"outstanding"`

	Rows []SalesSummaryRow `json:"rows,omitempty"`
}

// --- Rate Trend Report ---

// RateTrendFilter defines the pair and period for the rate trend.
type RateTrendFilter struct {
	MetalType rates.MetalType
	Purity    string

	// Period (required)
	FromDate time.Time
	ToDate   time.Time
}

// RateTrendPoint is one day's aggregate for a metal/purity pair.
type RateTrendPoint struct {
	Date time.Time        `json:"date"`
	Min  types.MinorUnits `json:"min"`
	Max  types.MinorUnits `json:"max"`
	Last types.MinorUnits `json:"last"`
}

// RateTrend represents the full rate trend report.
type RateTrend struct {
	MetalType rates.MetalType  `json:"metalType"`
	Purity    string           `json:"purity"`
	FromDate  time.Time        `json:"fromDate"`
	ToDate    time.Time        `json:"toDate"`
	Points    []RateTrendPoint `json:"points"`
}

// --- Outstanding Balances ---

// OutstandingRow is a customer with unpaid invoice balance.
type OutstandingRow struct {
	CustomerID   string           `json:"customerId"`
	CustomerName string           `json:"customerName"`
	InvoiceCount int              `json:"invoiceCount"`
	Outstanding  types.MinorUnits `json:"outstanding"`
}

// OutstandingReport lists customers ordered by balance due, largest first.
type OutstandingReport struct {
	AsOf      time.Time        `json:"asOf"`
	Rows      []OutstandingRow `json:"rows"`
	TotalOwed types.MinorUnits `json:"totalOwed"`
	TotalRows int              `json:"totalRows"`
}
