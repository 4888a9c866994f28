package dto

// --- Sales Summary Report ---

// SalesSummaryRequest represents request for the sales summary report.
type SalesSummaryRequest struct {
	FromDate   string `form:"fromDate" binding:"required"`
	ToDate     string `form:"toDate" binding:"required"`
	CustomerID string `form:"customerId"`
	GroupByDay bool   `form:"groupByDay"`
}

// --- Rate Trend Report ---

// RateTrendRequest represents request for the rate trend report.
// Dates are optional; the service defaults to the last 30 days.
type RateTrendRequest struct {
	MetalType string `form:"metalType" binding:"required"`
	Purity    string `form:"purity" binding:"required"`
	FromDate  string `form:"fromDate"`
	ToDate    string `form:"toDate"`
}
