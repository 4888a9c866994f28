package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/domain/rates"
	"suvarnadesk/internal/domain/reports"
	"suvarnadesk/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// parseReportDate accepts a plain date or a full RFC3339 timestamp.
func parseReportDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// GetSalesSummary handles GET /reports/sales-summary
func (h *ReportsHandler) GetSalesSummary(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SalesSummaryRequest
	if !h.BindQuery(c, &req) {
		return
	}

	fromDate, err := parseReportDate(req.FromDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid fromDate format, expected YYYY-MM-DD or RFC3339"))
		return
	}

	toDate, err := parseReportDate(req.ToDate)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid toDate format, expected YYYY-MM-DD or RFC3339"))
		return
	}

	summary, err := h.service.GetSalesSummary(ctx, reports.SalesSummaryFilter{
		FromDate:   fromDate,
		ToDate:     toDate,
		CustomerID: req.CustomerID,
		GroupByDay: req.GroupByDay,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetRateTrend handles GET /reports/rate-trend
func (h *ReportsHandler) GetRateTrend(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RateTrendRequest
	if !h.BindQuery(c, &req) {
		return
	}

	filter := reports.RateTrendFilter{
		MetalType: rates.MetalType(req.MetalType),
		Purity:    req.Purity,
	}

	if req.FromDate != "" {
		t, err := parseReportDate(req.FromDate)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid fromDate format, expected YYYY-MM-DD or RFC3339"))
			return
		}
		filter.FromDate = t
	}
	if req.ToDate != "" {
		t, err := parseReportDate(req.ToDate)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid toDate format, expected YYYY-MM-DD or RFC3339"))
			return
		}
		filter.ToDate = t
	}

	trend, err := h.service.GetRateTrend(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, trend)
}

// GetOutstanding handles GET /reports/outstanding
func (h *ReportsHandler) GetOutstanding(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.service.GetOutstanding(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sales-summary", h.GetSalesSummary)
	rg.GET("/rate-trend", h.GetRateTrend)
	rg.GET("/outstanding", h.GetOutstanding)
}
