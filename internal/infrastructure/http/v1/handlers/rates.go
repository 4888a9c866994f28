package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"suvarnadesk/internal/domain/rates"
	"suvarnadesk/internal/infrastructure/http/v1/dto"
)

// RatesHandler handles HTTP requests for the rate ledger.
type RatesHandler struct {
	*BaseHandler
	service *rates.Service
}

// NewRatesHandler creates a new rates handler.
func NewRatesHandler(base *BaseHandler, service *rates.Service) *RatesHandler {
	return &RatesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ListActive handles GET /rates
func (h *RatesHandler) ListActive(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.service.GetActiveRates(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": records})
}

// Get handles GET /rates/:metal/:purity
func (h *RatesHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	record, err := h.service.GetRate(ctx, rates.MetalType(c.Param("metal")), c.Param("purity"))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// GetHistory handles GET /rates/:metal/:purity/history
func (h *RatesHandler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	sinceDays := h.ParseIntQuery(c, "sinceDays", 30)
	records, err := h.service.GetHistory(ctx, rates.MetalType(c.Param("metal")), c.Param("purity"), sinceDays)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": records})
}

// Upsert handles POST /rates
func (h *RatesHandler) Upsert(c *gin.Context) {
	ctx := c.Request.Context()

	var in rates.RateInput
	if !h.BindJSON(c, &in) {
		return
	}

	record, err := h.service.UpsertRate(ctx, in)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusCreated, "application/json", record)
	c.JSON(http.StatusCreated, record)
}

// BulkUpsert handles POST /rates/bulk
func (h *RatesHandler) BulkUpsert(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BulkUpsertRatesRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.BulkUpsert(ctx, req.Entries)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.CompleteIdempotency(c, http.StatusOK, "application/json", result)
	c.JSON(http.StatusOK, result)
}

// Refresh handles POST /rates/refresh
func (h *RatesHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	result, err := h.service.RefreshFromExternalSource(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers rate ledger routes. Listing and history are
// open to any authenticated user; writes require the given middleware
// (admin role in the default wiring).
func (h *RatesHandler) RegisterRoutes(rg *gin.RouterGroup, writeGuard gin.HandlerFunc) {
	rg.GET("", h.ListActive)
	rg.GET("/:metal/:purity", h.Get)
	rg.GET("/:metal/:purity/history", h.GetHistory)
	rg.POST("", writeGuard, h.Upsert)
	rg.POST("/bulk", writeGuard, h.BulkUpsert)
	rg.POST("/refresh", writeGuard, h.Refresh)
}
