package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"suvarnadesk/internal/domain/pricing"
	"suvarnadesk/internal/infrastructure/http/v1/dto"
)

// PricingHandler handles HTTP requests for price quotes.
type PricingHandler struct {
	*BaseHandler
	service *pricing.Service
}

// NewPricingHandler creates a new pricing handler.
func NewPricingHandler(base *BaseHandler, service *pricing.Service) *PricingHandler {
	return &PricingHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Quote handles POST /pricing/quote
//
// The quote prices the submitted line items against current rates and
// returns line snapshots plus invoice totals. Nothing is persisted.
func (h *PricingHandler) Quote(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.QuoteRequest
	if !h.BindJSON(c, &req) {
		return
	}

	quote, err := h.service.QuoteInvoice(ctx, req.LineItems, req.GSTPercent, req.AmountPaid)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// RegisterRoutes registers pricing routes.
func (h *PricingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/quote", h.Quote)
}
