package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/infrastructure/http/v1/dto"
	"suvarnadesk/internal/infrastructure/storage/postgres"
)

// auditedEntityTypes lists the entity types that carry an audit trail.
var auditedEntityTypes = map[string]bool{
	"rate_record":   true,
	"invoice":       true,
	"customer":      true,
	"worker":        true,
	"labour_charge": true,
}

// AuditHandler exposes the audit trail to administrators.
type AuditHandler struct {
	*BaseHandler
	audit *postgres.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(base *BaseHandler, audit *postgres.AuditService) *AuditHandler {
	return &AuditHandler{
		BaseHandler: base,
		audit:       audit,
	}
}

// GetHistory handles GET /audit/:entityType/:id
func (h *AuditHandler) GetHistory(c *gin.Context) {
	ctx := c.Request.Context()

	entityType := c.Param("entityType")
	if !auditedEntityTypes[entityType] {
		h.Error(c, apperror.NewValidation("unknown entity type").
			WithDetail("entityType", entityType))
		return
	}

	entityID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	limit := h.ParseIntQuery(c, "limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	entries, err := h.audit.GetEntityHistory(ctx, entityType, entityID, limit)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.FromAuditEntry(e))
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// RegisterRoutes mounts audit routes on the given group.
func (h *AuditHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:entityType/:id", h.GetHistory)
}
