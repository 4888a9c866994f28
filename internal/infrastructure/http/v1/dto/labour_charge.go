package dto

import (
	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/core/types"
	"suvarnadesk/internal/domain/catalogs/labourcharge"
)

// --- Request DTOs ---

// CreateLabourChargeRequest is the request body for creating a labour charge.
type CreateLabourChargeRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	ChargeType string            `json:"chargeType" binding:"required"`
	Amount     types.MinorUnits  `json:"amount" binding:"required"`
	Attributes entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateLabourChargeRequest) ToEntity() *labourcharge.LabourCharge {
	c := labourcharge.New(r.Code, r.Name, labourcharge.ChargeType(r.ChargeType), r.Amount)
	c.Attributes = r.Attributes
	return c
}

// UpdateLabourChargeRequest is the request body for updating a labour charge.
type UpdateLabourChargeRequest struct {
	Code       string            `json:"code"`
	Name       string            `json:"name" binding:"required"`
	ChargeType string            `json:"chargeType" binding:"required"`
	Amount     types.MinorUnits  `json:"amount" binding:"required"`
	Attributes entity.Attributes `json:"attributes"`
	Version    int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateLabourChargeRequest) ApplyTo(c *labourcharge.LabourCharge) {
	c.Code = r.Code
	c.Name = r.Name
	c.ChargeType = labourcharge.ChargeType(r.ChargeType)
	c.Amount = r.Amount
	c.Attributes = r.Attributes
	c.Version = r.Version
}

// --- Response DTOs ---

// LabourChargeResponse is the response body for a labour charge.
type LabourChargeResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	ChargeType   string            `json:"chargeType"`
	Amount       types.MinorUnits  `json:"amount"`
	IsActive     bool              `json:"isActive"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromLabourCharge creates response DTO from domain entity.
func FromLabourCharge(c *labourcharge.LabourCharge) *LabourChargeResponse {
	return &LabourChargeResponse{
		ID:           c.ID.String(),
		Code:         c.Code,
		Name:         c.Name,
		ChargeType:   string(c.ChargeType),
		Amount:       c.Amount,
		IsActive:     c.IsActive(),
		DeletionMark: c.DeletionMark,
		Version:      c.Version,
		Attributes:   c.Attributes,
	}
}
