package handlers

import (
	"suvarnadesk/internal/domain/catalogs/labourcharge"
	"suvarnadesk/internal/infrastructure/http/v1/dto"
)

// LabourChargeHTTPHandler is the concrete catalog handler for labour charges.
type LabourChargeHTTPHandler = CatalogHandler[
	*labourcharge.LabourCharge,
	dto.CreateLabourChargeRequest,
	dto.UpdateLabourChargeRequest,
]

// NewLabourChargeHandler creates the labour charge catalog handler.
func NewLabourChargeHandler(
	base *BaseHandler,
	service *labourcharge.Service,
) *LabourChargeHTTPHandler {

	config := CatalogHandlerConfig[
		*labourcharge.LabourCharge,
		dto.CreateLabourChargeRequest,
		dto.UpdateLabourChargeRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "labour_charge",

		MapCreateDTO: func(req dto.CreateLabourChargeRequest) *labourcharge.LabourCharge {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateLabourChargeRequest, existing *labourcharge.LabourCharge) *labourcharge.LabourCharge {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *labourcharge.LabourCharge) any {
			return dto.FromLabourCharge(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
