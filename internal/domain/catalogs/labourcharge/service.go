package labourcharge

import (
	"context"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/tx"
	"suvarnadesk/internal/domain"
)

// Service provides labour charge business logic.
type Service struct {
	*domain.CatalogService[*LabourCharge]
}

// NewService creates a labour charge service.
func NewService(repo domain.CatalogRepository[*LabourCharge], txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*LabourCharge]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "labour_charge",
		}),
	}
}

// GetActiveCharge returns the charge only if it may be used on new
// invoices. A deactivated charge yields a business rule error so the
// caller cannot silently price against a retired rule.
func (s *Service) GetActiveCharge(ctx context.Context, chargeID id.ID) (*LabourCharge, error) {
	charge, err := s.GetByID(ctx, chargeID)
	if err != nil {
		return nil, err
	}
	if !charge.IsActive() {
		return nil, apperror.NewChargeInactive(chargeID.String())
	}
	return charge, nil
}

// ListActive returns charges usable in new-invoice pickers.
func (s *Service) ListActive(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*LabourCharge], error) {
	filter.IncludeDeleted = false
	return s.List(ctx, filter)
}
