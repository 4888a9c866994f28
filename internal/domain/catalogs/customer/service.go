package customer

import (
	"context"

	"suvarnadesk/internal/core/tx"
	"suvarnadesk/internal/domain"
	"suvarnadesk/internal/domain/filter"
)

// Service provides customer business logic.
type Service struct {
	*domain.CatalogService[*Customer]
}

// NewService creates a customer service.
func NewService(repo domain.CatalogRepository[*Customer], txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "customer",
		}),
	}
}

// FindByPhone looks up customers by exact phone number.
func (s *Service) FindByPhone(ctx context.Context, phone string) (domain.ListResult[*Customer], error) {
	f := domain.DefaultListFilter()
	f.AdvancedFilters = []filter.Item{
		{Field: "phone", Operator: filter.Equal, Value: phone},
	}
	return s.List(ctx, f)
}
