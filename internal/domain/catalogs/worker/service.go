package worker

import (
	"suvarnadesk/internal/core/tx"
	"suvarnadesk/internal/domain"
)

// Service provides worker business logic.
type Service struct {
	*domain.CatalogService[*Worker]
}

// NewService creates a worker service.
func NewService(repo domain.CatalogRepository[*Worker], txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Worker]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "worker",
		}),
	}
}
