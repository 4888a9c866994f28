package catalog_repo

import (
	"suvarnadesk/internal/domain/catalogs/worker"
	"suvarnadesk/internal/infrastructure/storage/postgres"
)

const workerTable = "cat_workers"

// WorkerRepo implements worker.Repository.
type WorkerRepo struct {
	*BaseCatalogRepo[*worker.Worker]
}

// NewWorkerRepo creates a new worker repository.
func NewWorkerRepo(txm *postgres.TxManager) *WorkerRepo {
	return &WorkerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*worker.Worker](
			txm,
			workerTable,
			postgres.ExtractDBColumns[worker.Worker](),
			func() *worker.Worker { return &worker.Worker{} },
		),
	}
}
