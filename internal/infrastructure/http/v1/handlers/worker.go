package handlers

import (
	"suvarnadesk/internal/domain/catalogs/worker"
	"suvarnadesk/internal/infrastructure/http/v1/dto"
)

// WorkerHTTPHandler is the concrete catalog handler for workers.
type WorkerHTTPHandler = CatalogHandler[
	*worker.Worker,
	dto.CreateWorkerRequest,
	dto.UpdateWorkerRequest,
]

// NewWorkerHandler creates the worker catalog handler.
func NewWorkerHandler(
	base *BaseHandler,
	service *worker.Service,
) *WorkerHTTPHandler {

	config := CatalogHandlerConfig[
		*worker.Worker,
		dto.CreateWorkerRequest,
		dto.UpdateWorkerRequest,
	]{
		Service:    service.CatalogService,
		EntityName: "worker",

		MapCreateDTO: func(req dto.CreateWorkerRequest) *worker.Worker {
			return req.ToEntity()
		},

		MapUpdateDTO: func(req dto.UpdateWorkerRequest, existing *worker.Worker) *worker.Worker {
			req.ApplyTo(existing)
			return existing
		},

		MapToDTO: func(entity *worker.Worker) any {
			return dto.FromWorker(entity)
		},
	}

	return NewCatalogHandler(base, config)
}
