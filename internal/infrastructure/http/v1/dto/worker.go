package dto

import (
	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/domain/catalogs/worker"
)

// --- Request DTOs ---

// CreateWorkerRequest is the request body for creating a worker.
type CreateWorkerRequest struct {
	Code           string            `json:"code"`
	Name           string            `json:"name" binding:"required"`
	Phone          string            `json:"phone" binding:"required"`
	Specialization string            `json:"specialization"`
	ParentID       *string           `json:"parentId"`
	IsFolder       bool              `json:"isFolder"`
	Attributes     entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateWorkerRequest) ToEntity() *worker.Worker {
	w := worker.New(r.Code, r.Name, r.Phone)
	w.Specialization = r.Specialization
	w.ParentID = r.ParentID
	w.IsFolder = r.IsFolder
	w.Attributes = r.Attributes
	return w
}

// UpdateWorkerRequest is the request body for updating a worker.
type UpdateWorkerRequest struct {
	Code           string            `json:"code"`
	Name           string            `json:"name" binding:"required"`
	Phone          string            `json:"phone" binding:"required"`
	Specialization string            `json:"specialization"`
	ParentID       *string           `json:"parentId,omitempty"`
	IsFolder       bool              `json:"isFolder"`
	Attributes     entity.Attributes `json:"attributes"`
	Version        int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateWorkerRequest) ApplyTo(w *worker.Worker) {
	w.Code = r.Code
	w.Name = r.Name
	w.Phone = r.Phone
	w.Specialization = r.Specialization
	w.ParentID = r.ParentID
	w.IsFolder = r.IsFolder
	w.Attributes = r.Attributes
	w.Version = r.Version
}

// --- Response DTOs ---

// WorkerResponse is the response body for a worker.
type WorkerResponse struct {
	ID             string            `json:"id"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	Phone          string            `json:"phone"`
	Specialization string            `json:"specialization,omitempty"`
	ParentID       *string           `json:"parentId,omitempty"`
	IsFolder       bool              `json:"isFolder"`
	DeletionMark   bool              `json:"deletionMark"`
	Version        int               `json:"version"`
	Attributes     entity.Attributes `json:"attributes,omitempty"`
}

// FromWorker creates response DTO from domain entity.
func FromWorker(w *worker.Worker) *WorkerResponse {
	return &WorkerResponse{
		ID:             w.ID.String(),
		Code:           w.Code,
		Name:           w.Name,
		Phone:          w.Phone,
		Specialization: w.Specialization,
		ParentID:       w.ParentID,
		IsFolder:       w.IsFolder,
		DeletionMark:   w.DeletionMark,
		Version:        w.Version,
		Attributes:     w.Attributes,
	}
}
