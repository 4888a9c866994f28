// Package worker defines the workshop worker catalog used for
// job assignment on invoices.
package worker

import (
	"context"
	"strings"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/entity"
)

// Worker is a workshop artisan assignable to invoice jobs.
type Worker struct {
	entity.Catalog

	Phone string `db:"phone" json:"phone"`
	// Specialization is a free-form skill label (e.g. "polishing").
	Specialization string `db:"specialization" json:"specialization,omitempty"`
}

// New creates a Worker.
func New(code, name, phone string) *Worker {
	return &Worker{
		Catalog: entity.NewCatalog(code, name),
		Phone:   phone,
	}
}

// Validate implements entity.Validatable.
func (w *Worker) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(w.Phone) == "" {
		return apperror.NewValidation("phone is required").
			WithDetail("field", "phone")
	}
	return nil
}
