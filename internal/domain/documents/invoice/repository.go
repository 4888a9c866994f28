package invoice

import (
	"context"

	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain"
)

// Repository defines storage operations for invoices.
type Repository interface {
	Create(ctx context.Context, inv *Invoice) error
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, invoiceID id.ID) error
	GetByID(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	GetForUpdate(ctx context.Context, invoiceID id.ID) (*Invoice, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*Invoice], error)

	// SaveLines bulk-inserts the line snapshot for a new invoice.
	SaveLines(ctx context.Context, lines []*Line) error

	// GetLines returns lines for the invoice ordered by line_no.
	GetLines(ctx context.Context, invoiceID id.ID) ([]*Line, error)
}
