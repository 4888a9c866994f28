package entity

import (
	"context"
	"time"

	"suvarnadesk/internal/core/apperror"
)

// Document is the shape shared by dated business records, invoices
// being the one kind this system issues.
type Document struct {
	BaseDocument

	// Number is assigned from a gapless series at save time.
	Number string `db:"number" json:"number"`

	// Date is the business date, which may trail the creation date
	// when a paper invoice is entered later.
	Date time.Time `db:"date" json:"date"`

	// Finalized marks the document a frozen snapshot. A finalized
	// invoice never re-prices its lines, no matter how rates or
	// labour charges change afterwards.
	Finalized bool `db:"finalized" json:"finalized"`

	Comment string `db:"comment" json:"comment,omitempty"`
}

// NewDocument creates a document dated now, with a fresh identifier.
func NewDocument() Document {
	return Document{
		BaseDocument: NewBaseDocument(),
		Date:         time.Now().UTC(),
	}
}

// Validate checks the invariants every document shares.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}

	return nil
}

// MarkFinalized freezes the document snapshot.
func (d *Document) MarkFinalized() {
	d.Finalized = true
	d.Touch()
}

// IsBackdated reports whether the business date falls before today.
func (d *Document) IsBackdated() bool {
	return d.Date.Before(time.Now().UTC().Truncate(24 * time.Hour))
}
