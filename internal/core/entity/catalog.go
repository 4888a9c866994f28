package entity

import (
	"context"

	"suvarnadesk/internal/core/apperror"
)

// Catalog is the shape shared by reference-data entries such as labour
// charges, customers and workers. Entries may be arranged in folders;
// a folder is a Catalog with IsFolder set.
type Catalog struct {
	BaseCatalog

	// Code identifies the entry to humans. Unique within one catalog.
	Code string `db:"code" json:"code"`

	// Name is what listings display.
	Name string `db:"name" json:"name"`

	// ParentID points at the containing folder, nil at top level.
	ParentID *string `db:"parent_id" json:"parentId,omitempty"`

	IsFolder bool `db:"is_folder" json:"isFolder"`
}

// NewCatalog creates a catalog entry with a fresh identifier.
func NewCatalog(code, name string) Catalog {
	return Catalog{
		BaseCatalog: NewBaseCatalog(),
		Code:        code,
		Name:        name,
	}
}

// Validate checks the invariants every catalog entry shares. Code
// uniqueness is left to the database constraint.
func (c *Catalog) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if c.ParentID != nil && *c.ParentID == c.ID.String() {
		return apperror.NewValidation("entry cannot be its own parent").
			WithDetail("field", "parentId")
	}
	return nil
}
