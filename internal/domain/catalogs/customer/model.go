// Package customer defines the customer catalog.
package customer

import (
	"context"
	"strings"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/entity"
)

// Customer is a retail customer referenced by invoices.
type Customer struct {
	entity.Catalog

	Phone   string `db:"phone" json:"phone"`
	Email   string `db:"email" json:"email,omitempty"`
	Address string `db:"address" json:"address,omitempty"`
	GSTIN   string `db:"gstin" json:"gstin,omitempty"`
}

// New creates a Customer.
func New(code, name, phone string) *Customer {
	return &Customer{
		Catalog: entity.NewCatalog(code, name),
		Phone:   phone,
	}
}

// Validate implements entity.Validatable.
func (c *Customer) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(c.Phone) == "" {
		return apperror.NewValidation("phone is required").
			WithDetail("field", "phone")
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return apperror.NewValidation("email is malformed").
			WithDetail("field", "email").
			WithDetail("value", c.Email)
	}
	return nil
}
