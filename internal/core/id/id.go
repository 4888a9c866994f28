// Package id provides UUIDv7 identifiers for all entities.
// UUIDv7 embeds a Unix timestamp in the first 48 bits, so primary keys
// sort by creation time and keep good B-tree locality in PostgreSQL.
package id

import (
	"github.com/google/uuid"
)

// ID is an alias for UUID, used across all entities.
type ID = uuid.UUID

// New generates a time-ordered UUIDv7.
func New() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to V4.
		return uuid.New()
	}
	return id
}

// Parse converts a string to ID with validation.
func Parse(s string) (ID, error) {
	return uuid.Parse(s)
}

// IsNil reports whether id is the zero UUID.
func IsNil(id ID) bool {
	return id == uuid.Nil
}
