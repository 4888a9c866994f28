// Package numerator defines the domain contract for document
// auto-numbering. The PostgreSQL implementation lives in the
// infrastructure layer.
package numerator

import (
	"context"
	"time"
)

// Generator allocates sequential document numbers.
type Generator interface {
	// GetNextNumber returns the next number formatted as
	// PREFIX-YEAR-XXXXX (e.g. INV-2026-00001). The strict strategy
	// is gapless; the cached strategy trades gaps for speed.
	GetNextNumber(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error)

	// SetNextNumber overrides the counter, for data migrations.
	SetNextNumber(ctx context.Context, cfg Config, period time.Time, value int64) error
}
