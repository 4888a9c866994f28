package rates

import (
	"context"
	"time"
)

// Repository defines storage operations for the rate ledger.
//
// LockPair must be called inside a transaction before the
// deactivate-then-insert sequence: it serializes concurrent upserts
// for the same (metal, purity) pair without blocking other pairs.
type Repository interface {
	// LockPair takes a transaction-scoped lock on the pair.
	LockPair(ctx context.Context, metal MetalType, purity string) error

	// DeactivateActive clears is_active on the current active record
	// for the pair, if one exists. Returns the number of rows changed.
	DeactivateActive(ctx context.Context, metal MetalType, purity string) (int64, error)

	// Insert stores a new record.
	Insert(ctx context.Context, rec *RateRecord) error

	// GetActive returns the single active record for the pair.
	// Returns apperror with CodeNoActiveRate if none exists.
	GetActive(ctx context.Context, metal MetalType, purity string) (*RateRecord, error)

	// ListActive returns all active records ordered by (metal_type, purity).
	ListActive(ctx context.Context) ([]*RateRecord, error)

	// History returns all records (active and superseded) for the pair
	// created at or after since, newest first.
	History(ctx context.Context, metal MetalType, purity string, since time.Time) ([]*RateRecord, error)
}
