// Package tx defines the transaction boundary the domain layer sees.
package tx

import "context"

// Manager abstracts transaction management for the service layer.
// Services depend on this interface instead of the concrete pgx
// implementation, which keeps business logic testable.
type Manager interface {
	// RunInTransaction executes fn inside a transaction. If a transaction
	// is already present in ctx, fn joins it instead of opening a new one.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager runs read-only transactions with a relaxed
// statement timeout. Reports use this for long-running aggregates.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn inside a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
