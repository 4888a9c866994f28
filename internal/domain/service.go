// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"
	"fmt"

	"suvarnadesk/internal/core/apperror"
	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/core/tx"
	"suvarnadesk/pkg/logger"
)

// CatalogService is the generic write and read path shared by every
// catalog. Per-catalog behaviour plugs in through hooks rather than
// subclassing, so one service covers metals, purities, labour charges,
// customers and workers alike.
type CatalogService[T entity.Validatable] struct {
	repo      CatalogRepository[T]
	txManager tx.Manager
	hooks     *HookRegistry[T]

	// entityName shows up in error messages and log lines.
	entityName string
}

// CatalogServiceConfig configures the catalog service.
type CatalogServiceConfig[T entity.Validatable] struct {
	Repo       CatalogRepository[T]
	TxManager  tx.Manager
	EntityName string
}

// NewCatalogService creates a new catalog service.
func NewCatalogService[T entity.Validatable](cfg CatalogServiceConfig[T]) *CatalogService[T] {
	return &CatalogService[T]{
		repo:       cfg.Repo,
		txManager:  cfg.TxManager,
		hooks:      NewHookRegistry[T](),
		entityName: cfg.EntityName,
	}
}

// Hooks exposes the hook registry so wiring code can attach per-catalog
// rules at startup.
func (s *CatalogService[T]) Hooks() *HookRegistry[T] {
	return s.hooks
}

func (s *CatalogService[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

// normalizeGetErr rewrites a repository not-found so the message names
// the entity the caller asked about, not the table.
func (s *CatalogService[T]) normalizeGetErr(err error, idOrCode any) error {
	if err == nil {
		return nil
	}
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(s.entityName, idOrCode)
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewInternal(err).WithDetail("entity", s.entityName).WithDetail("id", idOrCode)
}

// mutate runs the common write sequence: before-hook, the write inside
// a transaction, then the after-hook. After-hooks run once the row is
// committed, so their failure is logged but never surfaced.
func (s *CatalogService[T]) mutate(ctx context.Context, e T, op string, before, after func(context.Context, T) error, write func(context.Context) error) error {
	if err := before(ctx, e); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := write(ctx); err != nil {
			return fmt.Errorf("%s %s: %w", op, s.entityName, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := after(ctx, e); err != nil {
		logger.Warn(ctx, "after-"+op+" hook failed", "entity", s.entityName, "error", err)
	}
	return nil
}

// Create validates the entity and inserts it.
func (s *CatalogService[T]) Create(ctx context.Context, e T) error {
	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}
	return s.mutate(ctx, e, "create", s.hooks.RunBeforeCreate, s.hooks.RunAfterCreate, func(ctx context.Context) error {
		return s.repo.Create(ctx, e)
	})
}

// GetByID returns the entity by its identifier.
func (s *CatalogService[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return e, s.normalizeGetErr(err, entityID.String())
	}
	return e, nil
}

// GetByCode resolves a human-entered code.
func (s *CatalogService[T]) GetByCode(ctx context.Context, code string) (T, error) {
	e, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return e, s.normalizeGetErr(err, code)
	}
	return e, nil
}

// Update validates and rewrites the entity. Stale versions surface as
// a conflict from the repository.
func (s *CatalogService[T]) Update(ctx context.Context, e T) error {
	if err := e.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}
	return s.mutate(ctx, e, "update", s.hooks.RunBeforeUpdate, s.hooks.RunAfterUpdate, func(ctx context.Context) error {
		return s.repo.Update(ctx, e)
	})
}

// Delete soft-deletes the entity. The row is loaded first so the
// before-delete hooks can veto based on its current state.
func (s *CatalogService[T]) Delete(ctx context.Context, entityID id.ID) error {
	e, err := s.repo.GetByID(ctx, entityID)
	if err != nil {
		return s.normalizeGetErr(err, entityID.String())
	}
	return s.mutate(ctx, e, "delete", s.hooks.RunBeforeDelete, s.hooks.RunAfterDelete, func(ctx context.Context) error {
		return s.repo.SetDeletionMark(ctx, entityID, true)
	})
}

// SetDeletionMark marks or unmarks without running delete hooks. The
// handler uses it for the explicit restore operation.
func (s *CatalogService[T]) SetDeletionMark(ctx context.Context, entityID id.ID, marked bool) error {
	return s.repo.SetDeletionMark(ctx, entityID, marked)
}

// List returns a filtered page of entities.
func (s *CatalogService[T]) List(ctx context.Context, filter ListFilter) (ListResult[T], error) {
	return s.repo.List(ctx, filter)
}

// Exists reports whether the entity is present.
func (s *CatalogService[T]) Exists(ctx context.Context, entityID id.ID) (bool, error) {
	return s.repo.Exists(ctx, entityID)
}

// GetTree returns the hierarchy under rootID, or the whole forest when
// rootID is nil.
func (s *CatalogService[T]) GetTree(ctx context.Context, rootID *id.ID) ([]T, error) {
	return s.repo.GetTree(ctx, rootID)
}
