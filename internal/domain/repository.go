// Package domain provides core business logic interfaces and types.
package domain

import (
	"context"

	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/core/id"
	"suvarnadesk/internal/domain/filter"
)

// ListFilter is the common query surface for list endpoints.
type ListFilter struct {
	// Search matches against name and code, case-insensitively.
	Search string

	// IDs restricts the result to the given identifiers.
	IDs []id.ID

	// IncludeDeleted brings soft-deleted rows back into view.
	IncludeDeleted bool

	// ParentID narrows a hierarchical catalog to one branch.
	ParentID *string

	// IsFolder selects only groups or only items.
	IsFolder *bool

	// AdvancedFilters carries field conditions parsed from the query
	// string, validated against the table's columns by the repository.
	AdvancedFilters []filter.Item

	// OrderBy names the sort column; a "-" prefix flips the direction.
	OrderBy string

	Limit  int
	Offset int
}

// DefaultListFilter returns the defaults handlers start from.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:   50,
		OrderBy: "name",
	}
}

// ListResult is one page of a filtered listing.
type ListResult[T any] struct {
	Items      []T   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// CatalogRepository is the storage contract catalog services run on.
// Deletion is always the soft kind here; physical removal stays out of
// the service path so references from posted invoices never break.
type CatalogRepository[T entity.Validatable] interface {
	Create(ctx context.Context, entity T) error
	GetByID(ctx context.Context, id id.ID) (T, error)

	// GetByCode resolves a code, unique within the catalog.
	GetByCode(ctx context.Context, code string) (T, error)

	// Update rewrites the entity, guarded by its version.
	Update(ctx context.Context, entity T) error

	// SetDeletionMark sets or clears the soft-delete flag.
	SetDeletionMark(ctx context.Context, id id.ID, marked bool) error

	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	Exists(ctx context.Context, id id.ID) (bool, error)

	// GetTree returns the hierarchy, parents before children.
	GetTree(ctx context.Context, rootID *id.ID) ([]T, error)
}

// HookEvent names a point in the entity lifecycle.
type HookEvent string

const (
	BeforeCreate HookEvent = "before_create"
	AfterCreate  HookEvent = "after_create"
	BeforeUpdate HookEvent = "before_update"
	AfterUpdate  HookEvent = "after_update"
	BeforeDelete HookEvent = "before_delete"
	AfterDelete  HookEvent = "after_delete"
)

// Hook runs at a lifecycle point. Before-hooks may reject the write by
// returning an error; after-hook errors are only logged.
type Hook[T any] func(ctx context.Context, entity T) error

// HookRegistry keeps the hooks registered for one entity type, by
// event.
type HookRegistry[T any] struct {
	hooks map[HookEvent][]Hook[T]
}

// NewHookRegistry creates an empty hook registry.
func NewHookRegistry[T any]() *HookRegistry[T] {
	return &HookRegistry[T]{
		hooks: make(map[HookEvent][]Hook[T]),
	}
}

// On registers a hook. Hooks for one event run in registration order.
func (r *HookRegistry[T]) On(event HookEvent, hook Hook[T]) {
	r.hooks[event] = append(r.hooks[event], hook)
}

// Run executes the event's hooks, stopping at the first error.
func (r *HookRegistry[T]) Run(ctx context.Context, event HookEvent, entity T) error {
	for _, hook := range r.hooks[event] {
		if err := hook(ctx, entity); err != nil {
			return err
		}
	}
	return nil
}

func (r *HookRegistry[T]) RunBeforeCreate(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeCreate, entity)
}

func (r *HookRegistry[T]) RunAfterCreate(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterCreate, entity)
}

func (r *HookRegistry[T]) RunBeforeUpdate(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeUpdate, entity)
}

func (r *HookRegistry[T]) RunAfterUpdate(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterUpdate, entity)
}

func (r *HookRegistry[T]) RunBeforeDelete(ctx context.Context, entity T) error {
	return r.Run(ctx, BeforeDelete, entity)
}

func (r *HookRegistry[T]) RunAfterDelete(ctx context.Context, entity T) error {
	return r.Run(ctx, AfterDelete, entity)
}
