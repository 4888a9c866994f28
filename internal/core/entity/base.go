package entity

import (
	"context"
	"time"

	"suvarnadesk/internal/core/id"
)

// Validatable is implemented by entities that check their own
// invariants. Validation never touches the database; cross-entity rules
// live in the services.
type Validatable interface {
	Validate(ctx context.Context) error
}

// BaseEntity carries the fields every catalog and document shares.
type BaseEntity struct {
	// ID is a UUIDv7 primary key.
	ID id.ID `db:"id" json:"id"`

	// DeletionMark soft-deletes the entity without losing references.
	DeletionMark bool `db:"deletion_mark" json:"deletionMark"`

	// Version backs optimistic locking; every update increments it.
	Version int `db:"version" json:"version"`

	// Attributes holds shop-specific custom fields, stored as JSONB.
	Attributes Attributes `db:"attributes" json:"attributes,omitempty"`
}

// NewBaseEntity generates an ID and starts the version at one.
func NewBaseEntity() BaseEntity {
	return BaseEntity{
		ID:      id.New(),
		Version: 1,
	}
}

// GetID returns the entity ID.
func (b *BaseEntity) GetID() id.ID {
	return b.ID
}

// Touch increments the optimistic locking version.
func (b *BaseEntity) Touch() {
	b.Version++
}

// MarkDeleted sets the deletion mark.
func (b *BaseEntity) MarkDeleted() {
	b.DeletionMark = true
}

// BaseDocument adds the audit timestamps documents carry.
type BaseDocument struct {
	BaseEntity

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
	CreatedBy string    `db:"created_by" json:"createdBy,omitempty"`
	UpdatedBy string    `db:"updated_by" json:"updatedBy,omitempty"`
}

// NewBaseDocument generates an ID and stamps creation time in UTC.
func NewBaseDocument() BaseDocument {
	now := time.Now().UTC()
	return BaseDocument{
		BaseEntity: NewBaseEntity(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Touch stamps the update time and increments the version.
func (b *BaseDocument) Touch() {
	b.UpdatedAt = time.Now().UTC()
	b.BaseEntity.Touch()
}

// SetUpdatedAt overrides the update timestamp. Repositories use it to
// mirror what the database actually wrote.
func (b *BaseDocument) SetUpdatedAt(t time.Time) {
	b.UpdatedAt = t
}

// BaseCatalog is BaseEntity under another name. Catalogs carry no audit
// timestamps; their history lives in the audit log.
type BaseCatalog struct {
	BaseEntity
}

// NewBaseCatalog generates an ID for a new catalog entry.
func NewBaseCatalog() BaseCatalog {
	return BaseCatalog{
		BaseEntity: NewBaseEntity(),
	}
}
