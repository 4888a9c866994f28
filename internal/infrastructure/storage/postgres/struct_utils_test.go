package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"suvarnadesk/internal/core/entity"
	"suvarnadesk/internal/core/id"
)

type taggedCatalog struct {
	entity.BaseCatalog
	Code  string `db:"code" json:"code"`
	Name  string `db:"name" json:"name"`
	Notes string `json:"notes"`
	skip  int    `db:"-"`
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[taggedCatalog]()

	// Embedded base fields come first, own fields follow.
	assert.Equal(t, []string{"id", "deletion_mark", "version", "attributes", "code", "name"}, cols)
}

func TestExtractDBColumns_Pointer(t *testing.T) {
	assert.Equal(t, ExtractDBColumns[taggedCatalog](), ExtractDBColumns[*taggedCatalog]())
}

func TestStructToMap(t *testing.T) {
	cat := taggedCatalog{
		BaseCatalog: entity.BaseCatalog{
			BaseEntity: entity.BaseEntity{
				ID:           id.New(),
				DeletionMark: true,
				Version:      5,
			},
		},
		Code:  "GOLD-22K",
		Name:  "Gold 22 karat",
		Notes: "untagged, must not appear",
		skip:  1,
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, true, m["deletion_mark"])
	assert.Equal(t, 5, m["version"])
	assert.Equal(t, "GOLD-22K", m["code"])
	assert.Equal(t, "Gold 22 karat", m["name"])
	assert.NotContains(t, m, "notes")
	assert.NotContains(t, m, "-")
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
}
