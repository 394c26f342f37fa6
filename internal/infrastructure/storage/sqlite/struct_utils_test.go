package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/domain/shopping"
)

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[shopping.Entry]()
	assert.Equal(t, []string{"id", "name", "quantity", "category", "checked", "notes", "created_at"}, cols)
}

func TestExtractDBColumns_Product(t *testing.T) {
	cols := ExtractDBColumns[product.Item]()
	assert.Contains(t, cols, "ean")
	assert.Contains(t, cols, "expiry_date")
	assert.Contains(t, cols, "is_vegan")
	assert.NotContains(t, cols, "")
}

func TestStructToMap(t *testing.T) {
	entry := shopping.Entry{ID: 3, Name: "Brot", Quantity: 2, Checked: true}

	m := StructToMap(&entry)
	assert.Equal(t, int64(3), m["id"])
	assert.Equal(t, "Brot", m["name"])
	assert.Equal(t, 2, m["quantity"])
	assert.Equal(t, true, m["checked"])

	// Same result for value and pointer receivers, served from the cache.
	assert.Equal(t, m, StructToMap(entry))
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("nope"))
}
