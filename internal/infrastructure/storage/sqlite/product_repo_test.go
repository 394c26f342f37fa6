package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestProductRepo_CRUD(t *testing.T) {
	repo := NewProductRepo(testDB(t))
	ctx := context.Background()

	item := &product.Item{
		Barcode:      "4311501043622",
		Name:         "Vollmilch",
		ExpiryDate:   "2026-09-10",
		PurchaseDate: "2026-08-30",
		Location:     "Kühlschrank",
		Quantity:     2,
		WeightVolume: "1 l",
		Notes:        "3,5% Fett",
		IsVegetarian: true,
		Price:        decimal.NewFromFloat(1.19),
		Category:     "Milchprodukte",
	}

	id, err := repo.Create(ctx, item)
	require.NoError(t, err)
	require.Positive(t, id)

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Vollmilch", got.Name)
	assert.Equal(t, "Kühlschrank", got.Location)
	assert.True(t, got.IsVegetarian)
	assert.False(t, got.IsVegan)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(1.19)), "price %s", got.Price)
	assert.NotEmpty(t, got.CreatedAt)

	got.Quantity = 5
	got.Location = "Keller"
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Quantity)
	assert.Equal(t, "Keller", updated.Location)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.GetByID(ctx, id)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestProductRepo_UpdateMissing(t *testing.T) {
	repo := NewProductRepo(testDB(t))

	err := repo.Update(context.Background(), &product.Item{ID: 42, Name: "Geist", Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestProductRepo_List(t *testing.T) {
	repo := NewProductRepo(testDB(t))
	ctx := context.Background()

	for _, name := range []string{"Brot", "Eier", "Mehl"} {
		_, err := repo.Create(ctx, &product.Item{Name: name, Quantity: 1})
		require.NoError(t, err)
	}

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Brot", items[0].Name, "insertion order")
}

func TestProductRepo_FindByBarcode(t *testing.T) {
	repo := NewProductRepo(testDB(t))
	ctx := context.Background()

	_, err := repo.Create(ctx, &product.Item{Name: "Milch", Barcode: "4311501043622", Quantity: 1})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &product.Item{Name: "Ohne Barcode", Quantity: 1})
	require.NoError(t, err)

	items, err := repo.FindByBarcode(ctx, "4311501043622")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Milch", items[0].Name)

	// An empty barcode never matches the barcode-less item.
	items, err = repo.FindByBarcode(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestProductRepo_FindByName(t *testing.T) {
	repo := NewProductRepo(testDB(t))
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := repo.Create(ctx, &product.Item{Name: "Milch", Quantity: 1})
		require.NoError(t, err)
	}

	items, err := repo.FindByName(ctx, "MILCH", 5)
	require.NoError(t, err)
	assert.Len(t, items, 5, "case-insensitive, capped at limit")
}

func TestProductRepo_BatchOperations(t *testing.T) {
	repo := NewProductRepo(testDB(t))
	ctx := context.Background()

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		id, err := repo.Create(ctx, &product.Item{Name: name, Quantity: 1})
		require.NoError(t, err)
		ids = append(ids, id)
	}

	require.NoError(t, repo.UpdateLocationMany(ctx, ids[:2], "Vorratsschrank"))

	first, err := repo.GetByID(ctx, ids[0])
	require.NoError(t, err)
	assert.Equal(t, "Vorratsschrank", first.Location)

	third, err := repo.GetByID(ctx, ids[2])
	require.NoError(t, err)
	assert.Empty(t, third.Location)

	require.NoError(t, repo.DeleteMany(ctx, ids[:2]))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C", items[0].Name)
}
