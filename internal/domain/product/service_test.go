package product

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
)

// Mock objects

type mockRepo struct {
	items   map[int64]Item
	nextID  int64
	deleted []int64
	moved   map[int64]string
}

func newMockRepo() *mockRepo {
	return &mockRepo{items: map[int64]Item{}, nextID: 1, moved: map[int64]string{}}
}

func (m *mockRepo) List(ctx context.Context) ([]Item, error) {
	out := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, it)
	}
	return out, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*Item, error) {
	it, ok := m.items[id]
	if !ok {
		return nil, apperror.NewNotFound("Product", id)
	}
	return &it, nil
}

func (m *mockRepo) Create(ctx context.Context, item *Item) (int64, error) {
	id := m.nextID
	m.nextID++
	item.ID = id
	m.items[id] = *item
	return id, nil
}

func (m *mockRepo) Update(ctx context.Context, item *Item) error {
	if _, ok := m.items[item.ID]; !ok {
		return apperror.NewNotFound("Product", item.ID)
	}
	m.items[item.ID] = *item
	return nil
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	delete(m.items, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockRepo) DeleteMany(ctx context.Context, ids []int64) error {
	for _, id := range ids {
		delete(m.items, id)
		m.deleted = append(m.deleted, id)
	}
	return nil
}

func (m *mockRepo) UpdateLocationMany(ctx context.Context, ids []int64, location string) error {
	for _, id := range ids {
		it := m.items[id]
		it.Location = location
		m.items[id] = it
		m.moved[id] = location
	}
	return nil
}

func (m *mockRepo) FindByBarcode(ctx context.Context, barcode string) ([]Item, error) {
	var out []Item
	for _, it := range m.items {
		if it.Barcode == barcode {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *mockRepo) FindByName(ctx context.Context, name string, limit int) ([]Item, error) {
	var out []Item
	for _, it := range m.items {
		if strings.EqualFold(it.Name, name) {
			out = append(out, it)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type mockHistory struct {
	recorded []Item
}

func (m *mockHistory) RecordProduct(ctx context.Context, item Item) error {
	m.recorded = append(m.recorded, item)
	return nil
}

type mockImages struct {
	saved   int
	deleted []string
}

func (m *mockImages) SaveDataURI(dataURI string) (string, error) {
	m.saved++
	return "/static/uploads/test.jpg", nil
}

func (m *mockImages) Delete(publicURL string) {
	m.deleted = append(m.deleted, publicURL)
}

func (m *mockImages) IsStored(publicURL string) bool {
	return strings.HasPrefix(publicURL, "/static/uploads/")
}

func newTestService() (*Service, *mockRepo, *mockHistory, *mockImages) {
	repo := newMockRepo()
	hist := &mockHistory{}
	imgs := &mockImages{}
	return NewService(repo, hist, imgs), repo, hist, imgs
}

func TestService_Create(t *testing.T) {
	svc, repo, hist, imgs := newTestService()
	ctx := context.Background()

	item := &Item{
		Name:     "Milch",
		Barcode:  "4311501043622",
		Quantity: 2,
		ImageURL: "data:image/jpeg;base64,xxxx",
	}
	id, err := svc.Create(ctx, item)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	stored := repo.items[id]
	assert.Equal(t, "/static/uploads/test.jpg", stored.ImageURL)
	assert.NotEmpty(t, stored.PurchaseDate, "purchase date defaults to today")
	assert.Equal(t, 1, imgs.saved)

	require.Len(t, hist.recorded, 1)
	assert.Equal(t, "4311501043622", hist.recorded[0].Barcode)
}

func TestService_Create_Invalid(t *testing.T) {
	svc, _, hist, _ := newTestService()

	_, err := svc.Create(context.Background(), &Item{Name: "   ", Quantity: 1})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, hist.recorded)
}

func TestService_Create_NoBarcodeSkipsHistory(t *testing.T) {
	svc, _, hist, _ := newTestService()

	_, err := svc.Create(context.Background(), &Item{Name: "Brot", Quantity: 1})
	require.NoError(t, err)
	assert.Empty(t, hist.recorded)
}

func TestService_Update_ReplacesImage(t *testing.T) {
	svc, repo, _, imgs := newTestService()
	ctx := context.Background()

	repo.items[7] = Item{ID: 7, Name: "Reis", Quantity: 1, ImageURL: "/static/uploads/old.jpg"}
	repo.nextID = 8

	err := svc.Update(ctx, &Item{ID: 7, Name: "Reis", Quantity: 1, ImageURL: "data:image/jpeg;base64,yyyy"})
	require.NoError(t, err)

	assert.Equal(t, "/static/uploads/test.jpg", repo.items[7].ImageURL)
	assert.Equal(t, []string{"/static/uploads/old.jpg"}, imgs.deleted)
}

func TestService_Update_EmptyImageKeepsOrDeletes(t *testing.T) {
	svc, repo, _, imgs := newTestService()
	ctx := context.Background()

	// Emptied field deletes the stored file.
	repo.items[3] = Item{ID: 3, Name: "Mehl", Quantity: 1, ImageURL: "/static/uploads/a.jpg"}
	err := svc.Update(ctx, &Item{ID: 3, Name: "Mehl", Quantity: 1})
	require.NoError(t, err)
	assert.Empty(t, repo.items[3].ImageURL)
	assert.Equal(t, []string{"/static/uploads/a.jpg"}, imgs.deleted)

	// No old image, no new image: nothing happens.
	repo.items[4] = Item{ID: 4, Name: "Zucker", Quantity: 1}
	err = svc.Update(ctx, &Item{ID: 4, Name: "Zucker", Quantity: 1})
	require.NoError(t, err)
	assert.Empty(t, repo.items[4].ImageURL)
}

func TestService_Delete_PreservesHistory(t *testing.T) {
	svc, repo, hist, imgs := newTestService()
	ctx := context.Background()

	repo.items[5] = Item{ID: 5, Name: "Nudeln", Barcode: "40084015", Quantity: 1, ImageURL: "/static/uploads/n.jpg"}

	require.NoError(t, svc.Delete(ctx, 5))

	require.Len(t, hist.recorded, 1)
	assert.Equal(t, "40084015", hist.recorded[0].Barcode)
	assert.Equal(t, []string{"/static/uploads/n.jpg"}, imgs.deleted)
	assert.Equal(t, []int64{5}, repo.deleted)
}

func TestService_Delete_NotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	err := svc.Delete(context.Background(), 999)
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_CheckDuplicate(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.items[1] = Item{ID: 1, Name: "Milch", Barcode: "4311501043622", Quantity: 1}
	repo.items[2] = Item{ID: 2, Name: "milch", Quantity: 1}

	// Barcode matches win; name matches are not consulted.
	dups, err := svc.CheckDuplicate(ctx, "4311501043622", "milch")
	require.NoError(t, err)
	require.Len(t, dups, 1)
	assert.Equal(t, int64(1), dups[0].ID)

	// Without a barcode hit, the case-insensitive name match applies.
	dups, err = svc.CheckDuplicate(ctx, "0000000000000", "MILCH")
	require.NoError(t, err)
	assert.Len(t, dups, 2)

	// Nothing matches.
	dups, err = svc.CheckDuplicate(ctx, "", "Käse")
	require.NoError(t, err)
	assert.Empty(t, dups)
}

func TestService_BatchApply(t *testing.T) {
	svc, repo, _, _ := newTestService()
	ctx := context.Background()

	repo.items[1] = Item{ID: 1, Name: "A", Quantity: 1}
	repo.items[2] = Item{ID: 2, Name: "B", Quantity: 1}

	err := svc.BatchApply(ctx, BatchUpdateLocation, []int64{1, 2}, "Keller")
	require.NoError(t, err)
	assert.Equal(t, "Keller", repo.items[1].Location)
	assert.Equal(t, "Keller", repo.items[2].Location)

	err = svc.BatchApply(ctx, BatchDelete, []int64{1}, "")
	require.NoError(t, err)
	assert.NotContains(t, repo.items, int64(1))

	err = svc.BatchApply(ctx, "rename", []int64{2}, "")
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	err = svc.BatchApply(ctx, BatchDelete, nil, "")
	require.Error(t, err)
}
