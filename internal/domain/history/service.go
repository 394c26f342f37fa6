package history

import (
	"context"

	"github.com/SimplyTil/HeimInventar/internal/domain/product"
)

// Service provides business logic for barcode history.
type Service struct {
	repo Repository
}

// NewService creates a new history service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record upserts the entry. Entries without a barcode are ignored.
func (s *Service) Record(ctx context.Context, entry Entry) error {
	if entry.Barcode == "" {
		return nil
	}
	return s.repo.Upsert(ctx, entry)
}

// RecordProduct captures the barcode metadata of a pantry item. Satisfies
// the product service's history hook.
func (s *Service) RecordProduct(ctx context.Context, item product.Item) error {
	return s.Record(ctx, Entry{
		Barcode:      item.Barcode,
		Name:         item.Name,
		Category:     item.Category,
		WeightVolume: item.WeightVolume,
		Tags:         item.Tags,
		IsVegetarian: item.IsVegetarian,
		IsVegan:      item.IsVegan,
	})
}

// List returns the most recently scanned entries.
func (s *Service) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.repo.List(ctx, limit)
}
