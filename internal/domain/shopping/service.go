package shopping

import (
	"context"
	"strings"
	"time"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/domain/expiry"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
)

// lowStockThreshold: items at or below this quantity are restock candidates.
const lowStockThreshold = 1

// StockSource exposes the pantry items list generation draws from.
type StockSource interface {
	List(ctx context.Context) ([]product.Item, error)
}

// Service provides business logic for the shopping list.
type Service struct {
	repo  Repository
	stock StockSource
}

// NewService creates a new shopping list service.
func NewService(repo Repository, stock StockSource) *Service {
	return &Service{repo: repo, stock: stock}
}

// List returns all entries.
func (s *Service) List(ctx context.Context) ([]Entry, error) {
	return s.repo.List(ctx)
}

// Add creates a new entry.
func (s *Service) Add(ctx context.Context, entry *Entry) (int64, error) {
	entry.Name = strings.TrimSpace(strings.ReplaceAll(entry.Name, "\x00", ""))
	if entry.Name == "" {
		return 0, apperror.NewValidation("Name is required").
			WithDetail("field", "name")
	}
	if entry.Quantity <= 0 {
		entry.Quantity = 1
	}
	return s.repo.Create(ctx, entry)
}

// Update replaces an entry, typically toggling its checked state.
func (s *Service) Update(ctx context.Context, entry *Entry) error {
	entry.Name = strings.TrimSpace(entry.Name)
	if entry.Quantity <= 0 {
		entry.Quantity = 1
	}
	return s.repo.Update(ctx, entry)
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ClearChecked removes every checked entry.
func (s *Service) ClearChecked(ctx context.Context) error {
	return s.repo.DeleteChecked(ctx)
}

// Generate adds one entry per expired or low-stock pantry item whose name is
// not already on the list. Returns the number of entries added.
func (s *Service) Generate(ctx context.Context) (int, error) {
	items, err := s.stock.List(ctx)
	if err != nil {
		return 0, err
	}

	names, err := s.repo.Names(ctx)
	if err != nil {
		return 0, err
	}
	listed := make(map[string]bool, len(names))
	for _, n := range names {
		listed[n] = true
	}

	now := time.Now()
	added := 0
	for _, it := range items {
		days := expiry.DaysUntil(it.ExpiryDate, now)
		expired := days != expiry.NoExpiry && days < 0
		if !expired && it.Quantity > lowStockThreshold {
			continue
		}
		if listed[it.Name] {
			continue
		}

		entry := Entry{
			Name:     it.Name,
			Quantity: 1,
			Category: it.Category,
			Notes:    GeneratedNote,
		}
		if _, err := s.repo.Create(ctx, &entry); err != nil {
			return added, err
		}
		listed[it.Name] = true
		added++
	}
	return added, nil
}
