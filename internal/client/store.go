package client

import (
	"context"
	"sync"
	"time"

	"github.com/SimplyTil/HeimInventar/internal/domain/expiry"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/domain/view"
)

// ProductLister is the slice of the API the store needs.
type ProductLister interface {
	ListProducts(ctx context.Context) ([]product.Item, error)
}

// Store holds the local copy of the item collection together with its
// freshness cache. Replacing the collection and invalidating the cache
// happen under one lock, so no reader ever sees fresh items with stale
// freshness state.
type Store struct {
	api ProductLister

	mu    sync.RWMutex
	items []product.Item
	cache *expiry.Cache
}

// NewStore creates an empty store backed by the API.
func NewStore(api ProductLister) *Store {
	return &Store{
		api:   api,
		cache: expiry.NewCache(),
	}
}

// Refresh reloads the collection from the server. On failure the previous
// collection and cache stay untouched.
func (s *Store) Refresh(ctx context.Context) error {
	items, err := s.api.ListProducts(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache.Clear()
	s.items = items
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the current collection.
func (s *Store) Items() []product.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]product.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len reports the current collection size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// View computes the filtered, sorted and grouped projection of the current
// collection.
func (s *Store) View(criteria view.Criteria) []view.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Compute(s.items, criteria, s.cache, time.Now())
}

// Freshness returns the derived expiry state for one date, served from the
// collection-scoped cache.
func (s *Store) Freshness(expiryDate string) expiry.Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache.Get(expiryDate, time.Now())
}
