package product

import "context"

// Repository defines data access for pantry items.
type Repository interface {
	// List returns all items.
	List(ctx context.Context) ([]Item, error)

	// GetByID returns a single item or apperror.NewNotFound.
	GetByID(ctx context.Context, id int64) (*Item, error)

	// Create inserts a new item and returns its generated id.
	Create(ctx context.Context, item *Item) (int64, error)

	// Update replaces the full record identified by item.ID.
	Update(ctx context.Context, item *Item) error

	// Delete removes an item.
	Delete(ctx context.Context, id int64) error

	// DeleteMany removes all items with the given ids.
	DeleteMany(ctx context.Context, ids []int64) error

	// UpdateLocationMany moves all items with the given ids to location.
	UpdateLocationMany(ctx context.Context, ids []int64, location string) error

	// FindByBarcode returns all items with the given non-empty barcode.
	FindByBarcode(ctx context.Context, barcode string) ([]Item, error)

	// FindByName returns up to limit items whose name matches
	// case-insensitively.
	FindByName(ctx context.Context, name string, limit int) ([]Item, error)
}
