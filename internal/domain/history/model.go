// Package history tracks what is known about barcodes over time. Entries
// survive product deletion so a re-scanned barcode can prefill its form even
// after the item left the pantry.
package history

import "context"

// DefaultLimit is the number of entries returned when no limit is given.
const DefaultLimit = 10

// Entry is the accumulated metadata of one barcode.
type Entry struct {
	ID           int64  `db:"id" json:"id"`
	Barcode      string `db:"ean" json:"ean"`
	Name         string `db:"name" json:"name"`
	Category     string `db:"category" json:"category"`
	WeightVolume string `db:"weight_volume" json:"weight_volume"`
	Tags         string `db:"tags" json:"tags"`
	IsVegetarian bool   `db:"is_vegetarian" json:"is_vegetarian"`
	IsVegan      bool   `db:"is_vegan" json:"is_vegan"`
	ScanCount    int    `db:"scan_count" json:"scan_count"`
	LastScanned  string `db:"last_scanned" json:"last_scanned"`
}

// Repository persists barcode history.
type Repository interface {
	// Upsert creates the entry or refreshes an existing one, incrementing
	// its scan count and stamping last_scanned.
	Upsert(ctx context.Context, entry Entry) error

	// List returns entries ordered by most recently scanned.
	List(ctx context.Context, limit int) ([]Entry, error)
}
