// Package shopping manages the shopping list, including generating entries
// from expired and low-stock pantry items.
package shopping

import "context"

// GeneratedNote marks entries created by list generation rather than by hand.
const GeneratedNote = "Auto-generiert"

// Entry is one shopping list line.
type Entry struct {
	ID        int64  `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Quantity  int    `db:"quantity" json:"quantity"`
	Category  string `db:"category" json:"category"`
	Checked   bool   `db:"checked" json:"checked"`
	Notes     string `db:"notes" json:"notes"`
	CreatedAt string `db:"created_at" json:"created_at"`
}

// Repository persists the shopping list.
type Repository interface {
	// List returns all entries, unchecked first, newest first within each
	// half.
	List(ctx context.Context) ([]Entry, error)

	Create(ctx context.Context, entry *Entry) (int64, error)

	// Update replaces name, quantity and checked state of an entry.
	Update(ctx context.Context, entry *Entry) error

	Delete(ctx context.Context, id int64) error

	// DeleteChecked removes every checked entry.
	DeleteChecked(ctx context.Context) error

	// Names returns the names currently on the list.
	Names(ctx context.Context) ([]string, error)
}
