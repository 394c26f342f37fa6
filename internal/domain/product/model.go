// Package product provides the pantry item catalog: the Item model, its
// validation rules and the business logic around creating, replacing and
// removing items.
package product

import (
	"strings"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/internal/core/types"
)

// DefaultLocations are the storage locations offered out of the box. The set
// is extensible: any location observed on an item is a valid location.
var DefaultLocations = []string{
	"Kühlschrank",
	"Vorratskammer",
	"Tiefkühler",
	"Schrank",
	"Sonstiges",
}

// Quantity bounds enforced on create and update.
const (
	MinQuantity = 1
	MaxQuantity = 9999
)

// Item represents a pantry product. Items are owned by the store and mutated
// only through full-record replace; there is no partial-field diffing.
type Item struct {
	ID int64 `db:"id" json:"id"`

	// Barcode is the scanned or typed EAN. Optional; numeric, at least
	// 8 digits when present.
	Barcode string `db:"ean" json:"ean" validate:"omitempty,numeric,min=8,max=13"`

	Name string `db:"name" json:"name" validate:"required,max=200"`

	// ExpiryDate is an ISO 8601 calendar date (YYYY-MM-DD) or empty.
	ExpiryDate string `db:"expiry_date" json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`

	// PurchaseDate defaults to the creation day.
	PurchaseDate string `db:"purchase_date" json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`

	Location     string      `db:"location" json:"location" validate:"max=100"`
	Quantity     int         `db:"quantity" json:"quantity" validate:"min=1,max=9999"`
	WeightVolume string      `db:"weight_volume" json:"weight_volume" validate:"max=50"`
	Notes        string      `db:"notes" json:"notes" validate:"max=1000"`
	IsVegetarian bool        `db:"is_vegetarian" json:"is_vegetarian"`
	IsVegan      bool        `db:"is_vegan" json:"is_vegan"`
	Price        types.Money `db:"price" json:"price"`

	// ImageURL is either a stored image path (/static/uploads/...) or, on
	// the way in, a base64 data URI produced by the ingestion pipeline.
	ImageURL string `db:"image_url" json:"image_url"`

	Category string `db:"category" json:"category" validate:"max=50"`
	Tags     string `db:"tags" json:"tags" validate:"max=200"`

	ScanCount   int    `db:"scan_count" json:"scan_count"`
	LastScanned string `db:"last_scanned" json:"last_scanned"`
	CreatedAt   string `db:"created_at" json:"created_at"`
}

// HasExpiry reports whether the item carries an expiry date.
func (i Item) HasExpiry() bool {
	return i.ExpiryDate != ""
}

// Sanitize strips null bytes, trims whitespace and caps the length of all
// free-text fields. Mirrors the input handling of the persistence layer so
// stored records never carry unbounded or binary-polluted text.
func (i *Item) Sanitize() {
	i.Barcode = sanitize(i.Barcode, 50)
	i.Name = sanitize(i.Name, 200)
	i.ExpiryDate = sanitize(i.ExpiryDate, 20)
	i.PurchaseDate = sanitize(i.PurchaseDate, 20)
	i.Location = sanitize(i.Location, 100)
	i.WeightVolume = sanitize(i.WeightVolume, 50)
	i.Notes = sanitize(i.Notes, 1000)
	i.Category = sanitize(i.Category, 50)
	i.Tags = sanitize(i.Tags, 200)
}

// Validate checks item invariants enforced by the server on every create and
// update. Returns nil if valid, AppError with details otherwise.
func (i *Item) Validate() error {
	if i.Name == "" {
		return apperror.NewValidation("Product name is required").
			WithDetail("field", "name")
	}
	if i.Quantity < MinQuantity || i.Quantity > MaxQuantity {
		return apperror.NewValidation("Quantity must be between 1 and 9999").
			WithDetail("field", "quantity").
			WithDetail("value", i.Quantity)
	}
	if i.Price.IsNegative() {
		return apperror.NewValidation("Price cannot be negative").
			WithDetail("field", "price")
	}
	return nil
}

func sanitize(s string, maxLen int) string {
	s = strings.ReplaceAll(s, "\x00", "")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return strings.TrimSpace(s)
}
