// Package dto defines the request and response shapes of API v1.
package dto

import (
	"github.com/SimplyTil/HeimInventar/internal/core/types"
	"github.com/SimplyTil/HeimInventar/internal/domain/product"
)

// MessageResponse carries a user-facing confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreatedResponse confirms a creation with the new record ID.
type CreatedResponse struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}

// ProductRequest is the create/update payload for a pantry item. Quantity is
// a pointer so an omitted field can default to 1 instead of failing the
// range check.
type ProductRequest struct {
	Barcode      string      `json:"ean" binding:"omitempty,max=50"`
	Name         string      `json:"name" binding:"required,max=200"`
	ExpiryDate   string      `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	PurchaseDate string      `json:"purchase_date" binding:"omitempty,datetime=2006-01-02"`
	Location     string      `json:"location" binding:"omitempty,max=100"`
	Quantity     *int        `json:"quantity" binding:"omitempty,min=1,max=9999"`
	WeightVolume string      `json:"weight_volume" binding:"omitempty,max=50"`
	Notes        string      `json:"notes" binding:"omitempty,max=1000"`
	IsVegetarian bool        `json:"is_vegetarian"`
	IsVegan      bool        `json:"is_vegan"`
	Price        types.Money `json:"price"`
	ImageURL     string      `json:"image_url"`
	Category     string      `json:"category" binding:"omitempty,max=50"`
	Tags         string      `json:"tags" binding:"omitempty,max=200"`
}

// ToItem converts the payload to a domain item.
func (r *ProductRequest) ToItem() *product.Item {
	quantity := 1
	if r.Quantity != nil {
		quantity = *r.Quantity
	}
	return &product.Item{
		Barcode:      r.Barcode,
		Name:         r.Name,
		ExpiryDate:   r.ExpiryDate,
		PurchaseDate: r.PurchaseDate,
		Location:     r.Location,
		Quantity:     quantity,
		WeightVolume: r.WeightVolume,
		Notes:        r.Notes,
		IsVegetarian: r.IsVegetarian,
		IsVegan:      r.IsVegan,
		Price:        r.Price,
		ImageURL:     r.ImageURL,
		Category:     r.Category,
		Tags:         r.Tags,
	}
}

// BatchRequest applies one operation to many products.
type BatchRequest struct {
	Operation  string  `json:"operation" binding:"required"`
	ProductIDs []int64 `json:"product_ids" binding:"required,min=1"`
	Location   string  `json:"location" binding:"omitempty,max=100"`
}

// DuplicateCheckRequest asks whether a product likely already exists.
type DuplicateCheckRequest struct {
	Barcode string `json:"ean"`
	Name    string `json:"name"`
}

// DuplicateCheckResponse lists existing candidates for a merge decision.
type DuplicateCheckResponse struct {
	Found      bool           `json:"found"`
	Duplicates []product.Item `json:"duplicates"`
}

// ShoppingRequest is the create/update payload for a shopping list entry.
type ShoppingRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Quantity *int   `json:"quantity" binding:"omitempty,min=1"`
	Category string `json:"category" binding:"omitempty,max=50"`
	Notes    string `json:"notes" binding:"omitempty,max=500"`
	Checked  bool   `json:"checked"`
}

// GenerateResponse reports how many entries list generation added.
type GenerateResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
