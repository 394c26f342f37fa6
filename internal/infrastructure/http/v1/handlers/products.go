package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/SimplyTil/HeimInventar/internal/domain/product"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1/dto"
)

// ProductHandler serves the pantry item endpoints.
type ProductHandler struct {
	BaseHandler
	svc *product.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(svc *product.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List handles GET /api/products.
func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, items)
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToItem()
	id, err := h.svc.Create(c.Request.Context(), item)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, id, "Produkt erfolgreich erstellt")
}

// Update handles PUT /api/products/:id.
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.ProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToItem()
	item.ID = id
	if err := h.svc.Update(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, "Produkt erfolgreich aktualisiert")
}

// Delete handles DELETE /api/products/:id.
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, "Produkt erfolgreich gelöscht")
}

// Batch handles POST /api/products/batch.
func (h *ProductHandler) Batch(c *gin.Context) {
	var req dto.BatchRequest
	if !h.BindJSON(c, &req) {
		return
	}

	err := h.svc.BatchApply(c.Request.Context(), req.Operation, req.ProductIDs, req.Location)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, fmt.Sprintf("%d Produkte aktualisiert", len(req.ProductIDs)))
}

// CheckDuplicate handles POST /api/products/check-duplicate.
func (h *ProductHandler) CheckDuplicate(c *gin.Context) {
	var req dto.DuplicateCheckRequest
	if !h.BindJSON(c, &req) {
		return
	}

	duplicates, err := h.svc.CheckDuplicate(c.Request.Context(), req.Barcode, req.Name)
	if err != nil {
		h.Error(c, err)
		return
	}
	if duplicates == nil {
		duplicates = []product.Item{}
	}
	h.OK(c, dto.DuplicateCheckResponse{
		Found:      len(duplicates) > 0,
		Duplicates: duplicates,
	})
}
