package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SimplyTil/HeimInventar/internal/domain/shopping"
	"github.com/SimplyTil/HeimInventar/internal/infrastructure/http/v1/dto"
)

// ShoppingHandler serves the shopping list endpoints.
type ShoppingHandler struct {
	BaseHandler
	svc *shopping.Service
}

// NewShoppingHandler creates a new shopping list handler.
func NewShoppingHandler(svc *shopping.Service) *ShoppingHandler {
	return &ShoppingHandler{svc: svc}
}

// List handles GET /api/shopping-list.
func (h *ShoppingHandler) List(c *gin.Context) {
	entries, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}

// Create handles POST /api/shopping-list.
func (h *ShoppingHandler) Create(c *gin.Context) {
	var req dto.ShoppingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := shoppingEntry(&req)
	if _, err := h.svc.Add(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "Item added to shopping list"})
}

// Update handles PUT /api/shopping-list/:id, typically toggling checked.
func (h *ShoppingHandler) Update(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	var req dto.ShoppingRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entry := shoppingEntry(&req)
	entry.ID = id
	if err := h.svc.Update(c.Request.Context(), entry); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, "Item updated")
}

// Delete handles DELETE /api/shopping-list/:id.
func (h *ShoppingHandler) Delete(c *gin.Context) {
	id, ok := h.ParseIDParam(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, "Item deleted")
}

// ClearChecked handles DELETE /api/shopping-list/clear-checked.
func (h *ShoppingHandler) ClearChecked(c *gin.Context) {
	if err := h.svc.ClearChecked(c.Request.Context()); err != nil {
		h.Error(c, err)
		return
	}
	h.Message(c, "Checked items cleared")
}

// Generate handles POST /api/shopping-list/generate.
func (h *ShoppingHandler) Generate(c *gin.Context) {
	added, err := h.svc.Generate(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.GenerateResponse{
		Message: fmt.Sprintf("%d items added to shopping list", added),
		Count:   added,
	})
}

func shoppingEntry(req *dto.ShoppingRequest) *shopping.Entry {
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	return &shopping.Entry{
		Name:     req.Name,
		Quantity: quantity,
		Category: req.Category,
		Notes:    req.Notes,
		Checked:  req.Checked,
	}
}
