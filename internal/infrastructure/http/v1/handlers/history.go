package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SimplyTil/HeimInventar/internal/domain/history"
)

// HistoryHandler serves the barcode history endpoint.
type HistoryHandler struct {
	BaseHandler
	svc *history.Service
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{svc: svc}
}

// List handles GET /api/barcode-history.
func (h *HistoryHandler) List(c *gin.Context) {
	limit := h.ParseIntQuery(c, "limit", history.DefaultLimit)

	entries, err := h.svc.List(c.Request.Context(), limit)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, entries)
}
