package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SimplyTil/HeimInventar/internal/domain/scan"
)

// ScanHandler proxies barcode lookups to Open Food Facts.
type ScanHandler struct {
	BaseHandler
	svc *scan.Service
}

// NewScanHandler creates a new scan handler.
func NewScanHandler(svc *scan.Service) *ScanHandler {
	return &ScanHandler{svc: svc}
}

// Lookup handles GET /api/scan/:ean.
func (h *ScanHandler) Lookup(c *gin.Context) {
	result, err := h.svc.Lookup(c.Request.Context(), c.Param("ean"))
	if err != nil {
		h.Error(c, err)
		return
	}

	if !result.Found {
		c.JSON(http.StatusNotFound, result)
		return
	}
	h.OK(c, result)
}
