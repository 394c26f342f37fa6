package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/SimplyTil/HeimInventar/internal/domain/stats"
)

// StatsHandler serves the statistics endpoints.
type StatsHandler struct {
	BaseHandler
	svc *stats.Service
}

// NewStatsHandler creates a new statistics handler.
func NewStatsHandler(svc *stats.Service) *StatsHandler {
	return &StatsHandler{svc: svc}
}

// Basic handles GET /api/statistics.
func (h *StatsHandler) Basic(c *gin.Context) {
	b, err := h.svc.Basic(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, b)
}

// Advanced handles GET /api/statistics/advanced.
func (h *StatsHandler) Advanced(c *gin.Context) {
	a, err := h.svc.Advanced(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}
