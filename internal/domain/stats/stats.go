// Package stats aggregates inventory figures for the dashboard.
package stats

import (
	"context"

	"github.com/SimplyTil/HeimInventar/internal/core/types"
)

// LocationCount is the product and piece count of one storage location.
type LocationCount struct {
	Location string `db:"location" json:"location"`
	Products int    `db:"products" json:"products"`
	Items    int    `db:"items" json:"items"`
}

// CategoryCount is the product and piece count of one category.
type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int    `db:"count" json:"count"`
	Items    int    `db:"items" json:"items"`
}

// CategoryAvg is the average item price of one category.
type CategoryAvg struct {
	Category string      `db:"category" json:"category"`
	AvgPrice types.Money `db:"avg_price" json:"avg_price"`
}

// ScannedCount is one of the most frequently scanned barcodes.
type ScannedCount struct {
	Name        string `db:"name" json:"name"`
	Count       int    `db:"scan_count" json:"count"`
	LastScanned string `db:"last_scanned" json:"last_scanned"`
}

// Waste sums up expired stock.
type Waste struct {
	Count int         `json:"count"`
	Value types.Money `json:"value"`
}

// Basic is the overview shown on every dashboard load.
type Basic struct {
	TotalProducts        int             `json:"total_products"`
	TotalItems           int             `json:"total_items"`
	TotalValue           types.Money     `json:"total_value"`
	ExpiringSoon         int             `json:"expiring_soon"`
	Expired              int             `json:"expired"`
	ByLocation           []LocationCount `json:"by_location"`
	RecentAdditionsCount int             `json:"recent_additions_count"`
	RecentAdditionsValue types.Money     `json:"recent_additions_value"`
}

// Advanced adds waste tracking and consumption patterns.
type Advanced struct {
	Waste           Waste           `json:"waste"`
	ByCategory      []CategoryCount `json:"by_category"`
	TopScanned      []ScannedCount  `json:"top_scanned"`
	WeeklyAdditions int             `json:"weekly_additions"`
	AvgByCategory   []CategoryAvg   `json:"avg_by_category"`
}

// Repository computes the aggregates from storage.
type Repository interface {
	Basic(ctx context.Context) (*Basic, error)
	Advanced(ctx context.Context) (*Advanced, error)
}

// Service provides inventory statistics.
type Service struct {
	repo Repository
}

// NewService creates a new statistics service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Basic returns the overview aggregates.
func (s *Service) Basic(ctx context.Context) (*Basic, error) {
	return s.repo.Basic(ctx)
}

// Advanced returns waste and consumption aggregates.
func (s *Service) Advanced(ctx context.Context) (*Advanced, error) {
	return s.repo.Advanced(ctx)
}
