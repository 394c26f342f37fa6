package scan

import (
	"context"

	"github.com/SimplyTil/HeimInventar/internal/domain/history"
	"github.com/SimplyTil/HeimInventar/pkg/logger"
)

// Recorder receives the metadata of every successful lookup.
type Recorder interface {
	Record(ctx context.Context, entry history.Entry) error
}

// Service resolves barcodes and keeps the scan history current.
type Service struct {
	client  *Client
	history Recorder
}

// NewService creates a new scan service.
func NewService(client *Client, history Recorder) *Service {
	return &Service{client: client, history: history}
}

// Lookup resolves a barcode. Successful lookups are recorded in the barcode
// history; a history failure never fails the lookup itself.
func (s *Service) Lookup(ctx context.Context, ean string) (*Result, error) {
	result, err := s.client.Lookup(ctx, ean)
	if err != nil {
		return nil, err
	}

	if result.Found && s.history != nil {
		entry := history.Entry{
			Barcode:      ean,
			Name:         result.Name,
			Category:     result.Category,
			WeightVolume: result.Quantity,
			IsVegetarian: result.IsVegetarian,
			IsVegan:      result.IsVegan,
		}
		if err := s.history.Record(ctx, entry); err != nil {
			logger.Warn(ctx, "recording scan history failed", "ean", ean, "error", err)
		}
	}
	return result, nil
}
