package product

import (
	"context"
	"strings"
	"time"

	"github.com/SimplyTil/HeimInventar/internal/core/apperror"
	"github.com/SimplyTil/HeimInventar/pkg/logger"
)

// duplicateLimit caps the number of candidates returned by a duplicate check.
const duplicateLimit = 5

// Batch operations accepted by BatchApply.
const (
	BatchDelete         = "delete"
	BatchUpdateLocation = "update_location"
)

// HistoryRecorder preserves barcode metadata across item mutations. Product
// deletion must not lose what has been learned about a barcode.
type HistoryRecorder interface {
	RecordProduct(ctx context.Context, item Item) error
}

// ImageStore persists data-URI images as files and removes stored files.
type ImageStore interface {
	// SaveDataURI writes the image and returns its public URL.
	SaveDataURI(dataURI string) (string, error)

	// Delete removes a previously stored image. Unknown URLs are ignored.
	Delete(publicURL string)

	// IsStored reports whether the URL points at a stored image file.
	IsStored(publicURL string) bool
}

// Service provides business logic for pantry items.
type Service struct {
	repo    Repository
	history HistoryRecorder
	images  ImageStore
}

// NewService creates a new product service.
func NewService(repo Repository, history HistoryRecorder, images ImageStore) *Service {
	return &Service{repo: repo, history: history, images: images}
}

// List returns all items.
func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.repo.List(ctx)
}

// Get returns a single item.
func (s *Service) Get(ctx context.Context, id int64) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

// Create validates and inserts a new item. A data-URI image is stored as a
// file first; the record keeps the file URL. Barcode history is updated as a
// side effect when a barcode is present.
func (s *Service) Create(ctx context.Context, item *Item) (int64, error) {
	item.Sanitize()
	if err := item.Validate(); err != nil {
		return 0, err
	}

	if item.PurchaseDate == "" {
		item.PurchaseDate = time.Now().Format("2006-01-02")
	}

	if isDataURI(item.ImageURL) {
		url, err := s.images.SaveDataURI(item.ImageURL)
		if err != nil {
			logger.Warn(ctx, "storing product image failed", "error", err)
			url = ""
		}
		item.ImageURL = url
	}

	id, err := s.repo.Create(ctx, item)
	if err != nil {
		return 0, err
	}
	item.ID = id

	s.recordHistory(ctx, *item)
	return id, nil
}

// Update replaces an existing record in full. Image handling follows the
// replace semantics: a new data URI supersedes (and deletes) the stored file,
// an emptied field deletes it, an unchanged field keeps it.
func (s *Service) Update(ctx context.Context, item *Item) error {
	item.Sanitize()
	if err := item.Validate(); err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}

	oldImage := existing.ImageURL
	switch {
	case isDataURI(item.ImageURL):
		url, err := s.images.SaveDataURI(item.ImageURL)
		if err != nil {
			logger.Warn(ctx, "storing product image failed", "error", err)
			url = oldImage
		} else if s.images.IsStored(oldImage) {
			s.images.Delete(oldImage)
		}
		item.ImageURL = url
	case item.ImageURL == "" && oldImage != "":
		if s.images.IsStored(oldImage) {
			s.images.Delete(oldImage)
		}
	case item.ImageURL == "":
		item.ImageURL = oldImage
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}

	s.recordHistory(ctx, *item)
	return nil
}

// Delete removes an item but preserves its barcode history. The stored image
// file is removed along with the record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	s.recordHistory(ctx, *item)

	if s.images.IsStored(item.ImageURL) {
		s.images.Delete(item.ImageURL)
	}

	return s.repo.Delete(ctx, id)
}

// CheckDuplicate returns existing items that likely represent the same
// physical product: exact barcode matches first, case-insensitive name
// matches only when no barcode matched. At most five candidates.
func (s *Service) CheckDuplicate(ctx context.Context, barcode, name string) ([]Item, error) {
	var duplicates []Item

	if barcode != "" {
		matches, err := s.repo.FindByBarcode(ctx, barcode)
		if err != nil {
			return nil, err
		}
		duplicates = matches
	}

	if name != "" && len(duplicates) == 0 {
		matches, err := s.repo.FindByName(ctx, name, duplicateLimit)
		if err != nil {
			return nil, err
		}
		duplicates = matches
	}

	if len(duplicates) > duplicateLimit {
		duplicates = duplicates[:duplicateLimit]
	}
	return duplicates, nil
}

// BatchApply performs one operation on many items.
func (s *Service) BatchApply(ctx context.Context, operation string, ids []int64, location string) error {
	if operation == "" || len(ids) == 0 {
		return apperror.NewValidation("Operation and product_ids are required")
	}

	switch operation {
	case BatchDelete:
		return s.repo.DeleteMany(ctx, ids)
	case BatchUpdateLocation:
		location = sanitize(location, 100)
		return s.repo.UpdateLocationMany(ctx, ids, location)
	default:
		return apperror.NewValidation("Invalid operation").
			WithDetail("operation", operation)
	}
}

// recordHistory is best-effort: history loss never fails the mutation.
func (s *Service) recordHistory(ctx context.Context, item Item) {
	if item.Barcode == "" || s.history == nil {
		return
	}
	if err := s.history.RecordProduct(ctx, item); err != nil {
		logger.Warn(ctx, "updating barcode history failed",
			"ean", item.Barcode,
			"error", err,
		)
	}
}

func isDataURI(s string) bool {
	return strings.HasPrefix(s, "data:image")
}
