package services

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/models"
)

// ImageStore is the persistence surface the catalog needs.
type ImageStore interface {
	List(ctx context.Context, offset, limit int) ([]models.GeneratedImage, error)
	Count(ctx context.Context) (int64, error)
	DeleteWithAudit(ctx context.Context, id uint) error
}

type ImageService struct {
	images ImageStore
}

func NewImageService(images ImageStore) *ImageService {
	return &ImageService{images: images}
}

// ListImages returns one page of the catalog plus the total row count.
// Callers validate page and limit; this only does the offset arithmetic.
func (s *ImageService) ListImages(ctx context.Context, page, limit int) ([]models.GeneratedImage, int64, error) {
	total, err := s.images.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count images: %w", err)
	}

	offset := (page - 1) * limit
	images, err := s.images.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list images: %w", err)
	}

	return images, total, nil
}

// DeleteImage removes a catalog row after its audit record is written.
// Deleting an id that does not exist is a successful no-op.
func (s *ImageService) DeleteImage(ctx context.Context, id uint) error {
	if err := s.images.DeleteWithAudit(ctx, id); err != nil {
		return fmt.Errorf("failed to delete image %d: %w", id, err)
	}
	return nil
}
