package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/models"
	"gorm.io/gorm"
)

type ImageRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewImageRepository(db *gorm.DB, timeout time.Duration) *ImageRepository {
	return &ImageRepository{db: db, timeout: timeout}
}

// List returns at most limit rows, newest first. The id tie-break keeps
// consecutive pages duplicate-free when timestamps collide.
func (r *ImageRepository) List(ctx context.Context, offset, limit int) ([]models.GeneratedImage, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var images []models.GeneratedImage
	err := r.db.WithContext(ctx).
		Order("generated_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *ImageRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.GeneratedImage{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// DeleteWithAudit writes the deletion log row and removes the catalog row
// in one transaction. The audit insert reads the display URL from the
// still-existing row via a dependent subquery; if it fails, the delete
// never runs. A nonexistent id inserts zero rows and deletes zero rows.
func (r *ImageRepository) DeleteWithAudit(ctx context.Context, id uint) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Exec(
			`INSERT INTO deletion_logs (image_id, deleted_at, image_url)
			 SELECT id, ?, display_url FROM generated_images WHERE id = ?`,
			time.Now().UTC(), id,
		).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.GeneratedImage{}, id).Error
	})
}
