// Package repository is the data access layer over GORM. Every method
// bounds its round trip with the configured database timeout.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewUserRepository(db *gorm.DB, timeout time.Duration) *UserRepository {
	return &UserRepository{db: db, timeout: timeout}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameTaken reports whether username belongs to an account other
// than the one with the given Google subject id.
func (r *UserRepository) UsernameTaken(ctx context.Context, username, googleID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? AND (google_id IS NULL OR google_id <> ?)", username, googleID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpsertGoogleUser inserts the user on first sign-in and refreshes
// username/email/picture/admin on every subsequent one, matching on the
// Google subject id.
func (r *UserRepository) UpsertGoogleUser(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var existing models.User
	err := r.db.WithContext(ctx).Where("google_id = ?", user.GoogleID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, err
		}
		return user, nil
	}
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"username":        user.Username,
		"email":           user.Email,
		"profile_picture": user.ProfilePicture,
		"is_admin":        user.IsAdmin,
	}
	if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return nil, err
	}

	existing.Username = user.Username
	existing.Email = user.Email
	existing.ProfilePicture = user.ProfilePicture
	existing.IsAdmin = user.IsAdmin
	return &existing, nil
}
