package models

import "time"

// User holds exactly one credential: a bcrypt password hash for the
// local variant, or a Google subject id for the OAuth variant.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:255;not null;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:255" json:"email,omitempty"`
	ProfilePicture string    `gorm:"size:512" json:"profile_picture,omitempty"`
	PasswordHash   string    `gorm:"size:255" json:"-"`
	GoogleID       *string   `gorm:"size:255;uniqueIndex" json:"-"`
	IsAdmin        bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
