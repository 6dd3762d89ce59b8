package models

import "time"

// GeneratedImage is a catalog entry. Rows are created by the generation
// pipeline (outside this service) and are immutable until deleted.
type GeneratedImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Prompt      string    `gorm:"type:text" json:"prompt"`
	GeneratedAt time.Time `gorm:"not null;index" json:"generated_at"`
	DisplayURL  string    `gorm:"size:512;not null" json:"display_url"`
	Title       string    `gorm:"size:255" json:"title"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	Size        int64     `json:"size"`
}

// DeletionLog is append-only. The row is written in the same transaction
// as the catalog delete, capturing the display URL while it still exists.
type DeletionLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ImageID   uint      `gorm:"not null;index" json:"image_id"`
	DeletedAt time.Time `gorm:"not null" json:"deleted_at"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
}
