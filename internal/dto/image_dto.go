package dto

import "github.com/ahmetcoskunkizilkaya/gallery-backend/internal/models"

type ImagesResponse struct {
	Images []models.GeneratedImage `json:"images"`
	Total  int64                   `json:"total"`
	Page   int                     `json:"page"`
	Limit  int                     `json:"limit"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
