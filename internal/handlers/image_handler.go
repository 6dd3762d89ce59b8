package handlers

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ImageHandler struct {
	imageService *services.ImageService
}

func NewImageHandler(imageService *services.ImageService) *ImageHandler {
	return &ImageHandler{imageService: imageService}
}

// List serves the paginated catalog. Absent page/limit default to 1/10;
// explicit out-of-range values are rejected rather than clamped, and no
// unpaginated full dump exists.
func (h *ImageHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 10)

	if page < 1 || limit < 1 || limit > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid pagination parameters",
		})
	}

	images, total, err := h.imageService.ListImages(c.UserContext(), page, limit)
	if err != nil {
		slog.Error("failed to fetch images", "page", page, "limit", limit, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch images",
		})
	}

	return c.JSON(dto.ImagesResponse{
		Images: images,
		Total:  total,
		Page:   page,
		Limit:  limit,
	})
}

func (h *ImageHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid image id",
		})
	}

	if err := h.imageService.DeleteImage(c.UserContext(), uint(id)); err != nil {
		slog.Error("failed to delete image", "image_id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete image",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Image deleted successfully"})
}
