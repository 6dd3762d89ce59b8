package middleware

import (
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AdminRequired enforces the admin predicate on the identity Protected
// attached. It must be chained after Protected.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ident, ok := IdentityFrom(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied",
			})
		}

		if !ident.IsAdmin {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Admin access required",
			})
		}

		return c.Next()
	}
}
