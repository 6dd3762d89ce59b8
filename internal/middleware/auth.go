package middleware

import (
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/services"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const identityKey = "identity"

// Identity is the verified caller attached to the request context by
// Protected. Downstream checks are pure predicates over it; no further
// database round trips happen after this point.
type Identity struct {
	UserID   uint
	Username string
	Email    string
	IsAdmin  bool
}

// IdentityFrom returns the identity attached by Protected, if any.
func IdentityFrom(c *fiber.Ctx) (*Identity, bool) {
	ident, ok := c.Locals(identityKey).(*Identity)
	return ident, ok
}

// IDTokenVerifier matches services.GoogleTokenVerifier.
type IDTokenVerifier interface {
	VerifyIDToken(idToken string) (*services.GoogleIDClaims, error)
}

// Protected returns the bearer-credential check for the deployed auth
// variant: signature verification of locally signed session tokens, or
// Google ID-token verification. Missing credential is 401, an invalid
// one is 403.
func Protected(cfg *config.Config, verifier IDTokenVerifier) fiber.Handler {
	if cfg.AuthProvider == config.ProviderGoogle {
		return googleProtected(verifier, cfg)
	}
	return localProtected(cfg)
}

func localProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok || token == nil {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Invalid token",
				})
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
					Error: true, Message: "Invalid token",
				})
			}

			id, _ := claims["id"].(float64)
			username, _ := claims["username"].(string)
			isAdmin, _ := claims["is_admin"].(bool)

			c.Locals(identityKey, &Identity{
				UserID:   uint(id),
				Username: username,
				IsAdmin:  isAdmin,
			})
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Access denied",
				})
			}
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid token",
			})
		},
	})
}

func googleProtected(verifier IDTokenVerifier, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		idToken := strings.TrimPrefix(auth, "Bearer ")
		if auth == "" || idToken == auth {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Access denied",
			})
		}

		claims, err := verifier.VerifyIDToken(idToken)
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid token",
			})
		}

		c.Locals(identityKey, &Identity{
			Username: claims.Name,
			Email:    claims.Email,
			IsAdmin:  claims.EmailVerified && cfg.IsAdminEmail(claims.Email),
		})
		return c.Next()
	}
}
