package middleware

import (
	"crypto/subtle"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/session"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Code:    "unauthenticated",
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}

// ServiceOrJWT lets the post and identity services call in with the shared
// X-Admin-Token; everyone else needs a valid JWT.
func ServiceOrJWT(cfg *config.Config) fiber.Handler {
	jwtHandler := JWTProtected(cfg)
	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			got := c.Get("X-Admin-Token")
			if got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(cfg.AdminToken)) == 1 {
				session.MarkServiceCaller(c)
				return c.Next()
			}
		}
		return jwtHandler(c)
	}
}
