package session

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Locals keys shared with the auth middleware.
const (
	userLocal    = "user"
	serviceLocal = "service_caller"
)

// GetUserID extracts the caller's UUID from the verified JWT in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	claims, ok := Claims(c)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// Claims returns the verified token claims, if any.
func Claims(c *fiber.Ctx) (jwt.MapClaims, bool) {
	token, ok := c.Locals(userLocal).(*jwt.Token)
	if !ok || token == nil {
		return nil, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	return claims, ok
}

// MarkServiceCaller records that the request authenticated with the shared
// service token instead of a user JWT.
func MarkServiceCaller(c *fiber.Ctx) {
	c.Locals(serviceLocal, true)
}

func IsServiceCaller(c *fiber.Ctx) bool {
	v, _ := c.Locals(serviceLocal).(bool)
	return v
}
