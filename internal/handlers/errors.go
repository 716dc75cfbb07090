package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// respondError maps service errors to status codes. Anything unrecognised is
// logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, err error, action string) error {
	status, code := fiber.StatusInternalServerError, "internal"
	switch {
	case errors.Is(err, services.ErrContentNotFound):
		status, code = fiber.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrDetectionNotFound):
		status, code = fiber.StatusNotFound, "not_found"
	case errors.Is(err, services.ErrInvalidCategory):
		status, code = fiber.StatusBadRequest, "invalid_category"
	case errors.Is(err, services.ErrUnauthenticated):
		status, code = fiber.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, services.ErrDetectionExists):
		status, code = fiber.StatusConflict, "already_exists"
	}

	message := err.Error()
	if status == fiber.StatusInternalServerError {
		slog.Error("request failed", "action", action, "path", c.Path(), "request_id", requestID(c), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(status).JSON(dto.ErrorResponse{
		Error: true, Code: code, Message: message,
	})
}

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return ""
}
