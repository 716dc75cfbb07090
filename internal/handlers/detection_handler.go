package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// DetectionHandler serves the admin/service endpoints that manage detection
// records and run delete cascades.
type DetectionHandler struct {
	moderationService *services.ModerationService
}

func NewDetectionHandler(moderationService *services.ModerationService) *DetectionHandler {
	return &DetectionHandler{moderationService: moderationService}
}

func (h *DetectionHandler) Evaluate(c *fiber.Ctx) error {
	freetID, req, ok := h.parseEvaluate(c)
	if !ok {
		return nil
	}

	rec, err := h.moderationService.Evaluate(c.UserContext(), freetID, req.Content)
	if err != nil {
		return respondError(c, err, "detection_create")
	}
	return c.Status(fiber.StatusCreated).JSON(toDetectionResponse(rec))
}

func (h *DetectionHandler) Reevaluate(c *fiber.Ctx) error {
	freetID, req, ok := h.parseEvaluate(c)
	if !ok {
		return nil
	}

	rec, err := h.moderationService.Reevaluate(c.UserContext(), freetID, req.Content)
	if err != nil {
		return respondError(c, err, "detection_update")
	}
	return c.JSON(toDetectionResponse(rec))
}

func (h *DetectionHandler) Get(c *fiber.Ctx) error {
	freetID, ok := parseFreetID(c)
	if !ok {
		return respondError(c, services.ErrContentNotFound, "detection_get")
	}

	rec, err := h.moderationService.Detection(c.UserContext(), freetID)
	if err != nil {
		return respondError(c, err, "detection_get")
	}
	return c.JSON(toDetectionResponse(rec))
}

func (h *DetectionHandler) PurgeContent(c *fiber.Ctx) error {
	freetID, ok := parseFreetID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "invalid_id", Message: "Invalid freet ID",
		})
	}

	if err := h.moderationService.PurgeContent(c.UserContext(), freetID); err != nil {
		return respondError(c, err, "purge_content")
	}
	return c.JSON(fiber.Map{"message": "Moderation data deleted"})
}

func (h *DetectionHandler) PurgeAuthor(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "invalid_id", Message: "Invalid user ID",
		})
	}

	if err := h.moderationService.PurgeAuthor(c.UserContext(), userID); err != nil {
		return respondError(c, err, "purge_author")
	}
	return c.JSON(fiber.Map{"message": "Reports deleted"})
}

// parseEvaluate writes the error response itself and reports ok=false.
func (h *DetectionHandler) parseEvaluate(c *fiber.Ctx) (uuid.UUID, dto.EvaluateRequest, bool) {
	var req dto.EvaluateRequest
	freetID, ok := parseFreetID(c)
	if !ok {
		_ = respondError(c, services.ErrContentNotFound, "detection_evaluate")
		return uuid.Nil, req, false
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: "invalid_body", Message: "Invalid request body",
			})
			return uuid.Nil, req, false
		}
	}
	return freetID, req, true
}

func toDetectionResponse(rec *models.Detection) dto.DetectionResponse {
	return dto.DetectionResponse{
		Freet:        rec.FreetID.String(),
		Detected:     rec.Detected,
		MatchedTerms: services.DecodeTerms(rec.MatchedTerms),
		UpdatedAt:    rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
