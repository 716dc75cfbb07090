package handlers

import (
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ModerationHandler struct {
	moderationService *services.ModerationService
}

func NewModerationHandler(moderationService *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// Summary handles GET /reports/:freetId.
func (h *ModerationHandler) Summary(c *fiber.Ctx) error {
	freetID, ok := parseFreetID(c)
	if !ok {
		return respondError(c, services.ErrContentNotFound, "report_summary")
	}

	score, err := h.moderationService.Summary(c.UserContext(), freetID)
	if err != nil {
		return respondError(c, err, "report_summary")
	}

	return c.JSON(dto.SummaryResponse{
		TotalCount:          score.TotalCount,
		OffensiveCount:      score.CategoryCounts[services.CategoryOffensive],
		SensitiveCount:      score.CategoryCounts[services.CategorySensitive],
		MisinformationCount: score.CategoryCounts[services.CategoryMisinformation],
	})
}

// CategoryReports handles GET /reports/:freetId/:category.
func (h *ModerationHandler) CategoryReports(c *fiber.Ctx) error {
	freetID, ok := parseFreetID(c)
	if !ok {
		return respondError(c, services.ErrContentNotFound, "report_list")
	}

	reports, count, err := h.moderationService.CategoryReports(c.UserContext(), freetID, c.Params("category"))
	if err != nil {
		return respondError(c, err, "report_list")
	}

	resp := dto.CategoryReportsResponse{
		Reports: make([]dto.ReportResponse, 0, len(reports)),
		Count:   count,
	}
	for i := range reports {
		resp.Reports = append(resp.Reports, toReportResponse(&reports[i]))
	}
	return c.JSON(resp)
}

// CreateReport handles POST /reports/:freetId/:category.
func (h *ModerationHandler) CreateReport(c *fiber.Ctx) error {
	userID, err := session.GetUserID(c)
	if err != nil {
		return respondError(c, services.ErrUnauthenticated, "report_create")
	}

	freetID, ok := parseFreetID(c)
	if !ok {
		return respondError(c, services.ErrContentNotFound, "report_create")
	}

	category := c.Params("category")
	if err := h.moderationService.CheckReport(c.UserContext(), userID, freetID, category); err != nil {
		return respondError(c, err, "report_create")
	}

	var req dto.CreateReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Code: "invalid_body", Message: "Invalid request body",
			})
		}
	}

	report, err := h.moderationService.SubmitReport(c.UserContext(), userID, freetID, category, req.Content)
	if err != nil {
		return respondError(c, err, "report_create")
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{
		Message: "Your report was created successfully.",
		Report:  toReportResponse(report),
	})
}

// Scan handles POST /filter/scan so clients can warn before posting.
func (h *ModerationHandler) Scan(c *fiber.Ctx) error {
	var req dto.ScanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Code: "invalid_body", Message: "Invalid request body",
		})
	}

	res := h.moderationService.Scan(req.Content)
	return c.JSON(dto.ScanResponse{Detected: res.Detected, MatchedTerms: res.MatchedTerms})
}

// parseFreetID treats a malformed id the same as an unknown freet.
func parseFreetID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params("freetId"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func toReportResponse(r *models.Report) dto.ReportResponse {
	author := r.Author.Username
	if author == "" {
		author = r.AuthorID.String()
	}
	return dto.ReportResponse{
		ID:      r.ID.String(),
		Author:  author,
		Freet:   r.FreetID.String(),
		Type:    r.Category,
		Content: r.Justification,
	}
}
