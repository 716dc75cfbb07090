package services

import (
	"context"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
)

// ModerationService is what handlers and lifecycle events call. It owns the
// precondition order for each operation and the delete cascades.
type ModerationService struct {
	reports     *ReportService
	detections  *DetectionService
	aggregation *AggregationService
	directory   ContentDirectory
	filter      *ContentFilter
}

func NewModerationService(reports *ReportService, detections *DetectionService, aggregation *AggregationService, directory ContentDirectory, filter *ContentFilter) *ModerationService {
	return &ModerationService{
		reports:     reports,
		detections:  detections,
		aggregation: aggregation,
		directory:   directory,
		filter:      filter,
	}
}

func (s *ModerationService) Summary(ctx context.Context, freetID uuid.UUID) (*AggregateScore, error) {
	return s.aggregation.Aggregate(ctx, freetID)
}

// CategoryReports checks the freet before the category.
func (s *ModerationService) CategoryReports(ctx context.Context, freetID uuid.UUID, category string) ([]models.Report, int64, error) {
	if err := requireContent(ctx, s.directory, freetID); err != nil {
		return nil, 0, err
	}
	if !IsValidCategory(category) {
		return nil, 0, ErrInvalidCategory
	}

	reports, err := s.reports.ListByCategory(ctx, freetID, category)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.reports.CountByCategory(ctx, freetID, category)
	if err != nil {
		return nil, 0, err
	}
	return reports, count, nil
}

// CheckReport runs the report preconditions in order: an author, then an
// existing freet, then a valid category.
func (s *ModerationService) CheckReport(ctx context.Context, authorID uuid.UUID, freetID uuid.UUID, category string) error {
	if authorID == uuid.Nil {
		return ErrUnauthenticated
	}
	if err := requireContent(ctx, s.directory, freetID); err != nil {
		return err
	}
	if !IsValidCategory(category) {
		return ErrInvalidCategory
	}
	return nil
}

// SubmitReport requires an author, then an existing freet, then a valid category.
func (s *ModerationService) SubmitReport(ctx context.Context, authorID uuid.UUID, freetID uuid.UUID, category, justification string) (*models.Report, error) {
	if authorID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	report, err := s.reports.AddReport(ctx, authorID, freetID, category, justification)
	if err != nil {
		return nil, err
	}
	slog.Info("report created", "action", "report_create", "freet_id", freetID.String(), "user_id", authorID.String(), "category", category)
	return report, nil
}

func (s *ModerationService) Scan(text string) ScanResult {
	return s.filter.Scan(text)
}

func (s *ModerationService) Evaluate(ctx context.Context, freetID uuid.UUID, text string) (*models.Detection, error) {
	return s.detections.Evaluate(ctx, freetID, text)
}

func (s *ModerationService) Reevaluate(ctx context.Context, freetID uuid.UUID, text string) (*models.Detection, error) {
	return s.detections.Reevaluate(ctx, freetID, text)
}

// Rescan upserts a detection record for an existing freet.
func (s *ModerationService) Rescan(ctx context.Context, freetID uuid.UUID, text string) (*models.Detection, error) {
	return s.detections.Rescan(ctx, freetID, text)
}

func (s *ModerationService) Detection(ctx context.Context, freetID uuid.UUID) (*models.Detection, error) {
	if err := requireContent(ctx, s.directory, freetID); err != nil {
		return nil, err
	}
	return s.detections.Find(ctx, freetID)
}

// PurgeContent removes every moderation row for a deleted freet. It does not
// check existence since the freet is normally already gone.
func (s *ModerationService) PurgeContent(ctx context.Context, freetID uuid.UUID) error {
	if err := s.reports.DeleteAllForContent(ctx, freetID); err != nil {
		return err
	}
	if err := s.detections.Delete(ctx, freetID); err != nil {
		return err
	}
	s.directory.Forget(freetID)
	slog.Info("freet moderation data purged", "action", "purge_content", "freet_id", freetID.String())
	return nil
}

// PurgeAuthor removes every report filed by a deleted user.
func (s *ModerationService) PurgeAuthor(ctx context.Context, authorID uuid.UUID) error {
	if err := s.reports.DeleteAllForAuthor(ctx, authorID); err != nil {
		return err
	}
	slog.Info("author reports purged", "action", "purge_author", "user_id", authorID.String())
	return nil
}
