package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryOffensive      = "offensive"
	CategorySensitive      = "sensitive"
	CategoryMisinformation = "misinformation"
)

// Categories is the fixed, ordered set of report categories.
var Categories = []string{CategoryOffensive, CategorySensitive, CategoryMisinformation}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// ReportService is the report ledger. Reports are append-only; the same
// author may report the same freet under the same category more than once.
type ReportService struct {
	db        *gorm.DB
	directory ContentDirectory
}

func NewReportService(db *gorm.DB, directory ContentDirectory) *ReportService {
	return &ReportService{db: db, directory: directory}
}

func (s *ReportService) AddReport(ctx context.Context, authorID, freetID uuid.UUID, category, justification string) (*models.Report, error) {
	if err := requireContent(ctx, s.directory, freetID); err != nil {
		return nil, err
	}
	if !IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}

	report := models.Report{
		ID:            uuid.New(),
		AuthorID:      authorID,
		FreetID:       freetID,
		Category:      category,
		Justification: strings.TrimSpace(justification),
	}
	if err := s.db.WithContext(ctx).Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	// Author is resolved for the response only; a missing user row is fine.
	if err := s.db.WithContext(ctx).Preload("Author").First(&report, "id = ?", report.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload report: %w", err)
	}
	return &report, nil
}

func (s *ReportService) ListAll(ctx context.Context, freetID uuid.UUID) ([]models.Report, error) {
	return s.list(s.forFreet(ctx, freetID))
}

func (s *ReportService) ListByCategory(ctx context.Context, freetID uuid.UUID, category string) ([]models.Report, error) {
	if !IsValidCategory(category) {
		return nil, ErrInvalidCategory
	}
	return s.list(s.forFreet(ctx, freetID).Where("category = ?", category))
}

func (s *ReportService) CountAll(ctx context.Context, freetID uuid.UUID) (int64, error) {
	var n int64
	if err := s.forFreet(ctx, freetID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}

func (s *ReportService) CountByCategory(ctx context.Context, freetID uuid.UUID, category string) (int64, error) {
	if !IsValidCategory(category) {
		return 0, ErrInvalidCategory
	}
	var n int64
	if err := s.forFreet(ctx, freetID).Where("category = ?", category).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count reports: %w", err)
	}
	return n, nil
}

func (s *ReportService) DeleteAllForContent(ctx context.Context, freetID uuid.UUID) error {
	return s.db.WithContext(ctx).Where("freet_id = ?", freetID).Delete(&models.Report{}).Error
}

func (s *ReportService) DeleteAllForAuthor(ctx context.Context, authorID uuid.UUID) error {
	return s.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&models.Report{}).Error
}

func (s *ReportService) forFreet(ctx context.Context, freetID uuid.UUID) *gorm.DB {
	return s.db.WithContext(ctx).Model(&models.Report{}).Where("freet_id = ?", freetID)
}

func (s *ReportService) list(query *gorm.DB) ([]models.Report, error) {
	reports := []models.Report{}
	if err := query.Preload("Author").Order("created_at ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	return reports, nil
}
