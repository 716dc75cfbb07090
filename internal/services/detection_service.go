package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DetectionService persists one scan outcome per freet. Writes rely on the
// unique freet_id index instead of read-then-write checks.
type DetectionService struct {
	db        *gorm.DB
	filter    *ContentFilter
	directory ContentDirectory
}

func NewDetectionService(db *gorm.DB, filter *ContentFilter, directory ContentDirectory) *DetectionService {
	return &DetectionService{db: db, filter: filter, directory: directory}
}

// Create inserts the record or fails with ErrDetectionExists.
func (s *DetectionService) Create(ctx context.Context, freetID uuid.UUID, detected bool, terms []string) (*models.Detection, error) {
	rec, err := newDetection(freetID, detected, terms)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "freet_id"}}, DoNothing: true}).
		Create(rec)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create detection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrDetectionExists
	}
	return rec, nil
}

// Update overwrites an existing record or fails with ErrDetectionNotFound.
func (s *DetectionService) Update(ctx context.Context, freetID uuid.UUID, detected bool, terms []string) (*models.Detection, error) {
	raw, err := encodeTerms(terms)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&models.Detection{}).
		Where("freet_id = ?", freetID).
		Updates(map[string]interface{}{
			"detected":      detected,
			"matched_terms": raw,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update detection: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrDetectionNotFound
	}
	return s.find(ctx, freetID)
}

// Set creates or overwrites the record in a single statement.
func (s *DetectionService) Set(ctx context.Context, freetID uuid.UUID, detected bool, terms []string) (*models.Detection, error) {
	rec, err := newDetection(freetID, detected, terms)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "freet_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"detected", "matched_terms", "updated_at"}),
		}).
		Create(rec).Error
	if err != nil {
		return nil, fmt.Errorf("failed to upsert detection: %w", err)
	}
	return s.find(ctx, freetID)
}

// Get returns the stored flag, or ErrDetectionNotFound if the freet was never scanned.
func (s *DetectionService) Get(ctx context.Context, freetID uuid.UUID) (bool, error) {
	rec, err := s.find(ctx, freetID)
	if err != nil {
		return false, err
	}
	return rec.Detected, nil
}

func (s *DetectionService) Find(ctx context.Context, freetID uuid.UUID) (*models.Detection, error) {
	return s.find(ctx, freetID)
}

func (s *DetectionService) Delete(ctx context.Context, freetID uuid.UUID) error {
	return s.db.WithContext(ctx).Where("freet_id = ?", freetID).Delete(&models.Detection{}).Error
}

// Evaluate scans text and stores the first detection record for a freet.
// An empty text loads the freet's own content.
func (s *DetectionService) Evaluate(ctx context.Context, freetID uuid.UUID, text string) (*models.Detection, error) {
	res, err := s.scan(ctx, freetID, text)
	if err != nil {
		return nil, err
	}
	return s.Create(ctx, freetID, res.Detected, res.MatchedTerms)
}

// Reevaluate rescans and overwrites an existing record.
func (s *DetectionService) Reevaluate(ctx context.Context, freetID uuid.UUID, text string) (*models.Detection, error) {
	res, err := s.scan(ctx, freetID, text)
	if err != nil {
		return nil, err
	}
	return s.Update(ctx, freetID, res.Detected, res.MatchedTerms)
}

// Rescan creates or overwrites the record. Like Evaluate, an empty text
// rescans the freet's stored content.
func (s *DetectionService) Rescan(ctx context.Context, freetID uuid.UUID, text string) (*models.Detection, error) {
	res, err := s.scan(ctx, freetID, text)
	if err != nil {
		return nil, err
	}
	return s.Set(ctx, freetID, res.Detected, res.MatchedTerms)
}

func (s *DetectionService) scan(ctx context.Context, freetID uuid.UUID, text string) (ScanResult, error) {
	if err := requireContent(ctx, s.directory, freetID); err != nil {
		return ScanResult{}, err
	}
	if text == "" {
		content, err := s.directory.Content(ctx, freetID)
		if err != nil {
			return ScanResult{}, err
		}
		text = content
	}
	return s.filter.Scan(text), nil
}

func (s *DetectionService) find(ctx context.Context, freetID uuid.UUID) (*models.Detection, error) {
	var rec models.Detection
	if err := s.db.WithContext(ctx).First(&rec, "freet_id = ?", freetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDetectionNotFound
		}
		return nil, fmt.Errorf("failed to load detection: %w", err)
	}
	return &rec, nil
}

func newDetection(freetID uuid.UUID, detected bool, terms []string) (*models.Detection, error) {
	raw, err := encodeTerms(terms)
	if err != nil {
		return nil, err
	}
	return &models.Detection{
		ID:           uuid.New(),
		FreetID:      freetID,
		Detected:     detected,
		MatchedTerms: raw,
	}, nil
}

func encodeTerms(terms []string) (datatypes.JSON, error) {
	if terms == nil {
		terms = []string{}
	}
	b, err := json.Marshal(terms)
	if err != nil {
		return nil, fmt.Errorf("failed to encode matched terms: %w", err)
	}
	return datatypes.JSON(b), nil
}

// DecodeTerms reads the matched_terms column back into a slice.
func DecodeTerms(raw datatypes.JSON) []string {
	terms := []string{}
	if len(raw) == 0 {
		return terms
	}
	_ = json.Unmarshal(raw, &terms)
	return terms
}
