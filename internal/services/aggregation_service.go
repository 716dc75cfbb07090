package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type AggregateScore struct {
	TotalCount     int64
	CategoryCounts map[string]int64
}

// AggregationService blends report counts with the detection flag. Scores
// are computed on every read and never stored.
type AggregationService struct {
	reports    *ReportService
	detections *DetectionService
	directory  ContentDirectory
	weight     int64
}

// NewAggregationService takes the bonus a positive detection adds to the
// total count (10 in the default config).
func NewAggregationService(reports *ReportService, detections *DetectionService, directory ContentDirectory, detectionWeight int) *AggregationService {
	return &AggregationService{
		reports:    reports,
		detections: detections,
		directory:  directory,
		weight:     int64(detectionWeight),
	}
}

func (s *AggregationService) Aggregate(ctx context.Context, freetID uuid.UUID) (*AggregateScore, error) {
	if err := requireContent(ctx, s.directory, freetID); err != nil {
		return nil, err
	}

	total, err := s.reports.CountAll(ctx, freetID)
	if err != nil {
		return nil, err
	}

	// A freet that was never scanned aggregates as not flagged.
	flagged, err := s.detections.Get(ctx, freetID)
	if err != nil && !errors.Is(err, ErrDetectionNotFound) {
		return nil, err
	}
	if flagged {
		total += s.weight
	}

	score := &AggregateScore{
		TotalCount:     total,
		CategoryCounts: make(map[string]int64, len(Categories)),
	}
	for _, c := range Categories {
		n, err := s.reports.CountByCategory(ctx, freetID, c)
		if err != nil {
			return nil, err
		}
		score.CategoryCounts[c] = n
	}
	return score, nil
}
