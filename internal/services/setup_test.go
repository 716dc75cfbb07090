package services

import (
	"context"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the service schema.
// One connection keeps every query on the same in-memory database.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

type fixture struct {
	db          *gorm.DB
	directory   *FreetDirectory
	filter      *ContentFilter
	reports     *ReportService
	detections  *DetectionService
	aggregation *AggregationService
	moderation  *ModerationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)
	f := &fixture{db: db}
	f.directory = NewFreetDirectory(db, time.Minute)
	f.filter = NewContentFilter()
	f.reports = NewReportService(db, f.directory)
	f.detections = NewDetectionService(db, f.filter, f.directory)
	f.aggregation = NewAggregationService(f.reports, f.detections, f.directory, 10)
	f.moderation = NewModerationService(f.reports, f.detections, f.aggregation, f.directory, f.filter)
	return f
}

func (f *fixture) seedUser(t *testing.T, username string) uuid.UUID {
	t.Helper()
	u := models.User{ID: uuid.New(), Username: username, Email: username + "@example.com"}
	require.NoError(t, f.db.Create(&u).Error)
	return u.ID
}

func (f *fixture) seedFreet(t *testing.T, content string) uuid.UUID {
	t.Helper()
	fr := models.Freet{ID: uuid.New(), AuthorID: uuid.New(), Content: content}
	require.NoError(t, f.db.Create(&fr).Error)
	return fr.ID
}

func (f *fixture) report(t *testing.T, author, freet uuid.UUID, category string) {
	t.Helper()
	_, err := f.reports.AddReport(context.Background(), author, freet, category, "")
	require.NoError(t, err)
}
