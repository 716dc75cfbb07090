package events

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*gorm.DB, *LifecycleListener) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	directory := services.NewFreetDirectory(db, time.Minute)
	filter := services.NewContentFilter()
	reports := services.NewReportService(db, directory)
	detections := services.NewDetectionService(db, filter, directory)
	aggregation := services.NewAggregationService(reports, detections, directory, 10)
	moderation := services.NewModerationService(reports, detections, aggregation, directory, filter)

	return db, NewLifecycleListener(nil, "test", moderation)
}

func seedFreet(t *testing.T, db *gorm.DB, content string) uuid.UUID {
	t.Helper()
	f := models.Freet{ID: uuid.New(), AuthorID: uuid.New(), Content: content}
	require.NoError(t, db.Create(&f).Error)
	return f.ID
}

func event(typ string, id uuid.UUID, content string) []byte {
	return []byte(fmt.Sprintf(`{"type":%q,"id":%q,"content":%q}`, typ, id.String(), content))
}

func loadDetection(t *testing.T, db *gorm.DB, freet uuid.UUID) models.Detection {
	t.Helper()
	var d models.Detection
	require.NoError(t, db.First(&d, "freet_id = ?", freet).Error)
	return d
}

func TestHandle_CreatedEvaluatesContent(t *testing.T) {
	db, l := setup(t)
	ctx := context.Background()
	freet := seedFreet(t, db, "you bastard")

	require.NoError(t, l.Handle(ctx, event(FreetCreated, freet, "")))
	d := loadDetection(t, db, freet)
	assert.True(t, d.Detected)
	assert.Equal(t, []string{"bastard"}, services.DecodeTerms(d.MatchedTerms))

	// A replayed create keeps the first record.
	require.NoError(t, l.Handle(ctx, event(FreetCreated, freet, "clean words")))
	assert.True(t, loadDetection(t, db, freet).Detected)
}

func TestHandle_UpdatedRescans(t *testing.T) {
	db, l := setup(t)
	ctx := context.Background()
	freet := seedFreet(t, db, "hello")

	require.NoError(t, l.Handle(ctx, event(FreetUpdated, freet, "total jackass")))
	assert.True(t, loadDetection(t, db, freet).Detected)

	require.NoError(t, l.Handle(ctx, event(FreetUpdated, freet, "all good now")))
	d := loadDetection(t, db, freet)
	assert.False(t, d.Detected)
	assert.Empty(t, services.DecodeTerms(d.MatchedTerms))
}

func TestHandle_UpdatedWithoutContentKeepsStoredScan(t *testing.T) {
	db, l := setup(t)
	ctx := context.Background()
	freet := seedFreet(t, db, "you bastard")

	require.NoError(t, l.Handle(ctx, event(FreetCreated, freet, "")))
	require.True(t, loadDetection(t, db, freet).Detected)

	payload := []byte(fmt.Sprintf(`{"type":%q,"id":%q}`, FreetUpdated, freet.String()))
	require.NoError(t, l.Handle(ctx, payload))
	d := loadDetection(t, db, freet)
	assert.True(t, d.Detected)
	assert.Equal(t, []string{"bastard"}, services.DecodeTerms(d.MatchedTerms))
}

func TestHandle_UpdatedForUnknownFreet(t *testing.T) {
	db, l := setup(t)
	missing := uuid.New()

	err := l.Handle(context.Background(), event(FreetUpdated, missing, "you bastard"))
	assert.ErrorIs(t, err, services.ErrContentNotFound)

	var n int64
	require.NoError(t, db.Model(&models.Detection{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestHandle_DeletesCascade(t *testing.T) {
	db, l := setup(t)
	ctx := context.Background()
	freet := seedFreet(t, db, "bitch")
	author := uuid.New()

	require.NoError(t, l.Handle(ctx, event(FreetCreated, freet, "")))
	require.NoError(t, db.Create(&models.Report{ID: uuid.New(), AuthorID: author, FreetID: freet, Category: services.CategoryOffensive}).Error)
	other := seedFreet(t, db, "fine")
	require.NoError(t, db.Create(&models.Report{ID: uuid.New(), AuthorID: author, FreetID: other, Category: services.CategorySensitive}).Error)

	require.NoError(t, l.Handle(ctx, event(FreetDeleted, freet, "")))
	var n int64
	require.NoError(t, db.Model(&models.Detection{}).Where("freet_id = ?", freet).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&models.Report{}).Where("freet_id = ?", freet).Count(&n).Error)
	assert.Zero(t, n)

	require.NoError(t, l.Handle(ctx, event(UserDeleted, author, "")))
	require.NoError(t, db.Model(&models.Report{}).Where("author_id = ?", author).Count(&n).Error)
	assert.Zero(t, n)

	// Purges are idempotent.
	require.NoError(t, l.Handle(ctx, event(FreetDeleted, freet, "")))
}

func TestHandle_Malformed(t *testing.T) {
	_, l := setup(t)
	ctx := context.Background()

	assert.ErrorIs(t, l.Handle(ctx, []byte("not json")), ErrMalformedMessage)
	assert.ErrorIs(t, l.Handle(ctx, []byte(`{"type":"freet.created","id":"nope"}`)), ErrMalformedMessage)
	assert.ErrorIs(t, l.Handle(ctx, event("freet.liked", uuid.New(), "")), ErrMalformedMessage)
}

func TestHandle_CreatedForUnknownFreet(t *testing.T) {
	_, l := setup(t)
	err := l.Handle(context.Background(), event(FreetCreated, uuid.New(), "bitch"))
	assert.ErrorIs(t, err, services.ErrContentNotFound)
}
