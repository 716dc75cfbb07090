package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitReportUnauthenticated(t *testing.T) {
	f := newFixture(t)
	freet := f.seedFreet(t, "x")

	_, err := f.moderation.SubmitReport(context.Background(), uuid.Nil, freet, CategoryOffensive, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	var n int64
	require.NoError(t, f.db.Model(&models.Report{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestSubmitReportChecksFreetBeforeCategory(t *testing.T) {
	f := newFixture(t)

	_, err := f.moderation.SubmitReport(context.Background(), uuid.New(), uuid.New(), "spam", "")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestCategoryReports(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	freet := f.seedFreet(t, "x")
	f.report(t, uuid.New(), freet, CategorySensitive)
	f.report(t, uuid.New(), freet, CategoryOffensive)

	reports, count, err := f.moderation.CategoryReports(ctx, freet, CategorySensitive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, reports, 1)
	assert.Equal(t, CategorySensitive, reports[0].Category)

	_, _, err = f.moderation.CategoryReports(ctx, freet, "spam")
	assert.ErrorIs(t, err, ErrInvalidCategory)

	_, _, err = f.moderation.CategoryReports(ctx, uuid.New(), "spam")
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestPurgeContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	freet := f.seedFreet(t, "x")
	f.report(t, uuid.New(), freet, CategorySensitive)
	_, err := f.detections.Create(ctx, freet, true, nil)
	require.NoError(t, err)

	require.NoError(t, f.moderation.PurgeContent(ctx, freet))
	require.NoError(t, f.moderation.PurgeContent(ctx, freet))

	n, err := f.reports.CountAll(ctx, freet)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = f.detections.Get(ctx, freet)
	assert.ErrorIs(t, err, ErrDetectionNotFound)
}

func TestPurgeContentForgetsCachedFreet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	freet := f.seedFreet(t, "x")

	ok, err := f.directory.Exists(ctx, freet)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, f.db.Delete(&models.Freet{}, "id = ?", freet).Error)
	require.NoError(t, f.moderation.PurgeContent(ctx, freet))

	ok, err = f.directory.Exists(ctx, freet)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRescanUpserts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	freet := f.seedFreet(t, "x")

	rec, err := f.moderation.Rescan(ctx, freet, "you whore")
	require.NoError(t, err)
	assert.True(t, rec.Detected)

	rec, err = f.moderation.Rescan(ctx, freet, "sorry")
	require.NoError(t, err)
	assert.False(t, rec.Detected)
}

func TestRescanUnknownFreet(t *testing.T) {
	f := newFixture(t)
	missing := uuid.New()

	_, err := f.moderation.Rescan(context.Background(), missing, "you bastard")
	assert.ErrorIs(t, err, ErrContentNotFound)

	var n int64
	require.NoError(t, f.db.Model(&models.Detection{}).Where("freet_id = ?", missing).Count(&n).Error)
	assert.Zero(t, n)
}

func TestRescanEmptyTextUsesStoredContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	freet := f.seedFreet(t, "you bastard")

	rec, err := f.moderation.Rescan(ctx, freet, "")
	require.NoError(t, err)
	assert.True(t, rec.Detected)
	assert.Equal(t, []string{"bastard"}, DecodeTerms(rec.MatchedTerms))
}

func TestCheckReportOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.seedUser(t, "alice")
	freet := f.seedFreet(t, "x")

	assert.ErrorIs(t, f.moderation.CheckReport(ctx, uuid.Nil, uuid.New(), "spam"), ErrUnauthenticated)
	assert.ErrorIs(t, f.moderation.CheckReport(ctx, author, uuid.New(), "spam"), ErrContentNotFound)
	assert.ErrorIs(t, f.moderation.CheckReport(ctx, author, freet, "spam"), ErrInvalidCategory)
	assert.NoError(t, f.moderation.CheckReport(ctx, author, freet, CategorySensitive))
}
