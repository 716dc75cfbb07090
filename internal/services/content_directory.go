package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

// ContentDirectory answers questions about freets owned by the post service.
type ContentDirectory interface {
	Exists(ctx context.Context, freetID uuid.UUID) (bool, error)
	Content(ctx context.Context, freetID uuid.UUID) (string, error)
	Forget(freetID uuid.UUID)
}

// FreetDirectory reads the freets table. Only positive existence answers are
// cached, so a freet created after a miss is visible immediately; deletions
// must call Forget.
type FreetDirectory struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewFreetDirectory(db *gorm.DB, ttl time.Duration) *FreetDirectory {
	return &FreetDirectory{
		db:    db,
		cache: cache.New(ttl, 2*ttl),
	}
}

func (d *FreetDirectory) Exists(ctx context.Context, freetID uuid.UUID) (bool, error) {
	key := freetID.String()
	if _, ok := d.cache.Get(key); ok {
		return true, nil
	}

	var count int64
	if err := d.db.WithContext(ctx).Model(&models.Freet{}).Where("id = ?", freetID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to look up freet: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	d.cache.SetDefault(key, struct{}{})
	return true, nil
}

func (d *FreetDirectory) Content(ctx context.Context, freetID uuid.UUID) (string, error) {
	var freet models.Freet
	if err := d.db.WithContext(ctx).Select("id", "content").First(&freet, "id = ?", freetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrContentNotFound
		}
		return "", fmt.Errorf("failed to load freet: %w", err)
	}
	return freet.Content, nil
}

func (d *FreetDirectory) Forget(freetID uuid.UUID) {
	d.cache.Delete(freetID.String())
}

// requireContent turns a missing freet into ErrContentNotFound.
func requireContent(ctx context.Context, dir ContentDirectory, freetID uuid.UUID) error {
	ok, err := dir.Exists(ctx, freetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrContentNotFound
	}
	return nil
}
