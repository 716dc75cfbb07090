package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/services"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	FreetCreated = "freet.created"
	FreetUpdated = "freet.updated"
	FreetDeleted = "freet.deleted"
	UserDeleted  = "user.deleted"
)

// Message is published by the post and account services when content or
// users change.
type Message struct {
	Type    string `json:"type"`
	ID      string `json:"id"`
	Content string `json:"content,omitempty"`
}

var ErrMalformedMessage = errors.New("malformed lifecycle message")

// LifecycleListener keeps moderation data in step with freet and user
// lifecycle events.
type LifecycleListener struct {
	rdb        *redis.Client
	channel    string
	moderation *services.ModerationService
}

func NewLifecycleListener(rdb *redis.Client, channel string, moderation *services.ModerationService) *LifecycleListener {
	return &LifecycleListener{rdb: rdb, channel: channel, moderation: moderation}
}

// NewRedisClient connects and pings before returning.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// Start subscribes and processes messages in a goroutine until ctx is done.
func (l *LifecycleListener) Start(ctx context.Context) error {
	sub := l.rdb.Subscribe(ctx, l.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	slog.Info("lifecycle listener started", "channel", l.channel)

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					return
				}
				if err := l.Handle(ctx, []byte(m.Payload)); err != nil {
					slog.Warn("lifecycle event skipped", "action", "lifecycle_event", "error", err.Error())
				}
			}
		}
	}()
	return nil
}

// Handle applies a single event. Replays are harmless: a second create keeps
// the first detection and purges are idempotent.
func (l *LifecycleListener) Handle(ctx context.Context, payload []byte) error {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	id, err := uuid.Parse(msg.ID)
	if err != nil {
		return fmt.Errorf("%w: invalid id %q", ErrMalformedMessage, msg.ID)
	}

	switch msg.Type {
	case FreetCreated:
		_, err = l.moderation.Evaluate(ctx, id, msg.Content)
		if errors.Is(err, services.ErrDetectionExists) {
			return nil
		}
	case FreetUpdated:
		_, err = l.moderation.Rescan(ctx, id, msg.Content)
	case FreetDeleted:
		err = l.moderation.PurgeContent(ctx, id)
	case UserDeleted:
		err = l.moderation.PurgeAuthor(ctx, id)
	default:
		return fmt.Errorf("%w: unknown type %q", ErrMalformedMessage, msg.Type)
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", msg.Type, id, err)
	}
	return nil
}
