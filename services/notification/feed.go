package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"mightymoves/models"

	"github.com/go-redis/redis/v8"
)

const (
	FeedKey = "portal:admin:notifications"
	// MaxFeedLength caps how many notifications are retained.
	MaxFeedLength = 200
)

// Feed is the admin notification list, newest first.
type Feed interface {
	Publish(ctx context.Context, n models.Notification) error
	List(ctx context.Context) ([]models.Notification, error)
	Clear(ctx context.Context) error
}

// RedisFeed stores notifications as JSON entries of a redis list.
type RedisFeed struct {
	client *redis.Client
}

func NewRedisFeed(client *redis.Client) *RedisFeed {
	return &RedisFeed{client: client}
}

func (f *RedisFeed) Publish(ctx context.Context, n models.Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	_, err = f.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, FeedKey, data)
		pipe.LTrim(ctx, FeedKey, 0, MaxFeedLength-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification: %w", err)
	}
	return nil
}

func (f *RedisFeed) List(ctx context.Context) ([]models.Notification, error) {
	raw, err := f.client.LRange(ctx, FeedKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	out := make([]models.Notification, 0, len(raw))
	for _, item := range raw {
		var n models.Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *RedisFeed) Clear(ctx context.Context) error {
	return f.client.Del(ctx, FeedKey).Err()
}

// MemoryFeed is an in-process Feed.
type MemoryFeed struct {
	mu    sync.RWMutex
	items []models.Notification
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{}
}

func (f *MemoryFeed) Publish(_ context.Context, n models.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append([]models.Notification{n}, f.items...)
	if len(f.items) > MaxFeedLength {
		f.items = f.items[:MaxFeedLength]
	}
	return nil
}

func (f *MemoryFeed) List(_ context.Context) ([]models.Notification, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *MemoryFeed) Clear(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = nil
	return nil
}
