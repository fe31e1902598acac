package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "portal:"

// Preference keys.
const (
	PreferenceTheme = "theme"
)

// Store is the per-client key/value store backing the portal session.
// A missing token reads as "".
type Store interface {
	Token(ctx context.Context, clientID string) (string, error)
	SetToken(ctx context.Context, clientID, token string) error
	RemoveToken(ctx context.Context, clientID string) error
	Preference(ctx context.Context, clientID, key string) (string, error)
	SetPreference(ctx context.Context, clientID, key, value string) error
}

// IsAuthenticated reports whether a token is stored for clientID.
func IsAuthenticated(ctx context.Context, store Store, clientID string) bool {
	token, err := store.Token(ctx, clientID)
	return err == nil && token != ""
}

func tokenKey(clientID string) string {
	return keyPrefix + clientID + ":token"
}

func preferenceKey(clientID, key string) string {
	return keyPrefix + clientID + ":" + key
}

// RedisStore keeps session values in redis without expiry.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisStore) set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Token(ctx context.Context, clientID string) (string, error) {
	return s.get(ctx, tokenKey(clientID))
}

func (s *RedisStore) SetToken(ctx context.Context, clientID, token string) error {
	return s.set(ctx, tokenKey(clientID), token)
}

func (s *RedisStore) RemoveToken(ctx context.Context, clientID string) error {
	return s.client.Del(ctx, tokenKey(clientID)).Err()
}

func (s *RedisStore) Preference(ctx context.Context, clientID, key string) (string, error) {
	return s.get(ctx, preferenceKey(clientID, key))
}

func (s *RedisStore) SetPreference(ctx context.Context, clientID, key, value string) error {
	return s.set(ctx, preferenceKey(clientID, key), value)
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

func (s *MemoryStore) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *MemoryStore) Token(_ context.Context, clientID string) (string, error) {
	return s.get(tokenKey(clientID)), nil
}

func (s *MemoryStore) SetToken(_ context.Context, clientID, token string) error {
	s.set(tokenKey(clientID), token)
	return nil
}

func (s *MemoryStore) RemoveToken(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, tokenKey(clientID))
	return nil
}

func (s *MemoryStore) Preference(_ context.Context, clientID, key string) (string, error) {
	return s.get(preferenceKey(clientID, key)), nil
}

func (s *MemoryStore) SetPreference(_ context.Context, clientID, key, value string) error {
	s.set(preferenceKey(clientID, key), value)
	return nil
}
