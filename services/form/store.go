package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const stateKeyPrefix = "formState:"

// StateStore persists form state per client and service.
// Load returns nil, nil when nothing is stored.
type StateStore interface {
	Load(ctx context.Context, clientID, service string) (*State, error)
	Save(ctx context.Context, clientID, service string, state State) error
	Delete(ctx context.Context, clientID, service string) error
}

func stateKey(clientID, service string) string {
	return stateKeyPrefix + clientID + ":" + service
}

// RedisStateStore keeps drafts as JSON blobs that expire when untouched.
type RedisStateStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStateStore(client *redis.Client, ttl time.Duration) *RedisStateStore {
	return &RedisStateStore{client: client, ttl: ttl}
}

func (s *RedisStateStore) Load(ctx context.Context, clientID, service string) (*State, error) {
	data, err := s.client.Get(ctx, stateKey(clientID, service)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load form state: %w", err)
	}
	var state State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal form state: %w", err)
	}
	return &state, nil
}

func (s *RedisStateStore) Save(ctx context.Context, clientID, service string, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal form state: %w", err)
	}
	if err := s.client.Set(ctx, stateKey(clientID, service), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save form state: %w", err)
	}
	return nil
}

func (s *RedisStateStore) Delete(ctx context.Context, clientID, service string) error {
	return s.client.Del(ctx, stateKey(clientID, service)).Err()
}

// MemoryStateStore is an in-process StateStore without expiry.
type MemoryStateStore struct {
	mu     sync.Mutex
	states map[string]State
}

func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[string]State)}
}

func (s *MemoryStateStore) Load(_ context.Context, clientID, service string) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	state, ok := s.states[stateKey(clientID, service)]
	if !ok {
		return nil, nil
	}
	state.Values = copyValues(state.Values)
	return &state, nil
}

func (s *MemoryStateStore) Save(_ context.Context, clientID, service string, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state.Values = copyValues(state.Values)
	s.states[stateKey(clientID, service)] = state
	return nil
}

func (s *MemoryStateStore) Delete(_ context.Context, clientID, service string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, stateKey(clientID, service))
	return nil
}
