package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/davidbz/ollamagen/internal/observability"
)

// RedisStore keeps each kind in one hash keyed by entity id.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed store. Keys are {prefix}:{kind}.
func NewRedisStore(client *redis.Client, prefix string) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &RedisStore{
		client: client,
		prefix: prefix,
	}, nil
}

// Exists reports whether the kind's hash has any field.
func (s *RedisStore) Exists(ctx context.Context, kind string) (bool, error) {
	n, err := s.client.HLen(ctx, s.Key(kind)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", kind, err)
	}
	return n > 0, nil
}

// Write stores item as JSON under field id.
func (s *RedisStore) Write(ctx context.Context, kind, id string, item any) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("failed to marshal %s %s: %w", kind, id, err)
	}

	if setErr := s.client.HSet(ctx, s.Key(kind), id, data).Err(); setErr != nil {
		observability.FromContext(ctx).Error("redis write failed",
			observability.String("key", s.Key(kind)),
			observability.String("id", id),
			observability.Error(setErr))
		return fmt.Errorf("failed to write %s %s: %w", kind, id, setErr)
	}

	return nil
}

// ReadAll returns every stored document of the kind ordered by id.
func (s *RedisStore) ReadAll(ctx context.Context, kind string) ([][]byte, error) {
	fields, err := s.client.HGetAll(ctx, s.Key(kind)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", kind, err)
	}

	ids := make([]string, 0, len(fields))
	for id := range fields {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	docs := make([][]byte, 0, len(ids))
	for _, id := range ids {
		docs = append(docs, []byte(fields[id]))
	}

	return docs, nil
}

// Key returns the hash key holding the kind.
func (s *RedisStore) Key(kind string) string {
	if s.prefix == "" {
		return kind
	}
	return s.prefix + ":" + kind
}
