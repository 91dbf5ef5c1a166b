package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stemsi/quizlingua/internal/config"
	"github.com/stemsi/quizlingua/internal/model"
)

// RedisQuizCache stores canonical quizzes as JSON strings. Resolution into a
// language happens after the read, so one entry serves every language.
type RedisQuizCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisQuizCache creates a cache with the given entry TTL.
func NewRedisQuizCache(rdb *redis.Client, ttl time.Duration) *RedisQuizCache {
	return &RedisQuizCache{rdb: rdb, ttl: ttl}
}

func (c *RedisQuizCache) Get(ctx context.Context, id uuid.UUID) (*model.Quiz, error) {
	raw, err := c.rdb.Get(ctx, config.CacheKey.QuizCanonicalKey(id.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get cached quiz: %w", err)
	}

	var quiz model.Quiz
	if err := json.Unmarshal(raw, &quiz); err != nil {
		return nil, fmt.Errorf("decode cached quiz: %w", err)
	}
	return &quiz, nil
}

func (c *RedisQuizCache) Set(ctx context.Context, q *model.Quiz) error {
	raw, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("encode quiz: %w", err)
	}
	return c.rdb.Set(ctx, config.CacheKey.QuizCanonicalKey(q.ID.String()), raw, c.ttl).Err()
}

func (c *RedisQuizCache) Invalidate(ctx context.Context, id uuid.UUID) error {
	return c.rdb.Del(ctx, config.CacheKey.QuizCanonicalKey(id.String())).Err()
}
