// Package cache stores the draft slot in Redis so an unsaved order survives
// a restart.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	domainRepo "github.com/bacdepzai/orderdesk/internal/domain/repository"
	"github.com/go-redis/redis/v8"
)

const draftKey = "draft:current"

// NewRedisClient parses url and pings the server.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}

type draftStore struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDraftStore keeps the draft as one JSON blob under prefix+"draft:current".
// A ttl of zero keeps it forever.
func NewDraftStore(rdb *redis.Client, prefix string, ttl time.Duration) domainRepo.DraftRepository {
	return &draftStore{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (s *draftStore) key() string {
	return s.prefix + draftKey
}

func (s *draftStore) Load(ctx context.Context) (*entity.Order, error) {
	val, err := s.rdb.Get(ctx, s.key()).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft entity.Order
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

func (s *draftStore) Store(ctx context.Context, draft *entity.Order) error {
	jsonData, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	return s.rdb.Set(ctx, s.key(), jsonData, s.ttl).Err()
}

func (s *draftStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key()).Err()
}
