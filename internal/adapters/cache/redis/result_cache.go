// Package redis caches poll results for clients that re-read them on a
// fixed interval. Entries expire after a TTL shorter than that interval and
// are dropped on every accepted vote or like change.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/vncsmyrnk/pollify/internal/adapters/metrics"
	"github.com/vncsmyrnk/pollify/internal/core/domain"
	"github.com/vncsmyrnk/pollify/internal/core/ports"
)

const resultsKeyPrefix = "poll_results:"

type ResultCache struct {
	rdb     goredis.Cmdable
	ttl     time.Duration
	metrics *metrics.Metrics
}

var _ ports.ResultCache = (*ResultCache)(nil)

// NewClient parses a URL such as "redis://localhost:6379/0" and verifies
// the connection.
func NewClient(ctx context.Context, redisURL string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NewResultCache builds the cache. m may be nil.
func NewResultCache(rdb goredis.Cmdable, ttl time.Duration, m *metrics.Metrics) *ResultCache {
	return &ResultCache{rdb: rdb, ttl: ttl, metrics: m}
}

func (c *ResultCache) Get(ctx context.Context, pollID uuid.UUID) (*domain.PollResults, bool, error) {
	data, err := c.rdb.Get(ctx, key(pollID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		c.observe("miss")
		return nil, false, nil
	}
	if err != nil {
		c.observe("error")
		return nil, false, fmt.Errorf("failed to read cached results: %w", err)
	}

	var results domain.PollResults
	if err := json.Unmarshal(data, &results); err != nil {
		c.observe("error")
		return nil, false, fmt.Errorf("failed to decode cached results: %w", err)
	}
	c.observe("hit")
	return &results, true, nil
}

func (c *ResultCache) Set(ctx context.Context, results *domain.PollResults) error {
	data, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode results: %w", err)
	}
	if err := c.rdb.Set(ctx, key(results.PollID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache results: %w", err)
	}
	return nil
}

func (c *ResultCache) Invalidate(ctx context.Context, pollID uuid.UUID) error {
	if err := c.rdb.Del(ctx, key(pollID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate results: %w", err)
	}
	return nil
}

func (c *ResultCache) observe(result string) {
	if c.metrics != nil {
		c.metrics.ResultsCache.WithLabelValues(result).Inc()
	}
}

func key(pollID uuid.UUID) string {
	return resultsKeyPrefix + pollID.String()
}
