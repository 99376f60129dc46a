// Package cache wraps a reference-data store in a Redis read-through cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/felixgeelhaar/tribunal/internal/referencedata/domain"
	"github.com/felixgeelhaar/tribunal/pkg/observability"
)

const keyPrefix = "tribunal:ref:"

// DefaultTTL applies when a non-positive TTL is configured.
const DefaultTTL = 15 * time.Minute

// RedisStore caches lookups from the wrapped store. Absent records are cached
// as JSON null so repeated misses do not reach the database. Redis failures
// are logged and the lookup falls through to the wrapped store.
type RedisStore struct {
	next    domain.Store
	client  redis.UniversalClient
	ttl     time.Duration
	logger  *slog.Logger
	metrics observability.Metrics
}

var _ domain.Store = (*RedisStore)(nil)

// NewRedisStore creates a caching decorator over next.
func NewRedisStore(next domain.Store, client redis.UniversalClient, ttl time.Duration, logger *slog.Logger, metrics observability.Metrics) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &RedisStore{next: next, client: client, ttl: ttl, logger: logger, metrics: metrics}
}

func (s *RedisStore) FindVenueByID(ctx context.Context, id string) (*domain.Venue, error) {
	return readThrough(ctx, s, "venue", id, func(ctx context.Context) (*domain.Venue, error) {
		return s.next.FindVenueByID(ctx, id)
	})
}

func (s *RedisStore) FindLanguageByKey(ctx context.Context, key string) (*domain.Language, error) {
	return readThrough(ctx, s, "language", key, func(ctx context.Context) (*domain.Language, error) {
		return s.next.FindLanguageByKey(ctx, key)
	})
}

func (s *RedisStore) FindPanelMembersByType(ctx context.Context, memberType domain.MemberType) ([]domain.PanelMember, error) {
	members, err := readThrough(ctx, s, "panel", string(memberType), func(ctx context.Context) (*[]domain.PanelMember, error) {
		found, err := s.next.FindPanelMembersByType(ctx, memberType)
		if err != nil {
			return nil, err
		}
		return &found, nil
	})
	if err != nil || members == nil {
		return nil, err
	}
	return *members, nil
}

func (s *RedisStore) FindSchedulingLocationByName(ctx context.Context, name string) (*domain.SchedulingLocation, error) {
	return readThrough(ctx, s, "location", strings.ToLower(name), func(ctx context.Context) (*domain.SchedulingLocation, error) {
		return s.next.FindSchedulingLocationByName(ctx, name)
	})
}

// Invalidate drops every cached reference record.
func (s *RedisStore) Invalidate(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

func readThrough[T any](ctx context.Context, s *RedisStore, kind, id string, load func(context.Context) (*T, error)) (*T, error) {
	key := keyPrefix + kind + ":" + id
	tag := observability.T("kind", kind)

	raw, err := s.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached *T
		if jsonErr := json.Unmarshal(raw, &cached); jsonErr == nil {
			s.metrics.Counter(observability.MetricReferenceCacheHits, 1, tag)
			return cached, nil
		}
		s.logger.WarnContext(ctx, "discarding unreadable cache entry", "key", key)
	case !errors.Is(err, redis.Nil):
		s.logger.WarnContext(ctx, "reference cache unavailable", "key", key, "error", err)
	}
	s.metrics.Counter(observability.MetricReferenceCacheMisses, 1, tag)

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	encoded, err := json.Marshal(value)
	if err == nil {
		if setErr := s.client.Set(ctx, key, encoded, s.ttl).Err(); setErr != nil {
			s.logger.WarnContext(ctx, "failed to populate reference cache", "key", key, "error", setErr)
		}
	}
	return value, nil
}
