package forecast

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

// Source fetches weather documents from the provider.
type Source interface {
	Fetch(ctx context.Context, q Query) (WeatherResult, error)
}

// Cache stores weather documents for the revalidation window.
type Cache interface {
	Get(ctx context.Context, key string) (WeatherResult, bool, error)
	Set(ctx context.Context, key string, result WeatherResult, ttl time.Duration) error
}

type cachedSource struct {
	source   Source
	cache    Cache
	ttl      time.Duration
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewCachedSource serves results younger than ttl from cache and otherwise
// calls source once and stores the result. A ttl <= 0 disables caching.
func NewCachedSource(source Source, cache Cache, ttl time.Duration, recorder *metrics.Recorder, logger *slog.Logger) Source {
	if cache == nil || ttl <= 0 {
		return source
	}
	return &cachedSource{
		source:   source,
		cache:    cache,
		ttl:      ttl,
		recorder: recorder,
		logger:   logger.With("component", "forecast.cachedSource"),
	}
}

func (s *cachedSource) Fetch(ctx context.Context, q Query) (WeatherResult, error) {
	key := q.CacheKey()
	cached, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("weather cache lookup failed", "key", key, "error", err)
	}
	if ok {
		s.recorder.CacheLookup(true)
		return cached, nil
	}
	s.recorder.CacheLookup(false)

	result, err := s.source.Fetch(ctx, q)
	if err != nil {
		return WeatherResult{}, err
	}
	if err := s.cache.Set(ctx, key, result, s.ttl); err != nil {
		s.logger.Warn("weather cache store failed", "key", key, "error", err)
	}
	return result, nil
}
