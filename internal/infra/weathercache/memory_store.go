package weathercache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
)

// MemoryStore keeps weather documents in process memory.
type MemoryStore struct {
	items *gocache.Cache
}

// NewMemoryStore constructs a store that purges expired entries every cleanup interval.
func NewMemoryStore(cleanup time.Duration) *MemoryStore {
	return &MemoryStore{items: gocache.New(gocache.NoExpiration, cleanup)}
}

// Get implements forecast.Cache.
func (s *MemoryStore) Get(_ context.Context, key string) (forecast.WeatherResult, bool, error) {
	v, ok := s.items.Get(key)
	if !ok {
		return forecast.WeatherResult{}, false, nil
	}
	result, ok := v.(forecast.WeatherResult)
	return result, ok, nil
}

// Set implements forecast.Cache. A ttl <= 0 keeps the entry until evicted.
func (s *MemoryStore) Set(_ context.Context, key string, result forecast.WeatherResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	s.items.Set(key, result, ttl)
	return nil
}

var _ forecast.Cache = (*MemoryStore)(nil)
