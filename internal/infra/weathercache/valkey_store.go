package weathercache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
)

// ValkeyStore shares weather documents between instances through Valkey.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

func (s *ValkeyStore) Get(ctx context.Context, key string) (forecast.WeatherResult, bool, error) {
	cmd := s.client.B().Get().Key(s.entryKey(key)).Build()
	payload, err := s.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return forecast.WeatherResult{}, false, nil
		}
		return forecast.WeatherResult{}, false, err
	}
	var result forecast.WeatherResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		return forecast.WeatherResult{}, false, fmt.Errorf("decode cached weather: %w", err)
	}
	return result, true, nil
}

func (s *ValkeyStore) Set(ctx context.Context, key string, result forecast.WeatherResult, ttl time.Duration) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) entryKey(key string) string {
	return fmt.Sprintf("%s:forecast:%s", s.prefix, key)
}

var _ forecast.Cache = (*ValkeyStore)(nil)
