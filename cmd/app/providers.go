package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/summary"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
	"github.com/yanqian/weather-dashboard/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-dashboard/internal/infra/summaryapi"
	"github.com/yanqian/weather-dashboard/internal/infra/weather/graphql"
	"github.com/yanqian/weather-dashboard/internal/infra/weathercache"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideSummaryConfig(cfg *config.Config) summary.Config {
	return summary.Config{
		Prompt:        cfg.Summary.Prompt,
		MaxSummaryLen: cfg.Summary.MaxSummaryLen,
		Model:         cfg.LLM.Model,
		Temperature:   cfg.LLM.Temperature,
	}
}

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	return dashboard.Config{Timezone: cfg.Weather.Timezone}
}

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.Timeout)
}

func provideWeatherClient(cfg *config.Config, recorder *metrics.Recorder) (*graphql.Client, error) {
	return graphql.NewClient(cfg.Weather.GraphQLURL, cfg.Weather.APIKey, cfg.Weather.Timeout, recorder)
}

func provideSummaryAPIClient(cfg *config.Config, recorder *metrics.Recorder) (*summaryapi.Client, error) {
	return summaryapi.NewClient(cfg.Summary.BaseURL, cfg.Summary.Timeout, recorder)
}

func provideWeatherSource(cfg *config.Config, client *graphql.Client, cache forecast.Cache, recorder *metrics.Recorder, logger *slog.Logger) forecast.Source {
	return forecast.NewCachedSource(client, cache, cfg.Cache.TTL, recorder, logger)
}

func provideWeatherCache(cfg *config.Config, logger *slog.Logger) (forecast.Cache, func()) {
	noop := func() {}
	if cfg.Cache.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
			return weathercache.NewMemoryStore(10 * time.Minute), noop
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
			return weathercache.NewMemoryStore(10 * time.Minute), noop
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory cache", "error", err)
			client.Close()
		} else {
			logger.Info("weather valkey cache enabled", "addr", cfg.Cache.Valkey.Addr)
			return weathercache.NewValkeyStore(client, cfg.Cache.Valkey.Prefix), client.Close
		}
	}
	return weathercache.NewMemoryStore(10 * time.Minute), noop
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Cache.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Cache.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Cache.Valkey.Addr}}
	}
	if err != nil {
		return valkey.ClientOption{}, err
	}
	return opt, nil
}
