//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yanqian/weather-dashboard/internal/bootstrap"
	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/summary"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
	"github.com/yanqian/weather-dashboard/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-dashboard/internal/infra/summaryapi"
	httpiface "github.com/yanqian/weather-dashboard/internal/interface/http"
	"github.com/yanqian/weather-dashboard/pkg/logger"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

func initializeApp() (*bootstrap.App, func(), error) {
	wire.Build(
		config.Load,
		logger.New,
		provideRegistry,
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		wire.Bind(new(prometheus.Gatherer), new(*prometheus.Registry)),
		metrics.New,
		provideSummaryConfig,
		provideDashboardConfig,
		provideChatGPTClient,
		provideWeatherClient,
		provideSummaryAPIClient,
		provideWeatherCache,
		provideWeatherSource,
		summary.NewService,
		dashboard.NewService,
		wire.Bind(new(summary.ChatClient), new(*chatgpt.Client)),
		wire.Bind(new(dashboard.SummaryClient), new(*summaryapi.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil, nil
}
