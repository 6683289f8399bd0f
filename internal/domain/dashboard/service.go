package dashboard

import (
	"context"
	"log/slog"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	apperrors "github.com/yanqian/weather-dashboard/pkg/errors"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

// Service composes the weather dashboard for a location.
type Service interface {
	Compose(ctx context.Context, loc forecast.Location) (Dashboard, error)
}

// SummaryClient requests a generated summary for a normalized payload.
type SummaryClient interface {
	FetchSummary(ctx context.Context, payload forecast.SummaryPayload) (string, error)
}

type service struct {
	cfg       Config
	source    forecast.Source
	summaries SummaryClient
	recorder  *metrics.Recorder
	logger    *slog.Logger
}

// NewService wires up the page composer.
func NewService(cfg Config, source forecast.Source, summaries SummaryClient, recorder *metrics.Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		source:    source,
		summaries: summaries,
		recorder:  recorder,
		logger:    logger.With("component", "dashboard.service"),
	}
}

// Compose fetches the weather once, asks for a summary, and renders. A
// weather failure is returned to the caller; a summary failure only swaps
// the top callout for the fallback notice.
func (s *service) Compose(ctx context.Context, loc forecast.Location) (Dashboard, error) {
	query := forecast.BuildQuery(loc, s.cfg.Timezone)

	result, err := s.source.Fetch(ctx, query)
	if err != nil {
		return Dashboard{}, apperrors.Wrap("weather_error", "failed to fetch weather", err)
	}

	payload := forecast.Normalize(result, loc.City)

	summary := Unavailable()
	content, err := s.summaries.FetchSummary(ctx, payload)
	if err != nil {
		s.logger.Warn("weather summary unavailable", "city", loc.City, "error", err)
	} else {
		summary = Available(content)
	}
	s.recorder.SummaryOutcome(summary.State.String())

	s.logger.Info("dashboard composed", "city", loc.City, "timezone", result.Timezone, "summary", summary.State.String())
	return render(result, loc, summary), nil
}
