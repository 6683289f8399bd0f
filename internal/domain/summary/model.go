package summary

import (
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

// Config configures summary generation.
type Config struct {
	Prompt        string
	MaxSummaryLen int
	Model         string
	Temperature   float32
}

// Request is the body accepted by the summary endpoint.
type Request struct {
	WeatherData *forecast.SummaryPayload `json:"weatherData"`
}

// Response is returned by the summary endpoint.
type Response struct {
	Content    string              `json:"content"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}
