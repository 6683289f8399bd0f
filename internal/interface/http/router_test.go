package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/weather-dashboard/internal/domain/dashboard"
	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/internal/domain/summary"
	"github.com/yanqian/weather-dashboard/internal/infra/config"
	"github.com/yanqian/weather-dashboard/internal/infra/llm/chatgpt"
	"github.com/yanqian/weather-dashboard/internal/infra/summaryapi"
	apperrors "github.com/yanqian/weather-dashboard/pkg/errors"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

func TestRouter_DashboardPageSummaryAvailable(t *testing.T) {
	source := &stubSource{result: sampleResult(21.36, 11.04, 7.2)}
	summaries := &stubSummaryClient{content: "X"}

	rec := performRequest(http.MethodGet, "/location/London/51.5072/-0.1276", "", newRouterUnderTest(t, source, summaries, &stubSummaryService{}))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "public, max-age=1440", rec.Header().Get("Cache-Control"))
	require.NotEmpty(t, rec.Header().Get(requestIDHeader))

	body := rec.Body.String()
	require.Contains(t, body, "21.4°C")
	require.Contains(t, body, "11.0°C")
	require.Contains(t, body, `data-summary="available"`)
	require.Contains(t, body, "<p>X</p>")
	require.Contains(t, body, dashboard.HighUVMessage)
	require.NotContains(t, body, dashboard.FallbackSummaryMessage)
	require.Contains(t, body, `id="chart-temperature"`)
	require.Contains(t, body, `id="chart-precipitation"`)
	require.Contains(t, body, `id="chart-humidity"`)

	require.Equal(t, 1, source.calls)
	require.Equal(t, "51.5072", source.lastQuery.Variables["latitude"])
	require.Equal(t, "-0.1276", source.lastQuery.Variables["longitude"])
	require.Equal(t, 1, summaries.calls)
	require.Equal(t, "London", summaries.lastPayload.City)
}

func TestRouter_DashboardPageSummaryUnavailable(t *testing.T) {
	source := &stubSource{result: sampleResult(21.36, 11.04, 5.0)}
	summaries := &stubSummaryClient{err: summaryapi.ErrUnavailable}

	rec := performRequest(http.MethodGet, "/location/London/51.5072/-0.1276", "", newRouterUnderTest(t, source, summaries, &stubSummaryService{}))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	require.Contains(t, body, dashboard.FallbackSummaryMessage)
	require.Contains(t, body, `data-summary="unavailable"`)
	require.Contains(t, body, "21.4°C")
	require.Contains(t, body, "5.0")
	require.NotContains(t, body, dashboard.HighUVMessage)
	require.Contains(t, body, `id="chart-humidity"`)
}

func TestRouter_DashboardWeatherFailure(t *testing.T) {
	source := &stubSource{err: errors.New("graphql: status 503")}
	summaries := &stubSummaryClient{content: "unused"}

	rec := performRequest(http.MethodGet, "/location/London/51.5072/-0.1276", "", newRouterUnderTest(t, source, summaries, &stubSummaryService{}))
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Empty(t, rec.Header().Get("Cache-Control"))

	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "weather_error", errBody["error"]["code"])
	require.Contains(t, errBody["error"]["message"], "graphql: status 503")
	require.Zero(t, summaries.calls)
}

func TestRouter_DashboardJSON(t *testing.T) {
	source := &stubSource{result: sampleResult(21.36, 11.04, 9.3)}
	summaries := &stubSummaryClient{content: "Sunny spells."}

	rec := performRequest(http.MethodGet, "/api/dashboard/London/51.5072/-0.1276", "", newRouterUnderTest(t, source, summaries, &stubSummaryService{}))
	require.Equal(t, http.StatusOK, rec.Code)

	var got dashboard.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "21.4°C", got.MaxTemperature.Metric)
	require.Equal(t, "Sunny spells.", got.SummaryCallout.Message)
	require.Equal(t, "available", got.SummaryState)
	require.NotNil(t, got.UVCallout)
	require.Len(t, got.Charts, 3)
	require.Equal(t, forecast.Location{City: "London", Latitude: "51.5072", Longitude: "-0.1276"}, got.Location)
}

func TestRouter_GetWeatherSummary(t *testing.T) {
	svc := &stubSummaryService{
		summarizeFn: func(ctx context.Context, req summary.Request) (summary.Response, error) {
			require.NotNil(t, req.WeatherData)
			require.Equal(t, "Paris", req.WeatherData.City)
			return summary.Response{Content: "Warm and dry in Paris."}, nil
		},
	}

	rec := performRequest(http.MethodPost, summaryapi.Path, `{"weatherData":{"city":"Paris"}}`, newRouterUnderTest(t, &stubSource{}, &stubSummaryClient{}, svc))
	require.Equal(t, http.StatusOK, rec.Code)

	var got summary.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Warm and dry in Paris.", got.Content)
}

func TestRouter_GetWeatherSummaryErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "malformed json",
			body:       `{"weatherData":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "missing payload",
			body:       `{}`,
			err:        apperrors.Wrap("invalid_input", "weatherData is required", nil),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_input",
		},
		{
			name:       "llm failure",
			body:       `{"weatherData":{"city":"Paris"}}`,
			err:        apperrors.Wrap("llm_error", "failed to generate summary", errors.New("status 500")),
			wantStatus: http.StatusBadGateway,
			wantCode:   "llm_error",
		},
		{
			name:       "unexpected failure",
			body:       `{"weatherData":{"city":"Paris"}}`,
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "summary_failed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubSummaryService{
				summarizeFn: func(ctx context.Context, req summary.Request) (summary.Response, error) {
					return summary.Response{}, tt.err
				},
			}
			rec := performRequest(http.MethodPost, summaryapi.Path, tt.body, newRouterUnderTest(t, &stubSource{}, &stubSummaryClient{}, svc))
			require.Equal(t, tt.wantStatus, rec.Code)

			errBody := decodeErrorBody(t, rec.Body.Bytes())
			require.Equal(t, tt.wantCode, errBody["error"]["code"])
			require.NotEmpty(t, errBody["error"]["message"])
		})
	}
}

// The page composer calls the service's own summary endpoint over HTTP.
func TestRouter_DashboardThroughSummaryEndpoint(t *testing.T) {
	tests := []struct {
		name    string
		chat    *stubChatClient
		wantMsg string
	}{
		{
			name:    "summary available",
			chat:    &stubChatClient{content: "Expect 21.4 degrees and plenty of sun."},
			wantMsg: "Expect 21.4 degrees and plenty of sun.",
		},
		{
			name:    "llm failure falls back",
			chat:    &stubChatClient{err: errors.New("status 500")},
			wantMsg: dashboard.FallbackSummaryMessage,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var server *http.Server
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				server.Handler.ServeHTTP(w, r)
			}))
			defer upstream.Close()

			logger := newTestLogger()
			recorder := metrics.New(prometheus.NewRegistry())
			client, err := summaryapi.NewClient(upstream.URL, 5*time.Second, recorder)
			require.NoError(t, err)

			source := &stubSource{result: sampleResult(21.36, 11.04, 3.1)}
			dashboardSvc := dashboard.NewService(dashboard.Config{Timezone: "GMT"}, source, client, recorder, logger)
			summarySvc := summary.NewService(summary.Config{Prompt: "presenter", MaxSummaryLen: 200, Model: "gpt-4o-mini"}, tt.chat, recorder, logger)
			server = NewRouter(testConfig(), NewHandler(testConfig(), dashboardSvc, summarySvc, logger), prometheus.NewRegistry())

			rec := performRequest(http.MethodGet, "/api/dashboard/London/51.5072/-0.1276", "", server)
			require.Equal(t, http.StatusOK, rec.Code)

			var got dashboard.Dashboard
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Equal(t, tt.wantMsg, got.SummaryCallout.Message)
			require.Equal(t, "21.4°C", got.MaxTemperature.Metric)
			require.Equal(t, 1, tt.chat.calls)
		})
	}
}

// Self-calls to the summary endpoint must not drain the per-IP limiter that
// guards user traffic.
func TestRouter_SummaryEndpointNotRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 60, Burst: 3}

	var server *http.Server
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		server.Handler.ServeHTTP(w, r)
	}))
	defer upstream.Close()

	logger := newTestLogger()
	client, err := summaryapi.NewClient(upstream.URL, 5*time.Second, nil)
	require.NoError(t, err)

	chat := &stubChatClient{content: "Sunny"}
	source := &stubSource{result: sampleResult(21.36, 11.04, 3.1)}
	dashboardSvc := dashboard.NewService(dashboard.Config{Timezone: "GMT"}, source, client, nil, logger)
	summarySvc := summary.NewService(summary.Config{Prompt: "presenter", MaxSummaryLen: 200, Model: "gpt-4o-mini"}, chat, nil, logger)
	server = NewRouter(cfg, NewHandler(cfg, dashboardSvc, summarySvc, logger), prometheus.NewRegistry())

	for i := 1; i <= 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/dashboard/London/51.5072/-0.1276", nil)
		req.RemoteAddr = fmt.Sprintf("203.0.113.%d:4000", i)
		rec := httptest.NewRecorder()
		server.Handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, "user %d", i)

		var got dashboard.Dashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, "Sunny", got.SummaryCallout.Message, "user %d", i)
	}
	require.Equal(t, 5, chat.calls)
}

func TestRouter_HealthzAndMetrics(t *testing.T) {
	server := newRouterUnderTest(t, &stubSource{}, &stubSummaryClient{}, &stubSummaryService{})

	rec := performRequest(http.MethodGet, "/healthz", "", server)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = performRequest(http.MethodGet, "/metrics", "", server)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "weather_dashboard_llm_tokens_total")
}

func TestRouter_RequestIDPropagated(t *testing.T) {
	server := newRouterUnderTest(t, &stubSource{}, &stubSummaryClient{}, &stubSummaryService{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, "req-123", rec.Header().Get(requestIDHeader))
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	source := &stubSource{result: sampleResult(20, 10, 2)}
	logger := newTestLogger()
	dashboardSvc := dashboard.NewService(dashboard.Config{Timezone: "GMT"}, source, &stubSummaryClient{content: "ok"}, nil, logger)
	server := NewRouter(cfg, NewHandler(cfg, dashboardSvc, &stubSummaryService{}, logger), prometheus.NewRegistry())

	rec := performRequest(http.MethodGet, "/api/dashboard/London/51.5072/-0.1276", "", server)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performRequest(http.MethodGet, "/location/London/51.5072/-0.1276", "", server)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	errBody := decodeErrorBody(t, rec.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])
	require.Equal(t, 1, source.calls)
}

func TestCORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.CORSOrigins = []string{"https://weather.example"}
	logger := newTestLogger()
	server := NewRouter(cfg, NewHandler(cfg, &stubDashboardService{}, &stubSummaryService{}, logger), prometheus.NewRegistry())

	req := httptest.NewRequest(http.MethodOptions, summaryapi.Path, nil)
	req.Header.Set("Origin", "https://weather.example")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://weather.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func performRequest(method, path, body string, server *http.Server) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func newRouterUnderTest(t *testing.T, source forecast.Source, summaries dashboard.SummaryClient, summarySvc summary.Service) *http.Server {
	t.Helper()
	logger := newTestLogger()
	cfg := testConfig()
	reg := prometheus.NewRegistry()
	recorder := metrics.New(reg)
	dashboardSvc := dashboard.NewService(dashboard.Config{Timezone: "GMT"}, source, summaries, recorder, logger)
	return NewRouter(cfg, NewHandler(cfg, dashboardSvc, summarySvc, logger), reg)
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Cache: config.CacheConfig{TTL: 1440 * time.Second},
	}
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

func sampleResult(maxTemp, minTemp, uv float64) forecast.WeatherResult {
	hours := make([]string, 24)
	values := make([]float64, 24)
	for i := range hours {
		hours[i] = fmt.Sprintf("2024-06-01T%02d:00", i)
		values[i] = float64(i)
	}
	return forecast.WeatherResult{
		Timezone:             "Europe/London",
		TimezoneAbbreviation: "BST",
		CurrentWeather: forecast.CurrentWeather{
			IsDay:         1,
			Temperature:   17.25,
			Time:          "2024-06-01T12:00",
			WeatherCode:   1,
			WindDirection: 240,
			WindSpeed:     12.5,
		},
		Daily: forecast.Daily{
			Temperature2mMax: []float64{maxTemp},
			Temperature2mMin: []float64{minTemp},
			UVIndexMax:       []float64{uv},
			Sunrise:          []string{"2024-06-01T04:43"},
			Sunset:           []string{"2024-06-01T21:15"},
		},
		Hourly: forecast.Hourly{
			Time:                     hours,
			Temperature2m:            values,
			UVIndex:                  values,
			PrecipitationProbability: values,
			RelativeHumidity2m:       values,
		},
	}
}

func decodeErrorBody(t *testing.T, raw []byte) map[string]map[string]string {
	t.Helper()
	var body map[string]map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

type stubSource struct {
	result    forecast.WeatherResult
	err       error
	calls     int
	lastQuery forecast.Query
}

func (s *stubSource) Fetch(ctx context.Context, q forecast.Query) (forecast.WeatherResult, error) {
	s.calls++
	s.lastQuery = q
	if s.err != nil {
		return forecast.WeatherResult{}, s.err
	}
	return s.result, nil
}

type stubSummaryClient struct {
	content     string
	err         error
	calls       int
	lastPayload forecast.SummaryPayload
}

func (s *stubSummaryClient) FetchSummary(ctx context.Context, payload forecast.SummaryPayload) (string, error) {
	s.calls++
	s.lastPayload = payload
	if s.err != nil {
		return "", s.err
	}
	return s.content, nil
}

type stubSummaryService struct {
	summarizeFn func(ctx context.Context, req summary.Request) (summary.Response, error)
}

func (s *stubSummaryService) Summarize(ctx context.Context, req summary.Request) (summary.Response, error) {
	if s.summarizeFn != nil {
		return s.summarizeFn(ctx, req)
	}
	return summary.Response{}, nil
}

type stubDashboardService struct{}

func (s *stubDashboardService) Compose(ctx context.Context, loc forecast.Location) (dashboard.Dashboard, error) {
	return dashboard.Dashboard{Location: loc}, nil
}

type stubChatClient struct {
	content string
	err     error
	calls   int
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	if !strings.Contains(req.Messages[len(req.Messages)-1].Content, `"city":"London"`) {
		return chatgpt.ChatCompletionResponse{}, errors.New("payload missing city")
	}
	return chatgpt.ChatCompletionResponse{
		Choices: []struct {
			Message chatgpt.Message `json:"message"`
		}{
			{Message: chatgpt.Message{Role: "assistant", Content: s.content}},
		},
	}, nil
}
