package summaryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/yanqian/weather-dashboard/internal/domain/forecast"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

// Path is the summary endpoint route, relative to the base URL.
const Path = "/api/getWeatherSummary"

const defaultTimeout = 30 * time.Second

// ErrUnavailable is wrapped by every error returned from FetchSummary.
var ErrUnavailable = errors.New("summary service unavailable")

// Client posts normalized weather payloads to the summary endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	recorder   *metrics.Recorder
}

// NewClient builds a summary client for baseURL. A zero timeout uses the default.
func NewClient(baseURL string, timeout time.Duration, recorder *metrics.Recorder) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("summary base url cannot be empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint:   baseURL + Path,
		httpClient: &http.Client{Timeout: timeout},
		recorder:   recorder,
	}, nil
}

type requestBody struct {
	WeatherData forecast.SummaryPayload `json:"weatherData"`
}

type responseBody struct {
	Content string `json:"content"`
}

// FetchSummary makes a single attempt and returns the content verbatim on a
// 2xx response.
func (c *Client) FetchSummary(ctx context.Context, payload forecast.SummaryPayload) (content string, err error) {
	started := time.Now()
	defer func() { c.recorder.ObserveUpstream(metrics.UpstreamSummary, started, err) }()

	body, err := json.Marshal(requestBody{WeatherData: payload})
	if err != nil {
		return "", fmt.Errorf("%w: encode request: %v", ErrUnavailable, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("%w: status=%d", ErrUnavailable, resp.StatusCode)
	}

	var out responseBody
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return out.Content, nil
}
