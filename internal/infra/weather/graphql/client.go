package graphql

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

const defaultTimeout = 10 * time.Second

// Client fetches weather documents from a GraphQL endpoint exposing myQuery.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	recorder   *metrics.Recorder
}

// NewClient builds a GraphQL weather client. A zero timeout uses the default.
func NewClient(endpoint, apiKey string, timeout time.Duration, recorder *metrics.Recorder) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, errors.New("weather graphql endpoint cannot be empty")
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		endpoint: endpoint,
		apiKey:   strings.TrimSpace(apiKey),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		recorder: recorder,
	}, nil
}

// Fetch executes q and returns the decoded myQuery document.
func (c *Client) Fetch(ctx context.Context, q forecast.Query) (result forecast.WeatherResult, err error) {
	started := time.Now()
	defer func() { c.recorder.ObserveUpstream(metrics.UpstreamWeather, started, err) }()

	payload, err := json.Marshal(q)
	if err != nil {
		return forecast.WeatherResult{}, fmt.Errorf("encode weather query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return forecast.WeatherResult{}, fmt.Errorf("build weather request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "apikey "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return forecast.WeatherResult{}, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return forecast.WeatherResult{}, fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(body))
	}

	var raw response
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return forecast.WeatherResult{}, fmt.Errorf("decode weather response: %w", err)
	}
	if len(raw.Errors) > 0 {
		return forecast.WeatherResult{}, fmt.Errorf("weather graphql error: %s", raw.Errors.join())
	}
	if raw.Data.MyQuery == nil {
		return forecast.WeatherResult{}, errors.New("weather graphql response missing myQuery")
	}
	return *raw.Data.MyQuery, nil
}

type response struct {
	Data struct {
		MyQuery *forecast.WeatherResult `json:"myQuery"`
	} `json:"data"`
	Errors gqlErrors `json:"errors"`
}

type gqlErrors []struct {
	Message string `json:"message"`
}

func (e gqlErrors) join() string {
	msgs := make([]string, 0, len(e))
	for _, item := range e {
		msgs = append(msgs, item.Message)
	}
	return strings.Join(msgs, "; ")
}
