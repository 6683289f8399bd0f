package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/yanqian/weather-dashboard/internal/infra/llm/chatgpt"
	apperrors "github.com/yanqian/weather-dashboard/pkg/errors"
	"github.com/yanqian/weather-dashboard/pkg/metrics"
)

// Service generates natural language weather summaries.
type Service interface {
	Summarize(ctx context.Context, req Request) (Response, error)
}

type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

type service struct {
	cfg      Config
	client   ChatClient
	recorder *metrics.Recorder
	logger   *slog.Logger
}

// NewService is a wire provider for the summary domain.
func NewService(cfg Config, client ChatClient, recorder *metrics.Recorder, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		client:   client,
		recorder: recorder,
		logger:   logger.With("component", "summary.service"),
	}
}

func (s *service) Summarize(ctx context.Context, req Request) (Response, error) {
	if req.WeatherData == nil {
		return Response{}, apperrors.Wrap("invalid_input", "weatherData is required", nil)
	}
	data, err := json.Marshal(req.WeatherData)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "weatherData is not encodable", err)
	}

	started := time.Now()
	resp, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    s.buildMessages(req.WeatherData.City, string(data)),
		Temperature: s.cfg.Temperature,
		N:           1,
	})
	s.recorder.ObserveUpstream(metrics.UpstreamLLM, started, err)
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "chatgpt request failed", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, apperrors.Wrap("llm_error", "chatgpt returned no choices", nil)
	}

	content := clean(resp.Choices[0].Message.Content)
	if content == "" {
		return Response{}, apperrors.Wrap("llm_error", "chatgpt returned an empty summary", nil)
	}
	s.logger.Debug("weather summary generated", "city", req.WeatherData.City, "length", len(content))

	usage := metrics.TokenUsage{
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
		TotalTokens:      resp.Usage.TotalTokens,
	}
	s.recorder.AddTokens(usage)

	out := Response{Content: truncate(content, s.cfg.MaxSummaryLen)}
	if !usage.IsZero() {
		out.TokenUsage = &usage
	}
	return out, nil
}

func (s *service) buildMessages(city, data string) []chatgpt.Message {
	prompt := strings.TrimSpace(s.cfg.Prompt)
	if prompt == "" {
		prompt = "You are a friendly weather presenter. Summarize today's weather."
	}
	user := fmt.Sprintf("Give me a summary of today's weather in %s. Use only the following data: %s", city, data)
	if s.cfg.MaxSummaryLen > 0 {
		user += fmt.Sprintf("\n\nKeep the summary under %d characters.", s.cfg.MaxSummaryLen)
	}
	return []chatgpt.Message{
		{Role: "system", Content: prompt},
		{Role: "user", Content: user},
	}
}

func clean(text string) string {
	text = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, text)
	return strings.TrimSpace(text)
}

func truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	if limit <= 3 {
		return text[:runeBoundary(text, limit)]
	}
	return strings.TrimSpace(text[:runeBoundary(text, limit-3)]) + "..."
}

// runeBoundary steps cut back so text[:cut] never ends mid-rune.
func runeBoundary(text string, cut int) int {
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return cut
}
