package service

import (
	"context"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/config"
	"github.com/vzahanych/activity-recommender/internal/model"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

// OpenAISuggester asks an OpenAI-compatible chat-completion API for activity
// suggestions that fit the current weather.
type OpenAISuggester struct {
	client      *openai.Client
	model       string
	temperature float32
	logger      *zap.Logger
	tele        *telemetry.Telemetry
}

func NewOpenAISuggesterWithConfig(cfg config.LLMConfig, logger *zap.Logger, tele *telemetry.Telemetry) (*OpenAISuggester, error) {
	if cfg.APIKey == "" {
		return nil, &config.Error{Key: config.EnvOpenAIAPIKey, Message: "OpenAI API key not configured"}
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{
		Timeout:   time.Duration(cfg.Timeout) * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	return &OpenAISuggester{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
		tele:        tele,
	}, nil
}

func (s *OpenAISuggester) Name() string {
	return "openai"
}

func (s *OpenAISuggester) SuggestActivities(ctx context.Context, city string, weather model.WeatherRecord) ([]model.Activity, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "openai.SuggestActivities")
	defer span.End()

	span.SetAttributes(
		attribute.String("city", city),
		attribute.String("llm.model", s.model),
		attribute.Float64("llm.temperature", float64(s.temperature)),
	)

	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildSystemPrompt()},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(city, weather)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}

	s.logger.Debug("Requesting activity suggestions",
		zap.String("city", city),
		zap.String("model", s.model))

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, s.fail(span, "Error generating activities: "+err.Error(), err)
	}

	if len(resp.Choices) == 0 {
		return nil, s.fail(span, "Error generating activities: no choices in completion", nil)
	}

	activities, err := parseActivities(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, s.fail(span, "Error generating activities: "+err.Error(), err)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("activities_count", len(activities)),
		attribute.Int("llm.total_tokens", resp.Usage.TotalTokens),
	)

	s.logger.Info("Activity suggestions generated",
		zap.String("city", city),
		zap.Int("activities_count", len(activities)),
		zap.Int("total_tokens", resp.Usage.TotalTokens))

	return activities, nil
}

func (s *OpenAISuggester) fail(span trace.Span, msg string, cause error) error {
	span.SetAttributes(attribute.Bool("success", false))
	span.SetStatus(codes.Error, msg)

	s.logger.Warn("Activity suggestion failed",
		zap.String("message", msg),
		zap.Error(cause))

	return &SuggestionError{Message: msg, Err: cause}
}
