package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/config"
	"github.com/vzahanych/activity-recommender/internal/model"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

// OpenWeatherService fetches current conditions from the OpenWeatherMap
// current-weather endpoint.
type OpenWeatherService struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  *zap.Logger
	tele    *telemetry.Telemetry
}

// openWeatherResponse holds the fields we consume. Pointers let us tell a
// missing field from a zero value.
type openWeatherResponse struct {
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

func NewOpenWeatherServiceWithConfig(cfg config.WeatherConfig, logger *zap.Logger, tele *telemetry.Telemetry) (*OpenWeatherService, error) {
	if cfg.APIKey == "" {
		return nil, &config.Error{Key: config.EnvOpenWeatherAPIKey, Message: "OpenWeatherMap API key not configured"}
	}

	return &OpenWeatherService{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client: &http.Client{
			Timeout:   time.Duration(cfg.Timeout) * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger,
		tele:   tele,
	}, nil
}

func (s *OpenWeatherService) Name() string {
	return "openweathermap"
}

func (s *OpenWeatherService) FetchWeather(ctx context.Context, city string) (model.WeatherRecord, error) {
	tracer := s.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "openweathermap.FetchWeather")
	defer span.End()

	span.SetAttributes(
		attribute.String("city", city),
		attribute.String("service", s.Name()),
	)

	u, err := url.Parse(s.baseURL)
	if err != nil {
		return model.WeatherRecord{}, s.fail(span, http.StatusInternalServerError, "Weather API error: invalid base URL", err)
	}

	q := u.Query()
	q.Set("q", city)
	q.Set("appid", s.apiKey)
	q.Set("units", "imperial")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return model.WeatherRecord{}, s.fail(span, http.StatusInternalServerError, "Weather API error: "+err.Error(), err)
	}

	s.logger.Debug("Fetching current weather", zap.String("city", city))

	resp, err := s.client.Do(req)
	if err != nil {
		return model.WeatherRecord{}, s.fail(span, http.StatusInternalServerError, "Weather API error: "+transportMessage(err), err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode == http.StatusNotFound {
		return model.WeatherRecord{}, s.fail(span, http.StatusNotFound, "City not found: "+city, nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("Weather API error: unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		return model.WeatherRecord{}, s.fail(span, http.StatusInternalServerError, msg, nil)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return model.WeatherRecord{}, s.fail(span, http.StatusInternalServerError, "Weather API error: invalid JSON response", err)
	}

	record, err := payload.toRecord()
	if err != nil {
		return model.WeatherRecord{}, s.fail(span, http.StatusInternalServerError, "Weather API error: "+err.Error(), err)
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.String("conditions", record.Conditions),
	)

	s.logger.Info("Current weather fetched",
		zap.String("city", city),
		zap.Float64("temperature", record.Temperature),
		zap.String("conditions", record.Conditions))

	return record, nil
}

func (s *OpenWeatherService) fail(span trace.Span, status int, msg string, cause error) error {
	span.SetAttributes(
		attribute.Bool("success", false),
		attribute.Int("error.status", status),
	)
	span.SetStatus(codes.Error, msg)

	s.logger.Warn("Weather provider request failed",
		zap.Int("status", status),
		zap.String("message", msg),
		zap.Error(cause))

	return &WeatherProviderError{Message: msg, StatusCode: status, Err: cause}
}

// toRecord builds a WeatherRecord only when every consumed field is present.
func (r openWeatherResponse) toRecord() (model.WeatherRecord, error) {
	switch {
	case r.Main == nil || r.Main.Temp == nil:
		return model.WeatherRecord{}, errors.New("malformed response: missing main.temp")
	case r.Main.Humidity == nil:
		return model.WeatherRecord{}, errors.New("malformed response: missing main.humidity")
	case len(r.Weather) == 0 || r.Weather[0].Main == "":
		return model.WeatherRecord{}, errors.New("malformed response: missing weather[0].main")
	case r.Wind == nil || r.Wind.Speed == nil:
		return model.WeatherRecord{}, errors.New("malformed response: missing wind.speed")
	}

	record := model.WeatherRecord{
		Temperature: math.Round(*r.Main.Temp),
		Conditions:  r.Weather[0].Main,
		Humidity:    *r.Main.Humidity,
		WindSpeed:   math.Round(*r.Wind.Speed),
	}

	if err := model.Validate(record); err != nil {
		return model.WeatherRecord{}, fmt.Errorf("malformed response: %w", err)
	}

	return record, nil
}

// transportMessage drops the request URL from client errors, it carries the API key.
func transportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "request timed out"
		}
		return urlErr.Err.Error()
	}
	return err.Error()
}
