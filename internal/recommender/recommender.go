package recommender

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/model"
	"github.com/vzahanych/activity-recommender/internal/service"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

// MetricsRecorder interface for recording metrics
type MetricsRecorder interface {
	RecordProviderCall(ctx context.Context, provider string, success bool, duration time.Duration)
	RecordRecommendation(ctx context.Context, activities int)
}

// Recommender combines current weather with model-generated activity
// suggestions. It holds no per-request state and is safe for concurrent use.
type Recommender struct {
	weather   service.WeatherService
	suggester service.ActivitySuggester
	logger    *zap.Logger
	tele      *telemetry.Telemetry
	metrics   MetricsRecorder
}

func NewRecommender(weather service.WeatherService, suggester service.ActivitySuggester, logger *zap.Logger, tele *telemetry.Telemetry) *Recommender {
	return &Recommender{
		weather:   weather,
		suggester: suggester,
		logger:    logger,
		tele:      tele,
	}
}

// SetMetricsRecorder sets the metrics recorder for the recommender
func (r *Recommender) SetMetricsRecorder(metrics MetricsRecorder) {
	r.metrics = metrics
}

// Recommend fetches the weather for city and then asks for suggestions that
// fit it. The second call depends on the first and never starts before it
// succeeds. Errors are returned as produced by the clients.
func (r *Recommender) Recommend(ctx context.Context, city string) (*model.ActivityResponse, error) {
	tracer := r.tele.GetTracer()
	ctx, span := tracer.Start(ctx, "recommender.Recommend")
	defer span.End()

	span.SetAttributes(attribute.String("city", city))

	reqLogger := r.logger
	if reqID, ok := ctx.Value(RequestIDKey).(string); ok && reqID != "" {
		reqLogger = r.logger.With(zap.String("request_id", reqID))
	}

	reqLogger.Debug("Recommendation requested", zap.String("city", city))

	start := time.Now()
	weather, err := r.weather.FetchWeather(ctx, city)
	r.recordCall(ctx, r.weather.Name(), err, time.Since(start))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		reqLogger.Warn("Failed to fetch weather", zap.String("city", city), zap.Error(err))
		return nil, err
	}

	start = time.Now()
	activities, err := r.suggester.SuggestActivities(ctx, city, weather)
	r.recordCall(ctx, r.suggester.Name(), err, time.Since(start))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		reqLogger.Warn("Failed to generate suggestions", zap.String("city", city), zap.Error(err))
		return nil, err
	}

	if activities == nil {
		activities = []model.Activity{}
	}

	if r.metrics != nil {
		r.metrics.RecordRecommendation(ctx, len(activities))
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("activities_count", len(activities)),
	)

	reqLogger.Info("Recommendation completed",
		zap.String("city", city),
		zap.String("conditions", weather.Conditions),
		zap.Int("activities_count", len(activities)))

	return &model.ActivityResponse{
		City:       city,
		Weather:    weather,
		Activities: activities,
	}, nil
}

func (r *Recommender) recordCall(ctx context.Context, provider string, err error, d time.Duration) {
	if r.metrics != nil {
		r.metrics.RecordProviderCall(ctx, provider, err == nil, d)
	}
}

type contextKey string

// RequestIDKey is the context key under which the HTTP layer stores the request ID.
const RequestIDKey contextKey = "request_id"

// WithRequestID returns a copy of ctx carrying id for correlated logging.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
