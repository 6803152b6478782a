package service

import (
	"context"

	"github.com/vzahanych/activity-recommender/internal/model"
)

type WeatherService interface {
	FetchWeather(ctx context.Context, city string) (model.WeatherRecord, error)
	Name() string
}

type ActivitySuggester interface {
	SuggestActivities(ctx context.Context, city string, weather model.WeatherRecord) ([]model.Activity, error)
	Name() string
}
