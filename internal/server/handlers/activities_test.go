package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vzahanych/activity-recommender/internal/model"
	"github.com/vzahanych/activity-recommender/internal/service"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

type fakeRecommender struct {
	resp    *model.ActivityResponse
	err     error
	gotCity string
	calls   int
}

func (f *fakeRecommender) Recommend(_ context.Context, city string) (*model.ActivityResponse, error) {
	f.calls++
	f.gotCity = city
	return f.resp, f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func performActivities(t *testing.T, rec Recommender, body string) *httptest.ResponseRecorder {
	t.Helper()

	engine := gin.New()
	engine.POST("/api/v1/activities", NewActivitiesHandler(rec, zaptest.NewLogger(t), &telemetry.Telemetry{}).GetActivities)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/activities", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetActivities_Success(t *testing.T) {
	rec := &fakeRecommender{resp: &model.ActivityResponse{
		City:    "Seattle",
		Weather: model.WeatherRecord{Temperature: 55, Conditions: "Rain", Humidity: 80, WindSpeed: 10},
		Activities: []model.Activity{
			{Name: "Seattle Art Museum", Description: "Galleries", Category: "Cultural"},
		},
	}}

	w := performActivities(t, rec, `{"city":"Seattle"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Seattle", rec.gotCity)

	var resp model.ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, *rec.resp, resp)
}

func TestGetActivities_InvalidRequest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantDetail string
	}{
		{name: "missing city", body: `{}`, wantDetail: "city is required"},
		{name: "blank city", body: `{"city":"   "}`, wantDetail: "city must not be blank"},
		{name: "wrong type", body: `{"city":42}`, wantDetail: "Invalid request body"},
		{name: "malformed json", body: `{"city":`, wantDetail: "Invalid request body"},
		{name: "empty body", body: ``, wantDetail: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecommender{}
			w := performActivities(t, rec, tt.body)

			require.Equal(t, http.StatusUnprocessableEntity, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, "INVALID_REQUEST", resp.ErrorCode)
			assert.Contains(t, resp.Detail, tt.wantDetail)
			assert.Equal(t, 0, rec.calls)
		})
	}
}

func TestGetActivities_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "city not found",
			err:        &service.WeatherProviderError{Message: "City not found: Atlantis", StatusCode: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantDetail: "City not found: Atlantis",
		},
		{
			name:       "weather upstream failure",
			err:        &service.WeatherProviderError{Message: "Weather API error: unexpected status 401 Unauthorized", StatusCode: http.StatusInternalServerError},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Weather API error: unexpected status 401 Unauthorized",
		},
		{
			name:       "weather error without status",
			err:        &service.WeatherProviderError{Message: "Weather API error: timeout"},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Weather API error: timeout",
		},
		{
			name:       "suggestion failure",
			err:        &service.SuggestionError{Message: "Error generating activities: not valid JSON"},
			wantStatus: http.StatusInternalServerError,
			wantDetail: "Error generating activity suggestions: Error generating activities: not valid JSON",
		},
		{
			name:       "unexpected",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "An unexpected error occurred: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performActivities(t, &fakeRecommender{err: tt.err}, `{"city":"Atlantis"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantDetail, resp.Detail)
			assert.Empty(t, resp.ErrorCode)
		})
	}
}

func TestGetActivities_WrappedWeatherError(t *testing.T) {
	err := errors.Join(errors.New("context"), &service.WeatherProviderError{Message: "City not found: Nowhere", StatusCode: http.StatusNotFound})

	w := performActivities(t, &fakeRecommender{err: err}, `{"city":"Nowhere"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "City not found: Nowhere", decodeError(t, w).Detail)
}
