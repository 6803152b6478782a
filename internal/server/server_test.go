package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/vzahanych/activity-recommender/internal/config"
	"github.com/vzahanych/activity-recommender/internal/model"
	"github.com/vzahanych/activity-recommender/internal/recommender"
	"github.com/vzahanych/activity-recommender/internal/service"
	"github.com/vzahanych/activity-recommender/pkg/telemetry"
)

const seattleCompletion = `{"activities":[
	{"name":"Seattle Art Museum","description":"Spend the rainy afternoon in the galleries","category":"Cultural"},
	{"name":"Pike Place Chowder","description":"Warm up with a bowl of clam chowder","category":"Food & Drink"}
]}`

func newUpstreams(t *testing.T) (weather, llm *httptest.Server) {
	t.Helper()

	weather = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Query().Get("q") != "Seattle" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"main": {"temp": 55.2, "humidity": 80},
			"weather": [{"main": "Rain", "description": "moderate rain"}],
			"wind": {"speed": 9.8}
		}`))
	}))
	t.Cleanup(weather.Close)

	llm = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-e2e",
			"object": "chat.completion",
			"model":  "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": seattleCompletion},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(llm.Close)

	return weather, llm
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	weatherSrv, llmSrv := newUpstreams(t)

	cfg := config.NewDefaultConfig()
	cfg.Weather.BaseURL = weatherSrv.URL
	cfg.Weather.APIKey = "weather-key"
	cfg.LLM.BaseURL = llmSrv.URL
	cfg.LLM.APIKey = "llm-key"
	cfg.LLM.Model = "test-model"

	logger := zaptest.NewLogger(t)
	tele := &telemetry.Telemetry{}

	weather, err := service.NewOpenWeatherServiceWithConfig(cfg.Weather, logger, tele)
	require.NoError(t, err)
	suggester, err := service.NewOpenAISuggesterWithConfig(cfg.LLM, logger, tele)
	require.NoError(t, err)

	return NewServer(cfg, recommender.NewRecommender(weather, suggester, logger, tele), logger, tele)
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestServer_Activities(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodPost, "/api/v1/activities", `{"city":"Seattle"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp model.ActivityResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Seattle", resp.City)
	assert.Equal(t, model.WeatherRecord{Temperature: 55, Conditions: "Rain", Humidity: 80, WindSpeed: 10}, resp.Weather)
	require.Len(t, resp.Activities, 2)
	assert.Equal(t, "Seattle Art Museum", resp.Activities[0].Name)
	assert.Equal(t, "Food & Drink", resp.Activities[1].Category)
}

func TestServer_Activities_CityNotFound(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodPost, "/api/v1/activities", `{"city":"Atlantis"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"City not found: Atlantis"}`, w.Body.String())
}

func TestServer_Activities_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodPost, "/api/v1/activities", `{"town":"Seattle"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), `"error_code":"INVALID_REQUEST"`)
}

func TestServer_InfoAndHealth(t *testing.T) {
	s := newTestServer(t)

	w := do(s, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())

	w = do(s, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "operational", info["status"])
	assert.Equal(t, "0.1.0", info["version"])
	assert.NotEmpty(t, info["service"])
}

func TestServer_MetricsAfterRequests(t *testing.T) {
	s := newTestServer(t)

	do(s, http.MethodPost, "/api/v1/activities", `{"city":"Seattle"}`)
	do(s, http.MethodPost, "/api/v1/activities", `{"city":"Atlantis"}`)

	w := do(s, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `http_requests_total{route_status="POST /api/v1/activities_200"} 1`)
	assert.Contains(t, body, `http_requests_total{route_status="POST /api/v1/activities_404"} 1`)
	assert.Contains(t, body, `provider_calls_total{provider="openweathermap"} 2`)
	assert.Contains(t, body, `provider_errors_total{provider="openweathermap"} 1`)
	assert.Contains(t, body, `provider_calls_total{provider="openai"} 1`)
	assert.Contains(t, body, "recommendations_total 1")
	assert.Contains(t, body, "activities_returned_total 2")
}
