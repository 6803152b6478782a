package handlers

import (
	"context"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vzahanych/activity-recommender/internal/server/middlewares"
)

// HTTPMetricsProvider exposes request metrics collected by the HTTP middleware.
type HTTPMetricsProvider interface {
	Snapshot() middlewares.HTTPSnapshot
}

// AppMetrics holds application-level metrics (provider calls, recommendations)
type AppMetrics struct {
	mutex              sync.RWMutex
	providerCalls      map[string]int64
	providerErrors     map[string]int64
	providerDurations  map[string]float64
	recommendations    int64
	activitiesReturned int64
}

type MetricsHandler struct {
	logger     *zap.Logger
	http       HTTPMetricsProvider
	appMetrics *AppMetrics
}

func NewMetricsHandler(logger *zap.Logger, httpMetrics HTTPMetricsProvider) *MetricsHandler {
	return &MetricsHandler{
		logger: logger,
		http:   httpMetrics,
		appMetrics: &AppMetrics{
			providerCalls:     make(map[string]int64),
			providerErrors:    make(map[string]int64),
			providerDurations: make(map[string]float64),
		},
	}
}

// RecordProviderCall records one upstream call made while building a recommendation.
func (h *MetricsHandler) RecordProviderCall(_ context.Context, provider string, success bool, duration time.Duration) {
	h.appMetrics.mutex.Lock()
	defer h.appMetrics.mutex.Unlock()

	h.appMetrics.providerCalls[provider]++
	h.appMetrics.providerDurations[provider] += duration.Seconds()
	if !success {
		h.appMetrics.providerErrors[provider]++
	}
}

// RecordRecommendation records a successfully served recommendation.
func (h *MetricsHandler) RecordRecommendation(_ context.Context, activities int) {
	h.appMetrics.mutex.Lock()
	defer h.appMetrics.mutex.Unlock()

	h.appMetrics.recommendations++
	h.appMetrics.activitiesReturned += int64(activities)
}

// ServeMetrics exposes metrics in the Prometheus text format.
func (h *MetricsHandler) ServeMetrics(c *gin.Context) {
	var b strings.Builder

	if h.http != nil {
		snap := h.http.Snapshot()

		writeHeader(&b, "http_requests_total", "Total number of HTTP requests", "counter")
		for _, key := range sortedKeys(snap.RequestsTotal) {
			writeLabeled(&b, "http_requests_total", "route_status", key, strconv.FormatInt(snap.RequestsTotal[key], 10))
		}

		writeHeader(&b, "http_request_duration_seconds_avg", "Average duration of HTTP requests", "gauge")
		b.WriteString("http_request_duration_seconds_avg " + strconv.FormatFloat(snap.AvgDurationSeconds, 'f', 6, 64) + "\n")

		writeHeader(&b, "http_active_requests", "Number of active HTTP requests", "gauge")
		b.WriteString("http_active_requests " + strconv.FormatInt(snap.ActiveRequests, 10) + "\n")
	}

	h.appMetrics.mutex.RLock()
	defer h.appMetrics.mutex.RUnlock()

	writeHeader(&b, "provider_calls_total", "Total upstream provider calls", "counter")
	for _, p := range sortedKeys(h.appMetrics.providerCalls) {
		writeLabeled(&b, "provider_calls_total", "provider", p, strconv.FormatInt(h.appMetrics.providerCalls[p], 10))
	}

	writeHeader(&b, "provider_errors_total", "Total upstream provider errors", "counter")
	for _, p := range sortedKeys(h.appMetrics.providerErrors) {
		writeLabeled(&b, "provider_errors_total", "provider", p, strconv.FormatInt(h.appMetrics.providerErrors[p], 10))
	}

	writeHeader(&b, "provider_call_duration_seconds_sum", "Cumulative time spent in upstream provider calls", "counter")
	for _, p := range sortedKeys(h.appMetrics.providerDurations) {
		writeLabeled(&b, "provider_call_duration_seconds_sum", "provider", p, strconv.FormatFloat(h.appMetrics.providerDurations[p], 'f', 6, 64))
	}

	writeHeader(&b, "recommendations_total", "Total recommendations served", "counter")
	b.WriteString("recommendations_total " + strconv.FormatInt(h.appMetrics.recommendations, 10) + "\n")

	writeHeader(&b, "activities_returned_total", "Total activities returned to clients", "counter")
	b.WriteString("activities_returned_total " + strconv.FormatInt(h.appMetrics.activitiesReturned, 10) + "\n")

	c.Header("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
	c.String(http.StatusOK, b.String())
}

func writeHeader(b *strings.Builder, name, help, kind string) {
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("# HELP " + name + " " + help + "\n")
	b.WriteString("# TYPE " + name + " " + kind + "\n")
}

func writeLabeled(b *strings.Builder, name, label, value, sample string) {
	b.WriteString(name + "{" + label + "=\"" + value + "\"} " + sample + "\n")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
