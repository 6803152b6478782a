package utils

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/vzahanych/activity-recommender/internal/recommender"
)

const (
	SpanContextKey = "span_context"
	RequestIDKey   = "request_id"
)

// GetContextFromGinContext extracts the context with span from Gin context
func GetContextFromGinContext(c *gin.Context) context.Context {
	if spanCtx, exists := c.Get(SpanContextKey); exists {
		if ctx, ok := spanCtx.(context.Context); ok {
			return ctx
		}
	}
	return c.Request.Context()
}

// GetRequestIDFromGinContext extracts request ID from Gin context
func GetRequestIDFromGinContext(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}

// RequestContext returns the traced request context, tagged with the request
// ID so downstream logs can be correlated.
func RequestContext(c *gin.Context) context.Context {
	ctx := GetContextFromGinContext(c)
	if id := GetRequestIDFromGinContext(c); id != "" {
		ctx = recommender.WithRequestID(ctx, id)
	}
	return ctx
}
