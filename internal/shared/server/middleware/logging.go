package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"coreselect/internal/shared/metrics"
	"coreselect/internal/shared/telemetry"
)

// Keys handlers may set on the gin context to enrich the request log.
const (
	RecommendationIDKey     = "recommendationId"
	RecommendationSourceKey = "recommendationSource"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		metrics.ObserveResponse(c.FullPath(), c.Writer.Status())

		telemetry.Info("request.complete", map[string]any{
			"request_id":        RequestIDFromContext(c),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"route":             c.FullPath(),
			"status":            c.Writer.Status(),
			"duration_ms":       float64(latency.Microseconds()) / 1000.0,
			"recommendation_id": c.GetString(RecommendationIDKey),
			"source":            c.GetString(RecommendationSourceKey),
			"client_ip":         c.ClientIP(),
			"user_agent":        c.Request.UserAgent(),
		})
	}
}
