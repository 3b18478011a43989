package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewminer/internal/processor"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, handler *Handler, limiter *processor.RateLimiter) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	// Prometheus metrics
	if handler.telemetry != nil {
		router.GET("/metrics", gin.WrapH(handler.telemetry.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	if limiter != nil {
		v1.Use(rateLimitMiddleware(limiter))
	}
	{
		// Mining endpoints
		mine := v1.Group("/mine")
		{
			mine.POST("", handler.Mine)            // POST /api/v1/mine
			mine.POST("/batch", handler.MineBatch) // POST /api/v1/mine/batch
		}

		// Insights endpoints
		insights := v1.Group("/insights")
		{
			insights.GET("/latest", handler.GetLatestInsights) // GET /api/v1/insights/latest
			insights.GET("/:run_id", handler.GetInsightsByRun) // GET /api/v1/insights/:run_id
		}

		// Run history endpoints
		v1.GET("/runs", handler.ListRuns)                   // GET /api/v1/runs
		v1.GET("/reviews/latest", handler.GetLatestReviews) // GET /api/v1/reviews/latest

		// Statistics endpoints
		v1.GET("/stats/summary", handler.GetStatsSummary) // GET /api/v1/stats/summary
	}
}

// rateLimitMiddleware rejects requests over the configured rate with 429.
func rateLimitMiddleware(limiter *processor.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
				Error: "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
