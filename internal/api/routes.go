package api

import (
	"github.com/gin-gonic/gin"

	"github.com/complaintdesk/classifier/internal/auth"
	"github.com/complaintdesk/classifier/internal/telemetry"
)

// SetupRoutes configures all API routes. Review and admin endpoints sit
// behind JWT auth; submission, read, and health endpoints are public.
func SetupRoutes(router *gin.Engine, handler *Handler, jwtSecret string, tp *telemetry.Provider) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if tp != nil {
		router.GET("/metrics", gin.WrapH(tp.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Submission and classification endpoints
		v1.POST("/complaints", handler.SubmitComplaint) // POST /api/v1/complaints
		v1.POST("/classify", handler.Classify)          // POST /api/v1/classify

		// Read endpoints
		v1.GET("/complaints", handler.ListComplaints)    // GET /api/v1/complaints
		v1.GET("/complaints/:id", handler.GetComplaint)  // GET /api/v1/complaints/:id

		// Statistics endpoints
		stats := v1.Group("/stats")
		{
			stats.GET("", handler.GetStats)                        // GET /api/v1/stats
			stats.GET("/departments", handler.GetDepartmentStats)  // GET /api/v1/stats/departments
			stats.GET("/sentiment", handler.GetSentimentStats)     // GET /api/v1/stats/sentiment
			stats.GET("/daily", handler.GetDailyStats)             // GET /api/v1/stats/daily
		}

		// Metrics endpoints
		metrics := v1.Group("/metrics")
		{
			metrics.GET("/ml-health", handler.GetModelHealth) // GET /api/v1/metrics/ml-health
		}

		// Review and admin endpoints - protected with JWT
		protected := v1.Group("")
		protected.Use(auth.Middleware(jwtSecret))
		{
			protected.PUT("/complaints/:id/status", handler.UpdateReviewStatus) // PUT /api/v1/complaints/:id/status
			protected.DELETE("/complaints/:id", handler.DeleteComplaint)        // DELETE /api/v1/complaints/:id
		}
	}
}
