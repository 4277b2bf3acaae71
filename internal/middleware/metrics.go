package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/shiftsync/timetable-api/internal/service"
)

// Metrics returns middleware that captures per-request HTTP metrics
// using the provided service. A nil service disables it entirely.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, path, status, duration)
	}
}
