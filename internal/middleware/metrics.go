// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rokasce/medium-clone-sub000/internal/metrics"
)

// Probe endpoints and the scrape endpoint itself are excluded so
// Kubernetes probes and Prometheus polling cannot dominate the series.
var unmeteredPaths = map[string]bool{
	"/metrics": true,
	"/live":    true,
	"/ready":   true,
}

// Metrics returns a Gin middleware that records Prometheus metrics for HTTP requests.
// It tracks:
// - Total requests by method, path, and status code
// - Request duration histogram
// - Requests currently in flight
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		if unmeteredPaths[c.FullPath()] {
			c.Next()
			return
		}

		start := time.Now()

		// Track in-flight requests
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		// Process request
		c.Next()

		// Record metrics after request completes
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())
		path := c.FullPath()

		// Use the actual path for unmatched routes
		if path == "" {
			path = "unmatched"
		}

		metrics.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
	}
}
