package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rowjay/link-batch-shortener/internal/metrics"
)

// Metrics counts requests by route template so /r/:shortcode stays a single
// series.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveRequest(c.Request.Method, path, c.Writer.Status())
	}
}
