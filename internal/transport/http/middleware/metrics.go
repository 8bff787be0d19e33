package middleware

import (
	"time"

	"github.com/kstarostin/campfire-store-api/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request count, errors and latency. A nil AppMetrics
// disables recording entirely.
func Metrics(m *metrics.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		m.RecordRequest(c.Request.Context(), c.Request.Method, c.FullPath(), c.Writer.Status(), start)
	}
}
