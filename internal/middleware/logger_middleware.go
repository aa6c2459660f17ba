package middleware

import (
	"time"

	"github.com/cswni/stripe-server/pkg/logger"
	"github.com/gin-gonic/gin"
)

// RequestLogger is a Gin middleware logging one line per handled request.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		path := c.Request.URL.Path
		if rawQuery := c.Request.URL.RawQuery; rawQuery != "" {
			path = path + "?" + rawQuery
		}

		c.Next()

		latency := time.Since(start)

		log.Infow("Request handled",
			"status_code", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"latency_ms", latency.Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(ContextRequestIDKey),
		)
	}
}
