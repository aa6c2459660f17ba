package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestIDKey is the Gin context key under which the request id is
// stored.
const ContextRequestIDKey = "request_id"

// requestIDHeader is echoed on every response.
const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a uuid, reusing the inbound header when
// the caller already set one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		c.Set(ContextRequestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)

		c.Next()
	}
}
