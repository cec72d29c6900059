package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"budgetplanner/internal/logger"
	"budgetplanner/internal/uuid"
)

const requestIDKey = "requestID"

// RequestLogging logs each request with its request ID, method, path, status,
// latency and client IP. A valid incoming X-Request-ID is reused so client and
// server log lines can be correlated.
func RequestLogging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(uuid.HeaderRequestID)
		if !uuid.IsValid(requestID) {
			requestID = uuid.New()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(uuid.HeaderRequestID, requestID)

		c.Next()

		logger.Named("http").Infow("request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
	}
}
