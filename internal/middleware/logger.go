package middleware

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"focototal-be/internal/logging"
	"focototal-be/internal/response"
)

const RequestIDHeader = "X-Request-ID"

var errPanic = errors.New("handler panicked")

// RequestLogger logs one line per request, plus any errors handlers attached
// with c.Error (those are the causes hidden behind 500 responses).
func RequestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(logging.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()

		status := c.Writer.Status()
		args := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", status,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		}
		if userID := CurrentUserID(c); userID != "" {
			args = append(args, "user_id", userID)
		}

		ctx := c.Request.Context()
		for _, e := range c.Errors {
			logger.Error(ctx, "request error", append(args, "error", e.Err)...)
		}

		switch {
		case status >= 500:
			logger.Error(ctx, "request completed", args...)
		case status >= 400:
			logger.Warn(ctx, "request completed", args...)
		default:
			logger.Info(ctx, "request completed", args...)
		}
	}
}

// Recovery turns a panic into the standard 500 envelope.
func Recovery(logger logging.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered any) {
		logger.Error(c.Request.Context(), "panic recovered", "panic", recovered, "path", c.Request.URL.Path)
		response.Error(c, errPanic)
	})
}
