package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger attaches a request-scoped logger to the request context and logs each request once
// it completes. Handlers reach the logger with zerolog.Ctx.
func RequestLogger(base zerolog.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Response.Header().Set(RequestIDHeader, requestID)

		l := base.With().
			Str("request_id", requestID).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Logger()
		c.Request = c.Request.WithContext(l.WithContext(c.Request.Context()))

		start := time.Now()
		c.Next()

		l.Info().Dur("duration", time.Since(start)).Msg("request handled")
	}
}
