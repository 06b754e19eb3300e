package demo

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const requestIDHeader = "X-Request-ID"

// requestLogger tags each request with an id, reusing the caller's when one
// is sent, and logs its outcome.
func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()
		requestID := req.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Response().Header().Set(requestIDHeader, requestID)

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		status := c.Response().Status
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		s.logger.LogAttrs(req.Context(), level, "Request completed",
			slog.String("request_id", requestID),
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.String("client_ip", c.RealIP()),
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		)
		return nil
	}
}
