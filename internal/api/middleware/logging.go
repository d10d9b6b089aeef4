package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Tran-Ngoc-Bao/Decision-Support-System/internal/pkg/logger"
)

// LoggingConfig holds configuration for logging middleware
type LoggingConfig struct {
	AccessLogger  *zerolog.Logger // Optional separate access logger
	SkipPaths     []string        // Paths to skip logging (e.g., /health)
	SlowThreshold time.Duration   // Requests slower than this are reported, default 1s
}

// Logging middleware writes one access log line per request.
// It must run after RequestID.
func Logging(cfg LoggingConfig) gin.HandlerFunc {
	access := log.Logger
	if cfg.AccessLogger != nil {
		access = *cfg.AccessLogger
	}

	skip := make(map[string]bool, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = true
	}

	slow := cfg.SlowThreshold
	if slow <= 0 {
		slow = time.Second
	}

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path = path + "?" + raw
		}

		reqLog := access.With().
			Str("request_id", GetRequestID(c)).
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Logger()

		logger.Ctx(c.Request.Context()).Debug().
			Str("method", c.Request.Method).
			Str("path", path).
			Str("user_agent", c.Request.UserAgent()).
			Msg("→ Request started")

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		var event *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			event = reqLog.Error()
		case status >= http.StatusBadRequest:
			event = reqLog.Warn()
		default:
			event = reqLog.Info()
		}

		event.
			Str("route", c.FullPath()).
			Int("status", status).
			Int64("duration_ms", duration.Milliseconds()).
			Int("response_size", c.Writer.Size()).
			Str("user_agent", c.Request.UserAgent())
		if len(c.Errors) > 0 {
			event.Str("error", c.Errors.String())
		}
		event.Msg("← Request completed")

		if duration > slow {
			reqLog.Warn().
				Str("route", c.FullPath()).
				Int64("duration_ms", duration.Milliseconds()).
				Msg("⚠️  Slow request detected")
		}
	}
}

// Recovery turns a panic into a 500 error envelope and logs its stack
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				requestID := GetRequestID(c)

				logger.Ctx(c.Request.Context()).Error().
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Interface("panic", err).
					Bytes("stack", debug.Stack()).
					Msg("🚨 Panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": gin.H{
						"code":       "INTERNAL_SERVER_ERROR",
						"message":    "Internal server error",
						"request_id": requestID,
						"timestamp":  time.Now(),
					},
				})
			}
		}()

		c.Next()
	}
}
