package logger

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MiddlewareConfig controls request logging behaviour.
type MiddlewareConfig struct {
	Debug bool
	// ErrorClassifier maps handler errors to a short label recorded on the
	// log line, keeping raw error strings out of access logs.
	ErrorClassifier func(err error) string
}

// GinMiddleware logs a structured line per request.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("duration", time.Since(start)),
		}
		if cfg.Debug {
			fields = append(fields, zap.String("path", c.Request.URL.Path))
		}
		if lastErr := c.Errors.Last(); lastErr != nil && cfg.ErrorClassifier != nil {
			if class := cfg.ErrorClassifier(lastErr.Err); class != "" {
				fields = append(fields, zap.String("error_class", class))
			}
		}

		log := WithContext(c.Request.Context(), zap.L()).Named("http")
		switch {
		case status >= http.StatusInternalServerError:
			log.Error("request", fields...)
		case status >= http.StatusBadRequest:
			log.Warn("request", fields...)
		default:
			log.Info("request", fields...)
		}
	}
}
