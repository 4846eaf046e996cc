package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"pehlione.com/storefront/internal/observability"
	"pehlione.com/storefront/internal/shared/apperr"
)

// Logger writes one http_request record per request. route carries the
// same label the metrics use; the query string (the shopper's selection on
// product pages) is logged separately from the path.
func Logger(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []slog.Attr{
			slog.String("request_id", GetRequestID(c)),
			slog.String("method", c.Request.Method),
			slog.String("route", observability.RouteLabel(c.FullPath())),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes", c.Writer.Size()),
			slog.String("client_ip", c.ClientIP()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, slog.String("query", q))
		}
		// details are in request_failed
		if last := c.Errors.Last(); last != nil {
			attrs = append(attrs, slog.String("error_kind", string(apperr.KindOf(last.Err))))
		}

		l.LogAttrs(c.Request.Context(), levelFor(status), "http_request", attrs...)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
