package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"pehlione.com/storefront/internal/shared/apperr"
)

// Recovery logs the panic with its stack as structured fields and answers
// with the generic 500 body. The stack never reaches the client.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		rid := GetRequestID(c)
		l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered",
			slog.String("request_id", rid),
			slog.Any("panic", recovered),
			slog.String("stack", string(debug.Stack())),
		)

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":      apperr.PublicMessage(nil),
			"request_id": rid,
		})
	})
}
