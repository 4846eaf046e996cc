package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"pehlione.com/storefront/internal/modules/variants"
	"pehlione.com/storefront/internal/shared/apperr"
)

// queryInt reads an integer query parameter; missing or garbage is 0 and
// left to the repository to clamp.
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}

func issueKind(err error) string {
	switch {
	case errors.Is(err, variants.ErrMalformedVariant):
		return "malformed_variant"
	case errors.Is(err, variants.ErrMalformedOption):
		return "malformed_option"
	default:
		return "unknown"
	}
}

// storeErr maps a repository failure to an AppError. A timed out query is
// a 503 so clients may retry; everything else is a 500.
func storeErr(err error) *apperr.AppError {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.UnavailableErr("The store is busy, please try again.").WithErr(err)
	}
	return apperr.Wrap(err)
}
