package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"minflow/internal/errors"

	"github.com/labstack/echo/v4"
)

// PanicRecovery converts handler panics into the standard 500 envelope.
// The panic value and stack stay in the server log; the client only ever
// sees the generic internal error.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			defer func() {
				if r := recover(); r != nil {
					respondToPanic(c, r)
				}
			}()

			return next(c)
		}
	}
}

func respondToPanic(c echo.Context, panicValue interface{}) {
	traceID := GetTraceID(c)

	slog.Error("handler panicked",
		"trace_id", traceID,
		"value", panicValue,
		"method", c.Request().Method,
		"path", c.Request().URL.Path,
		"stack", string(debug.Stack()),
	)

	response := errors.NewErrorResponse(errors.SystemInternalError, traceID)
	if err := c.JSON(http.StatusInternalServerError, response); err != nil {
		slog.Error("panic response not delivered",
			"trace_id", traceID,
			"error", err.Error(),
		)
	}
}
