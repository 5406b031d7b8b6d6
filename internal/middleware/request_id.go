package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// TraceIDHeader carries the trace ID between client and server
	TraceIDHeader = "X-Trace-ID"
	// TraceIDContextKey stores the trace ID on the Echo context
	TraceIDContextKey = "trace_id"

	// maxTraceIDLength caps caller-supplied ids so log lines stay bounded
	maxTraceIDLength = 64
)

// RequestID tags every request with a trace ID. A reasonable id supplied by
// the caller is kept so traces can span services; anything missing or
// oversized is replaced with a fresh UUID. The id is exposed on the context
// and echoed back in the response header.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			traceID := c.Request().Header.Get(TraceIDHeader)
			if traceID == "" || len(traceID) > maxTraceIDLength {
				traceID = uuid.NewString()
			}

			c.Set(TraceIDContextKey, traceID)
			c.Response().Header().Set(TraceIDHeader, traceID)
			return next(c)
		}
	}
}

// GetTraceID returns the request's trace ID, or "" before RequestID has run
func GetTraceID(c echo.Context) string {
	if traceID, ok := c.Get(TraceIDContextKey).(string); ok {
		return traceID
	}
	return ""
}
