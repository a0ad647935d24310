// Package trace assigns a request id to every inbound request and logs
// start and completion with timing and status.
package trace

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shobhitrastogi/expense-tracker-frontend/internal/log"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// Middleware traces requests through the handler chain.
type Middleware struct {
	logger *log.Logger
}

// NewMiddleware returns a tracing middleware logging through the given
// logger.
func NewMiddleware(logger *log.Logger) *Middleware {
	return &Middleware{logger: logger.WithComponent(log.ComponentHTTP)}
}

// Middleware wraps next with request id injection and access logging.
func (m *Middleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		r = r.WithContext(ctx)

		m.logger.DebugContext(ctx, "request started",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldQuery, r.URL.RawQuery,
			log.FieldClientIP, ClientIP(r))

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		logFn := m.logger.InfoContext
		switch {
		case rw.statusCode >= 500:
			logFn = m.logger.ErrorContext
		case rw.statusCode >= 400:
			logFn = m.logger.WarnContext
		}
		logFn(ctx, "request completed",
			log.FieldRequestID, requestID,
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rw.statusCode,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RequestID returns the id assigned by the middleware, or "".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ClientIP extracts the remote address without the port.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
