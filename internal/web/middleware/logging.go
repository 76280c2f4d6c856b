// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/JonMunkholm/vetrecords/internal/logging"
)

// Logger logs one structured entry per request: method, path, status,
// bytes, duration_ms, ip, user_agent and, when known, the acting user.
// Server errors log at error level, client errors at warn.
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		// Auth runs inside this middleware and attaches the actor to a
		// derived request, so capture it through a shared holder.
		holder := &actorHolder{}
		next.ServeHTTP(rw, r.WithContext(withActorHolder(r.Context(), holder)))

		args := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"bytes", rw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", ClientIP(r),
			"user_agent", r.UserAgent(),
		}
		if holder.actor != "" {
			args = append(args, "actor", holder.actor)
		}

		logger := logging.FromContext(r.Context())
		switch {
		case rw.status >= http.StatusInternalServerError:
			logger.Error("request", args...)
		case rw.status >= http.StatusBadRequest:
			logger.Warn("request", args...)
		default:
			logger.Info("request", args...)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture status and size.
type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (w *responseWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.status = status
	w.wroteHeader = true
	w.ResponseWriter.WriteHeader(status)
}

func (w *responseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap exposes the underlying ResponseWriter to http.ResponseController.
func (w *responseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

type actorHolder struct{ actor string }

type holderKey struct{}

func withActorHolder(ctx context.Context, h *actorHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// recordActor notes the acting user for the access log.
func recordActor(r *http.Request, actor string) {
	if h, ok := r.Context().Value(holderKey{}).(*actorHolder); ok {
		h.actor = actor
	}
}
