package logger

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// component names the part of the service a path belongs to
func component(path string) string {
	switch {
	case path == "/swagger.json":
		return "docs"
	case strings.HasPrefix(path, "/api/"):
		return "proxy"
	case strings.HasPrefix(path, "/ui-api/"):
		return "console"
	default:
		return "ui"
	}
}

// RequestLogging writes one "request completed" record per request.
// Health checks and stylesheets are not logged. Proxy requests record the instance id (never the token).
func RequestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/health/") || strings.HasPrefix(r.URL.Path, "/static/") {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			comp := component(r.URL.Path)

			rl := &requestLog{
				logger: logger.With(
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("component", comp),
				),
			}
			if comp == "proxy" {
				if id := r.URL.Query().Get("idInstance"); id != "" {
					rl.attrs = append(rl.attrs, slog.String("id_instance", id))
				}
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestLogKey{}, rl)))

			level := slog.LevelInfo
			switch {
			case ww.Status() >= 500:
				level = slog.LevelError
			case ww.Status() >= 400:
				level = slog.LevelWarn
			}

			attrs := append([]slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.String("remote_addr", r.RemoteAddr),
			}, rl.collected()...)
			attrs = append(attrs,
				slog.Duration("duration", time.Since(start)),
				slog.Int("bytes", ww.BytesWritten()),
			)

			rl.logger.LogAttrs(r.Context(), level, "request completed", attrs...)
		})
	}
}
