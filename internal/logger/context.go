package logger

import (
	"context"
	"log/slog"
	"sync"
)

// requestLog is shared by RequestLogging and the handlers of one HTTP request
type requestLog struct {
	logger *slog.Logger

	mu    sync.Mutex
	attrs []slog.Attr
}

type requestLogKey struct{}

func fromContext(ctx context.Context) *requestLog {
	rl, _ := ctx.Value(requestLogKey{}).(*requestLog)
	return rl
}

// ContextWithLogAttrs adds attributes to the "request completed" line written by RequestLogging,
// e.g. the GREEN-API endpoint that was called and the status it answered with.
// Outside an HTTP request (the CLI) the attributes are dropped.
func ContextWithLogAttrs(ctx context.Context, attrs ...slog.Attr) context.Context {
	rl := fromContext(ctx)
	if rl == nil {
		return ctx
	}

	rl.mu.Lock()
	rl.attrs = append(rl.attrs, attrs...)
	rl.mu.Unlock()
	return ctx
}

// ContextRequestLogger returns the logger of the current request, its records carry the request_id.
// Falls back to slog.Default() outside an HTTP request.
func ContextRequestLogger(ctx context.Context) *slog.Logger {
	if rl := fromContext(ctx); rl != nil {
		return rl.logger
	}
	return slog.Default()
}

func (rl *requestLog) collected() []slog.Attr {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	out := make([]slog.Attr, len(rl.attrs))
	copy(out, rl.attrs)
	return out
}
