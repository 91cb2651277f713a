// the logger package configures slog for the server and the CLI and carries the per-request log state.
//
// GREEN-API puts the instance token in the URL path (/waInstance{id}/{endpoint}/{token}).
// Every handler created here masks the token wherever such a path shows up in a log record.
package logger

import (
	"io"
	"log/slog"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

const redacted = "[redacted]"

// instancePath matches the token segment of a GREEN-API request path
var instancePath = regexp.MustCompile(`(/waInstance[^/\s"]*/[^/\s"]+/)[^/?\s"]+`)

// credentialKeys are attribute keys whose values are never logged
var credentialKeys = map[string]bool{
	"apiTokenInstance": true,
	"api_token":        true,
}

// RedactCredentials masks the API token in any GREEN-API request path contained in s
func RedactCredentials(s string) string {
	return instancePath.ReplaceAllString(s, "${1}"+redacted)
}

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindString {
		return a
	}
	if credentialKeys[a.Key] {
		return slog.String(a.Key, redacted)
	}
	if v := a.Value.String(); strings.Contains(v, "/waInstance") {
		return slog.String(a.Key, RedactCredentials(v))
	}
	return a
}

// ParseLogLevel converts LOG_LEVEL (or the --log-level flag) to a slog.Level, unknown values mean debug
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelDebug
	}
}

// InitLogger returns the server logger: colourised text on stderr in dev, JSON on stdout in every other environment
func InitLogger(logLevel slog.Level, environment string) *slog.Logger {
	if environment == "dev" {
		return NewTextLogger(os.Stderr, logLevel)
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       logLevel,
		ReplaceAttr: replaceAttr,
	}))
}

// NewTextLogger returns a tint logger writing to w.
// The CLI writes its diagnostics here (stderr) so stdout only carries the output log.
func NewTextLogger(w io.Writer, logLevel slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:       logLevel,
		TimeFormat:  time.Kitchen,
		ReplaceAttr: replaceAttr,
	}))
}
