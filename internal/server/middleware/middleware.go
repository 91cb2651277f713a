// the middleware package guards the console and the proxy.
//
// The rate limiters protect the GREEN-API quota of each instance: every call that passes reaches the provider.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/jub0bs/cors"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/AidosNurbergen/Dos/internal/apperrors"
	"github.com/AidosNurbergen/Dos/internal/logger"
	"github.com/AidosNurbergen/Dos/internal/server/responses"
)

// MaxRequestSizeHeader tells clients the largest body the route accepts
const MaxRequestSizeHeader = "X-Max-Request-Size"

// limiterIdleTTL is how long the limiter of an instance or browser session is kept after its last request
const limiterIdleTTL = 10 * time.Minute

// consolePolicy allows the console page its own stylesheets and form posts, nothing else (the page has no scripts or images)
const consolePolicy = "default-src 'none'; style-src 'self'; form-action 'self'; frame-ancestors 'none'; base-uri 'none'"

// CORS returns a CORS middleware using the provided pre-built middleware instance.
func CORS(middleware *cors.Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return middleware.Wrap(next)
	}
}

// SecurityHeaders sets the headers for the console and the proxy. HSTS is only sent where the service runs behind https.
func SecurityHeaders(environment string) func(http.Handler) http.Handler {
	hsts := environment == "prod" || environment == "staging"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Content-Security-Policy", consolePolicy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			// pages and proxy responses echo instance credentials
			h.Set("Referrer-Policy", "no-referrer")
			if hsts {
				h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimit rejects bodies larger than maxBytes before they are forwarded to GREEN-API.
// A declared Content-Length over the limit is answered with 413 here; other bodies are cut off when the handler reads them.
func RequestSizeLimit(maxBytes int64) func(http.Handler) http.Handler {
	limit := strconv.FormatInt(maxBytes, 10)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(MaxRequestSizeHeader, limit)

			if r.ContentLength > maxBytes {
				logger.ContextRequestLogger(r.Context()).Warn("request body too large, not forwarded",
					slog.String("route", r.URL.Path),
					slog.Int64("content_length", r.ContentLength),
					slog.Int64("max_bytes", maxBytes),
				)
				logger.ContextWithLogAttrs(r.Context(), slog.Int64("content_length", r.ContentLength))

				responses.RespondWithError(w, r, http.StatusRequestEntityTooLarge, apperrors.ErrCodeRequestTooLarge,
					fmt.Sprintf("Request body exceeds maximum size of %d bytes", maxBytes))
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// LimitKey identifies the bucket a request is counted against.
// Name is the log attribute; Secret keys (e.g. session ids) are counted but not logged.
type LimitKey struct {
	Name   string
	Secret bool
	Value  func(r *http.Request) string
}

// ByInstance counts proxy requests per GREEN-API instance (the idInstance query parameter)
var ByInstance = LimitKey{
	Name: "id_instance",
	Value: func(r *http.Request) string {
		return r.URL.Query().Get("idInstance")
	},
}

// BySessionCookie counts console requests per browser session.
// The console posts credentials in the form body, which must not be consumed before the handler reads it.
func BySessionCookie(cookieName string) LimitKey {
	return LimitKey{
		Name:   "session",
		Secret: true,
		Value: func(r *http.Request) string {
			if c, err := r.Cookie(cookieName); err == nil {
				return c.Value
			}
			return ""
		},
	}
}

// RateLimit allows requestsPerSecond (with burst) for each key value. Requests without a key share one bucket.
// If requestsPerSecond <= 0, rate limiting is disabled.
func RateLimit(requestsPerSecond int32, burst int32, key LimitKey) func(http.Handler) http.Handler {
	if requestsPerSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	limiters := cache.New(limiterIdleTTL, limiterIdleTTL/2)

	limiterFor := func(k string) *rate.Limiter {
		if v, ok := limiters.Get(k); ok {
			l := v.(*rate.Limiter)
			limiters.SetDefault(k, l)
			return l
		}
		l := rate.NewLimiter(rate.Limit(requestsPerSecond), int(burst))
		// a concurrent request may have created the limiter first
		if err := limiters.Add(k, l, cache.DefaultExpiration); err != nil {
			if v, ok := limiters.Get(k); ok {
				return v.(*rate.Limiter)
			}
		}
		return l
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			k := key.Value(r)
			if limiterFor(k).Allow() {
				next.ServeHTTP(w, r)
				return
			}

			attrs := []any{slog.String("remote_addr", r.RemoteAddr)}
			if !key.Secret {
				attrs = append(attrs, slog.String(key.Name, k))
			}
			logger.ContextRequestLogger(r.Context()).Warn("rate limit exceeded, call not forwarded to GREEN-API", attrs...)

			responses.RespondWithError(w, r, http.StatusTooManyRequests,
				apperrors.ErrCodeRateLimitExceeded, "Rate limit exceeded")
		})
	}
}
