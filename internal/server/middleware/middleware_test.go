package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestRequestSizeLimits(t *testing.T) {
	router := chi.NewRouter()

	router.Group(func(r chi.Router) {
		r.Use(RequestSizeLimit(64 * 1024))
		r.Post("/api/sendMessage", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(RequestSizeLimit(8 * 1024))
		r.Post("/ui-api/send-message", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	tests := []struct {
		name     string
		path     string
		bodySize int64
		wantCode int
	}{
		{"API normal request", "/api/sendMessage", 2 * 1024, http.StatusOK},
		{"API oversized request", "/api/sendMessage", 128 * 1024, http.StatusRequestEntityTooLarge},
		{"UI normal request", "/ui-api/send-message", 1024, http.StatusOK},
		{"UI oversized request", "/ui-api/send-message", 16 * 1024, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("x", int(tt.bodySize))
			req := httptest.NewRequest("POST", tt.path, bytes.NewReader([]byte(body)))
			req.ContentLength = tt.bodySize

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			if rr.Code != tt.wantCode {
				t.Errorf("got status %d, want %d", rr.Code, tt.wantCode)
			}

			if header := rr.Header().Get(MaxRequestSizeHeader); header == "" {
				t.Errorf("%s header not set", MaxRequestSizeHeader)
			}
		})
	}
}

func TestRateLimit_ByInstance(t *testing.T) {
	router := chi.NewRouter()
	router.Use(RateLimit(10, 5, ByInstance)) // 10 requests per second, burst of 5
	router.Get("/api/getSettings", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	get := func(instance string) *httptest.ResponseRecorder {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/getSettings?idInstance="+instance+"&apiTokenInstance=t", nil))
		return rr
	}

	for i := 0; i < 5; i++ {
		if rr := get("1101"); rr.Code != http.StatusOK {
			t.Errorf("request %d failed: got status %d, want %d", i+1, rr.Code, http.StatusOK)
		}
	}

	rr := get("1101")
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("request over the burst: got status %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if !strings.Contains(rr.Body.String(), "rate_limit_exceeded") {
		t.Errorf("unexpected body: %s", rr.Body.String())
	}

	// another instance has its own quota
	if rr := get("2202"); rr.Code != http.StatusOK {
		t.Errorf("other instance: got status %d, want %d", rr.Code, http.StatusOK)
	}
}

func TestRateLimit_BySessionCookie(t *testing.T) {
	handler := RateLimit(1, 1, BySessionCookie("dos_session"))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	post := func(session string) int {
		req := httptest.NewRequest("POST", "/ui-api/get-settings", strings.NewReader("idInstance=1"))
		req.AddCookie(&http.Cookie{Name: "dos_session", Value: session})
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := post("a"); code != http.StatusOK {
		t.Errorf("first request: got status %d", code)
	}
	if code := post("a"); code != http.StatusTooManyRequests {
		t.Errorf("second request in the same session: got status %d, want 429", code)
	}
	if code := post("b"); code != http.StatusOK {
		t.Errorf("other session: got status %d", code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimit(0, 0, ByInstance)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	for i := 0; i < 50; i++ {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("request %d: got status %d", i+1, rr.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	tests := []struct {
		environment string
		wantHSTS    bool
	}{
		{"dev", false},
		{"prod", true},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			handler := SecurityHeaders(tt.environment)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

			if rr.Header().Get("X-Frame-Options") != "DENY" {
				t.Error("X-Frame-Options not set")
			}
			if csp := rr.Header().Get("Content-Security-Policy"); !strings.Contains(csp, "form-action 'self'") || strings.Contains(csp, "script-src") {
				t.Errorf("unexpected Content-Security-Policy %q", csp)
			}
			if got := rr.Header().Get("Strict-Transport-Security") != ""; got != tt.wantHSTS {
				t.Errorf("HSTS set = %v, want %v", got, tt.wantHSTS)
			}
		})
	}
}
