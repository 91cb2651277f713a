package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/AidosNurbergen/Dos/internal/greenapi"
	"github.com/AidosNurbergen/Dos/internal/sessions"
)

type call struct {
	endpoint string
	creds    greenapi.Credentials
	opts     greenapi.CallOptions
}

// fakeExecutor records calls and answers with a fixed result or error
type fakeExecutor struct {
	calls  []call
	result greenapi.Result
	err    error
}

func (f *fakeExecutor) Call(ctx context.Context, endpoint string, creds greenapi.Credentials, opts greenapi.CallOptions) (greenapi.Result, error) {
	f.calls = append(f.calls, call{endpoint: endpoint, creds: creds, opts: opts})
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newHandlerService(exec *fakeExecutor) *HandlerService {
	return &HandlerService{
		ApiClient: exec,
		Sessions:  sessions.NewStore("dos_session", time.Hour, false),
	}
}

func post(h http.HandlerFunc, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/ui-api/action", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestHandleActions(t *testing.T) {
	form := url.Values{
		"idInstance":       {"123"},
		"apiTokenInstance": {"abc"},
		"phoneNumber":      {"111"},
		"messageText":      {"hello"},
		"filePhoneNumber":  {"222"},
		"fileUrl":          {"https://example.com/a.png"},
	}

	tests := []struct {
		name         string
		handler      func(h *HandlerService) http.HandlerFunc
		wantEndpoint string
		wantMethod   string
		wantBody     any
	}{
		{
			name:         "get settings",
			handler:      func(h *HandlerService) http.HandlerFunc { return h.HandleGetSettings },
			wantEndpoint: greenapi.EndpointGetSettings,
		},
		{
			name:         "get state instance",
			handler:      func(h *HandlerService) http.HandlerFunc { return h.HandleGetStateInstance },
			wantEndpoint: greenapi.EndpointGetStateInstance,
		},
		{
			name:         "send message",
			handler:      func(h *HandlerService) http.HandlerFunc { return h.HandleSendMessage },
			wantEndpoint: greenapi.EndpointSendMessage,
			wantMethod:   http.MethodPost,
			wantBody:     greenapi.SendMessageRequest{PhoneNumber: "111", MessageText: "hello"},
		},
		{
			name:         "send file by url uses the file section phone number",
			handler:      func(h *HandlerService) http.HandlerFunc { return h.HandleSendFileByURL },
			wantEndpoint: greenapi.EndpointSendFileByURL,
			wantMethod:   http.MethodPost,
			wantBody:     greenapi.SendFileByURLRequest{PhoneNumber: "222", FileURL: "https://example.com/a.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &fakeExecutor{result: greenapi.Result(`{"ok":true}`)}
			h := newHandlerService(exec)

			rr := post(tt.handler(h), form)

			if rr.Code != http.StatusOK {
				t.Fatalf("status = %d", rr.Code)
			}
			if len(exec.calls) != 1 {
				t.Fatalf("got %d calls, want 1", len(exec.calls))
			}
			got := exec.calls[0]
			if got.endpoint != tt.wantEndpoint {
				t.Errorf("endpoint = %q, want %q", got.endpoint, tt.wantEndpoint)
			}
			if got.creds != (greenapi.Credentials{IDInstance: "123", APITokenInstance: "abc"}) {
				t.Errorf("creds = %+v", got.creds)
			}
			if got.opts.Method != tt.wantMethod {
				t.Errorf("method = %q, want %q", got.opts.Method, tt.wantMethod)
			}
			if tt.wantBody != nil && got.opts.Body != tt.wantBody {
				t.Errorf("body = %+v, want %+v", got.opts.Body, tt.wantBody)
			}
			if !strings.Contains(rr.Body.String(), tt.wantEndpoint+":\n") {
				t.Errorf("log entry %q missing from page", tt.wantEndpoint)
			}
			if rr.Header().Get("Cache-Control") != "no-store" {
				t.Error("page must not be cached")
			}
		})
	}
}

func TestHandleAction_FailureRendersPage(t *testing.T) {
	exec := &fakeExecutor{err: greenapi.NewHTTPFailure(http.StatusUnauthorized)}
	h := newHandlerService(exec)

	rr := post(h.HandleGetSettings, url.Values{"idInstance": {"1"}, "apiTokenInstance": {"x"}})

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"Error:\n", "getSettings Error:\n", "HTTP error! Status: 401"} {
		if !strings.Contains(body, want) {
			t.Errorf("page does not contain %q", want)
		}
	}
}

func TestHandleAction_FormTooLarge(t *testing.T) {
	exec := &fakeExecutor{result: greenapi.Result(`{}`)}
	h := newHandlerService(exec)

	form := url.Values{"messageText": {strings.Repeat("a", 2048)}}
	req := httptest.NewRequest("POST", "/ui-api/send-message", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	req.Body = http.MaxBytesReader(rr, req.Body, 100)

	h.HandleSendMessage(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", rr.Code)
	}
	if len(exec.calls) != 0 {
		t.Error("GREEN-API must not be called when the form cannot be read")
	}
}

func TestHandleConsole_EmptyLog(t *testing.T) {
	h := newHandlerService(&fakeExecutor{})

	rr := httptest.NewRecorder()
	h.HandleConsole(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `readonly rows="20"></textarea>`) {
		t.Error("new session should start with an empty log")
	}
	if h.Sessions.Count() != 1 {
		t.Errorf("sessions = %d, want 1", h.Sessions.Count())
	}
}

func TestHandleStylesheets(t *testing.T) {
	h := newHandlerService(&fakeExecutor{})

	for name, handler := range map[string]http.HandlerFunc{"app": h.HandleAppCSS, "highlight": h.HandleHighlightCSS} {
		rr := httptest.NewRecorder()
		handler(rr, httptest.NewRequest("GET", "/static/x.css", nil))

		if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
			t.Errorf("%s: content type = %q", name, ct)
		}
		if rr.Body.Len() == 0 {
			t.Errorf("%s: empty stylesheet", name)
		}
	}
}
