package sessions

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

const testCookie = "dos_session"

func TestForRequest_NewSession(t *testing.T) {
	s := NewStore(testCookie, time.Hour, false)

	rr := httptest.NewRecorder()
	id, log := s.ForRequest(rr, httptest.NewRequest("GET", "/", nil))

	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("session id %q is not a uuid", id)
	}
	if log == nil || log.Len() != 0 {
		t.Fatal("expected a new empty log")
	}

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != testCookie || cookies[0].Value != id {
		t.Fatalf("unexpected cookies: %+v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie should be HttpOnly")
	}
}

func TestForRequest_ExistingSession(t *testing.T) {
	s := NewStore(testCookie, time.Hour, false)

	id, first := s.ForRequest(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	first.Append("getSettings", "x")

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: id})

	gotID, second := s.ForRequest(httptest.NewRecorder(), req)
	if gotID != id {
		t.Errorf("id = %s, want %s", gotID, id)
	}
	if second != first {
		t.Error("same session returned a different log")
	}
	if second.Len() != 1 {
		t.Errorf("Len() = %d, want 1", second.Len())
	}
}

func TestForRequest_InvalidCookie(t *testing.T) {
	s := NewStore(testCookie, time.Hour, false)

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: "not-a-uuid"})

	id, _ := s.ForRequest(httptest.NewRecorder(), req)
	if id == "not-a-uuid" {
		t.Error("invalid session id was accepted")
	}
	if _, ok := s.Lookup("not-a-uuid"); ok {
		t.Error("log created for invalid session id")
	}
}

func TestGet_SeparateSessions(t *testing.T) {
	s := NewStore(testCookie, time.Hour, false)

	a := s.Get(uuid.NewString())
	b := s.Get(uuid.NewString())
	a.Append("getSettings", "x")

	if b.Len() != 0 {
		t.Error("sessions share a log")
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
}

func TestGet_Concurrent(t *testing.T) {
	s := NewStore(testCookie, time.Hour, false)
	id := uuid.NewString()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Get(id).Append("getStateInstance", "x")
		}()
	}
	wg.Wait()

	l, ok := s.Lookup(id)
	if !ok {
		t.Fatal("session not found")
	}
	if l.Len() != 20 {
		t.Errorf("Len() = %d, want 20 (appends lost to a replaced log)", l.Len())
	}
}

func TestGet_Expiry(t *testing.T) {
	s := NewStore(testCookie, 50*time.Millisecond, false)
	id := uuid.NewString()
	s.Get(id).Append("getSettings", "x")

	time.Sleep(100 * time.Millisecond)

	if _, ok := s.Lookup(id); ok {
		t.Error("session should have expired")
	}
}
