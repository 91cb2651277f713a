package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSendMessageCommand(t *testing.T) {
	var gotPath, gotBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotPath, gotBody = r.URL.Path, string(b)
		_, _ = w.Write([]byte(`{"idMessage":"X1"}`))
	}))
	defer upstream.Close()

	out, err := runCmd(t, "send-message",
		"--api-url", upstream.URL,
		"--id-instance", "123", "--api-token", "abc",
		"--phone", "111", "--text", "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPath != "/waInstance123/sendMessage/abc" {
		t.Errorf("path = %q", gotPath)
	}
	if gotBody != `{"phoneNumber":"111","messageText":"hi"}` {
		t.Errorf("body = %q", gotBody)
	}
	if want := "sendMessage:\n{\n  \"idMessage\": \"X1\"\n}\n\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestActionCommand_Failure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	out, err := runCmd(t, "get-state-instance", "--api-url", upstream.URL, "--id-instance", "1", "--api-token", "t")
	if err == nil {
		t.Fatal("expected an error")
	}

	want := "Error:\n\"HTTP error! Status: 403\"\n\n" +
		"getStateInstance Error:\n\"HTTP error! Status: 403\"\n\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestServeCommand_InvalidMode(t *testing.T) {
	_, err := runCmd(t, "serve", "--mode", "bogus")
	if err == nil || !strings.Contains(err.Error(), "invalid mode") {
		t.Errorf("err = %v", err)
	}
}

func TestVersionFlag(t *testing.T) {
	out, err := runCmd(t, "--version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(out, "dos version ") {
		t.Errorf("output = %q", out)
	}
}
