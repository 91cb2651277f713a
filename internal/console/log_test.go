package console

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
)

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{
			name:  "raw json keeps key order",
			value: json.RawMessage(`{"stateInstance":"authorized","a":1}`),
			want:  "{\n  \"stateInstance\": \"authorized\",\n  \"a\": 1\n}",
		},
		{
			name:  "nested raw json",
			value: json.RawMessage(`{"list":[1,2],"empty":{}}`),
			want:  "{\n  \"list\": [\n    1,\n    2\n  ],\n  \"empty\": {}\n}",
		},
		{
			name:  "surrounding whitespace of a response body is dropped",
			value: json.RawMessage("\n {\"a\":1}\r\n"),
			want:  "{\n  \"a\": 1\n}",
		},
		{
			name:  "error message string is quoted",
			value: "HTTP error! Status: 500",
			want:  `"HTTP error! Status: 500"`,
		},
		{
			name:  "html characters are not escaped",
			value: "<b>&</b>",
			want:  `"<b>&</b>"`,
		},
		{
			name:  "nil",
			value: nil,
			want:  "null",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(tt.value)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("FormatValue() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLog_Append(t *testing.T) {
	l := NewLog()

	l.Append("getStateInstance", json.RawMessage(`{"stateInstance":"authorized"}`))
	l.Append("Error", "HTTP error! Status: 500")

	want := "getStateInstance:\n{\n  \"stateInstance\": \"authorized\"\n}\n\n" +
		"Error:\n\"HTTP error! Status: 500\"\n\n"

	if got := l.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestLog_AppendOnly(t *testing.T) {
	l := NewLog()
	l.Append("first", "a")

	before := l.String()
	entries := l.Entries()
	entries[0].Label = "changed"

	l.Append("second", "b")

	after := l.String()
	if after[:len(before)] != before {
		t.Errorf("existing content changed: before %q, after %q", before, after)
	}
	if l.Entries()[0].Label != "first" {
		t.Error("Entries() returned a slice sharing storage with the log")
	}
}

func TestLog_ConcurrentAppend(t *testing.T) {
	l := NewLog()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			l.Append(fmt.Sprintf("entry-%d", i), i)
		}(i)
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", l.Len())
	}

	seen := map[string]bool{}
	for _, e := range l.Entries() {
		seen[e.Label] = true
	}
	if len(seen) != 50 {
		t.Errorf("got %d distinct entries, want 50", len(seen))
	}
}

func TestLog_InvalidRawJSON(t *testing.T) {
	l := NewLog()
	e := l.Append("broken", json.RawMessage(`{`))

	if e.Text == "" || e.Text[0] != '"' {
		t.Errorf("expected quoted error message, got %q", e.Text)
	}
}
