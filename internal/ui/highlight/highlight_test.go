package highlight

import (
	"bytes"
	"strings"
	"testing"
)

func TestJSON(t *testing.T) {
	out, err := JSON("{\n  \"stateInstance\": \"<authorized>\"\n}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "<pre") {
		t.Errorf("expected a <pre> block, got %q", out)
	}
	if !strings.Contains(out, "stateInstance") {
		t.Error("key missing from output")
	}
	if strings.Contains(out, "<authorized>") {
		t.Error("content was not HTML escaped")
	}
	if strings.Contains(out, "style=") {
		t.Error("inline styles would be blocked by the content security policy")
	}
}

func TestWriteCSS(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSS(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), ".chroma") {
		t.Errorf("stylesheet missing .chroma rules: %q", buf.String())
	}
}
