package console

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Entry is one labeled record in the output log. Text is the value formatted as indented JSON.
type Entry struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// String returns the entry as it appears in the log: "<label>:\n<text>\n\n"
func (e Entry) String() string {
	return e.Label + ":\n" + e.Text + "\n\n"
}

// Log is the append-only record of every action result shown to the user.
// Entries are never edited or removed. Log is safe for concurrent use; entries from concurrent
// actions appear in the order the actions complete.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewLog() *Log {
	return &Log{}
}

// Append formats value and adds it to the end of the log under label.
//
// json.RawMessage values (API responses) are re-indented with their key order preserved,
// any other value is encoded as JSON. A plain string therefore appears quoted, e.g. "HTTP error! Status: 500".
// Values that cannot be encoded are recorded as the encoding error message.
func (l *Log) Append(label string, value any) Entry {
	text, err := FormatValue(value)
	if err != nil {
		text = fmt.Sprintf("%q", err.Error())
	}

	entry := Entry{Label: label, Text: text}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	l.mu.Unlock()

	return entry
}

// Entries returns a copy of the log entries in order
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// String returns the full log text
func (l *Log) String() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var sb strings.Builder
	for _, e := range l.entries {
		sb.WriteString(e.String())
	}
	return sb.String()
}

// FormatValue renders value as JSON indented by two spaces without HTML escaping
func FormatValue(value any) (string, error) {
	if raw, ok := value.(json.RawMessage); ok {
		var buf bytes.Buffer
		// json.Indent keeps surrounding whitespace, which would break the entry layout
		if err := json.Indent(&buf, bytes.TrimSpace(raw), "", "  "); err != nil {
			return "", fmt.Errorf("formatting response: %w", err)
		}
		return buf.String(), nil
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(value); err != nil {
		return "", fmt.Errorf("formatting value: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
