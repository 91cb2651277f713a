// Package highlight renders output log entries as syntax-highlighted HTML.
// Colours come from CSS classes (served by the UI at /static/highlight.css) because the content security policy blocks inline styles.
package highlight

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const StyleName = "github"

var (
	formatter = html.New(html.WithClasses(true))
	style     = styles.Get(StyleName)
	lexer     = chroma.Coalesce(jsonLexer())
)

func jsonLexer() chroma.Lexer {
	if l := lexers.Get("json"); l != nil {
		return l
	}
	return lexers.Fallback
}

// JSON returns text as an HTML <pre> block with highlighting classes. The text is escaped by the formatter.
func JSON(text string) (string, error) {
	iterator, err := lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("tokenising log entry: %w", err)
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return "", fmt.Errorf("formatting log entry: %w", err)
	}
	return buf.String(), nil
}

// WriteCSS writes the stylesheet for the classes used by JSON
func WriteCSS(w io.Writer) error {
	return formatter.WriteCSS(w, style)
}
