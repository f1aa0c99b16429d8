// Package render writes outline results as JSON, Markdown or HTML.
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/a3tai/pdf-outline/internal/outline"
	"github.com/yuin/goldmark"
)

// Format selects an output representation
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
)

// ParseFormat accepts json, md/markdown and html, case-insensitively. An
// empty string selects JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want json, md or html)", s)
	}
}

// Render writes res to w in the given format.
func Render(w io.Writer, format Format, res *outline.Result) error {
	switch format {
	case FormatJSON:
		return JSON(w, res)
	case FormatMarkdown:
		_, err := io.WriteString(w, Markdown(res))
		return err
	case FormatHTML:
		out, err := HTML(res)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// JSON writes res with two-space indentation. Non-ASCII text and HTML
// characters are written verbatim.
func JSON(w io.Writer, res *outline.Result) error {
	out := *res
	if out.Outline == nil {
		out.Outline = []outline.Entry{}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// Markdown renders the title as a top-level heading and the outline as a
// nested bullet list, one indentation step per level.
func Markdown(res *outline.Result) string {
	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(escapeMarkdown(res.Title))
	b.WriteString("\n")

	if len(res.Outline) > 0 {
		b.WriteString("\n")
	}
	depth := -1
	for _, e := range res.Outline {
		// A list item may only nest one level below the previous item.
		d := levelNumber(e.Level) - 1
		if d > depth+1 {
			d = depth + 1
		}
		depth = d

		b.WriteString(strings.Repeat("  ", d))
		fmt.Fprintf(&b, "- %s (p. %d)\n", escapeMarkdown(e.Text), e.Page)
	}
	return b.String()
}

// HTML converts the Markdown rendering to an HTML fragment.
func HTML(res *outline.Result) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(res)), &buf); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return buf.String(), nil
}

func levelNumber(level string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(level, "H"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// escapeMarkdown backslash-escapes inline markup characters, and block
// markers at the start of the text, so headings render literally.
func escapeMarkdown(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune("\\`*_[]<>|~", r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	out := b.String()

	if out != "" && strings.ContainsRune("#+->=", rune(out[0])) {
		return "\\" + out
	}

	// "1." or "1)" at the start would open an ordered list.
	i := 0
	for i < len(out) && unicode.IsDigit(rune(out[i])) {
		i++
	}
	if i > 0 && i < len(out) && (out[i] == '.' || out[i] == ')') {
		return out[:i] + "\\" + out[i:]
	}
	return out
}
