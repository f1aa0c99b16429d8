// Package pdftest builds small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// Text is a single-line text run drawn with a standard Type1 font.
type Text struct {
	S    string
	X, Y float64
	Size float64
	Font string
}

// Rect is a stroked rectangle in PDF user space.
type Rect struct {
	X, Y, W, H float64
}

// Page is the content of one page.
type Page struct {
	Texts []Text
	Rects []Rect
}

// Doc describes a document. Width and Height default to US Letter and are
// set on the page tree root so pages inherit them.
type Doc struct {
	Title  string
	Width  float64
	Height float64
	Pages  []Page

	// MissingPages is added to the page tree's /Count without adding Kids,
	// so the trailing pages resolve to null page objects.
	MissingPages int
}

// GlyphWidth is the advance of every glyph in thousandths of the font size.
const GlyphWidth = 500

// Bytes serializes the document.
func (d Doc) Bytes() []byte {
	width, height := d.Width, d.Height
	if width == 0 {
		width = 612
	}
	if height == 0 {
		height = 792
	}

	fonts := d.fonts()
	// 1 catalog, 2 pages, 3 info, then fonts, then page/content pairs.
	fontBase := 4
	pageBase := fontBase + len(fonts)

	var objects []string
	objects = append(objects, "<< /Type /Catalog /Pages 2 0 R >>")

	kids := make([]string, len(d.Pages))
	for i := range d.Pages {
		kids[i] = fmt.Sprintf("%d 0 R", pageBase+2*i)
	}
	objects = append(objects, fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 %s %s] >>",
		strings.Join(kids, " "), len(d.Pages)+d.MissingPages, num(width), num(height)))
	objects = append(objects, fmt.Sprintf("<< /Title (%s) /Producer (pdftest) >>", escape(d.Title)))

	widths := make([]string, 95)
	for i := range widths {
		widths[i] = strconv.Itoa(GlyphWidth)
	}
	for _, f := range fonts {
		objects = append(objects, fmt.Sprintf(
			"<< /Type /Font /Subtype /Type1 /BaseFont /%s /Encoding /WinAnsiEncoding /FirstChar 32 /LastChar 126 /Widths [%s] >>",
			f, strings.Join(widths, " ")))
	}

	var resources strings.Builder
	resources.WriteString("<< /Font << ")
	for i := range fonts {
		fmt.Fprintf(&resources, "/F%d %d 0 R ", i+1, fontBase+i)
	}
	resources.WriteString(">> >>")

	for i, p := range d.Pages {
		stream := p.stream(fonts)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources %s /Contents %d 0 R >>", resources.String(), pageBase+2*i+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R /Info 3 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

// WriteFile writes the document into dir and returns its path.
func (d Doc) WriteFile(t testing.TB, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, d.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Report is a one-page document with a title, two numbered headings and
// enough body text to establish the body size.
func Report() Doc {
	texts := []Text{
		{S: "Acme Corp Annual Report", X: 72, Y: 668, Size: 24, Font: "Helvetica-Bold"},
		{S: "1. Overview", X: 72, Y: 626, Size: 16, Font: "Helvetica-Bold"},
		{S: "2. Summary", X: 72, Y: 256, Size: 16, Font: "Helvetica-Bold"},
	}
	for i := 0; i < 20; i++ {
		texts = append(texts, Text{
			S:    "Body paragraph text that is long enough",
			X:    72,
			Y:    580 - float64(i)*14,
			Size: 12,
			Font: "Helvetica",
		})
	}
	return Doc{Title: "Quarterly Numbers", Pages: []Page{{Texts: texts}}}
}

func (d Doc) fonts() []string {
	seen := make(map[string]bool)
	var fonts []string
	for _, p := range d.Pages {
		for _, t := range p.Texts {
			name := t.Font
			if name == "" {
				name = "Helvetica"
			}
			if !seen[name] {
				seen[name] = true
				fonts = append(fonts, name)
			}
		}
	}
	return fonts
}

func (p Page) stream(fonts []string) string {
	var b strings.Builder
	for _, r := range p.Rects {
		fmt.Fprintf(&b, "%s %s %s %s re S\n", num(r.X), num(r.Y), num(r.W), num(r.H))
	}
	for _, t := range p.Texts {
		name := t.Font
		if name == "" {
			name = "Helvetica"
		}
		ref := 1
		for i, f := range fonts {
			if f == name {
				ref = i + 1
			}
		}
		fmt.Fprintf(&b, "BT /F%d %s Tf %s %s Td (%s) Tj ET\n", ref, num(t.Size), num(t.X), num(t.Y), escape(t.S))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}
