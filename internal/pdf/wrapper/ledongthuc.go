package wrapper

import (
	"fmt"
	"io"

	"github.com/a3tai/pdf-outline/internal/outline"
	"github.com/ledongthuc/pdf"
)

// ledongthucReader reads glyphs, ruling rectangles and metadata through
// ledongthuc/pdf. Every call into the library is panic-safe: malformed
// content streams make it panic rather than return errors.
type ledongthucReader struct {
	reader *pdf.Reader
}

func openLedongthuc(r io.ReaderAt, size int64) (lr *ledongthucReader, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &WrapperError{
				Library: LibraryLedongthuc,
				Op:      "open",
				Err:     fmt.Errorf("panic while reading document structure: %v", p),
			}
		}
	}()

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryLedongthuc,
			Op:      "open",
			Err:     fmt.Errorf("failed to open PDF: %w", err),
		}
	}
	return &ledongthucReader{reader: reader}, nil
}

func (l *ledongthucReader) numPages() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return l.reader.NumPage()
}

// content returns the positioned glyphs and rectangles of a page.
func (l *ledongthucReader) content(pageNum int) (content pdf.Content, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &WrapperError{
				Library: LibraryLedongthuc,
				Op:      "content",
				Err:     fmt.Errorf("panic during page content extraction on page %d: %v", pageNum, p),
			}
		}
	}()

	page := l.reader.Page(pageNum)
	if page.V.IsNull() {
		return pdf.Content{}, &WrapperError{
			Library: LibraryLedongthuc,
			Op:      "content",
			Err:     fmt.Errorf("page %d is null", pageNum),
		}
	}
	return page.Content(), nil
}

// mediaBox resolves the page's MediaBox, following Parent links for
// inherited values.
func (l *ledongthucReader) mediaBox(pageNum int) (size PageSize, ok bool) {
	defer func() {
		if recover() != nil {
			size, ok = PageSize{}, false
		}
	}()

	for v := l.reader.Page(pageNum).V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.Kind() != pdf.Array || box.Len() < 4 {
			continue
		}
		size = PageSize{
			Width:  box.Index(2).Float64() - box.Index(0).Float64(),
			Height: box.Index(3).Float64() - box.Index(1).Float64(),
		}
		return size, size.Valid()
	}
	return PageSize{}, false
}

// title returns the document information dictionary's Title entry.
func (l *ledongthucReader) title() (title string) {
	defer func() {
		if recover() != nil {
			title = ""
		}
	}()
	return l.reader.Trailer().Key("Info").Key("Title").Text()
}

// toChars converts ledongthuc glyph records to top-origin characters.
func toChars(texts []pdf.Text, pageHeight float64) []outline.Char {
	chars := make([]outline.Char, 0, len(texts))
	for _, t := range texts {
		if t.S == "" {
			continue
		}
		chars = append(chars, outline.Char{
			Text:     t.S,
			X0:       t.X,
			Top:      pageHeight - (t.Y + t.FontSize),
			Size:     t.FontSize,
			FontName: t.Font,
		})
	}
	return chars
}

// toRectangles converts ledongthuc path rectangles, normalizing corners so
// that LowerLeft is always the minimum.
func toRectangles(rects []pdf.Rect) []Rectangle {
	out := make([]Rectangle, 0, len(rects))
	for _, r := range rects {
		x0, x1 := r.Min.X, r.Max.X
		if x0 > x1 {
			x0, x1 = x1, x0
		}
		y0, y1 := r.Min.Y, r.Max.Y
		if y0 > y1 {
			y0, y1 = y1, y0
		}
		out = append(out, Rectangle{LowerLeft: Point{X: x0, Y: y0}, UpperRight: Point{X: x1, Y: y1}})
	}
	return out
}
