package wrapper

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/a3tai/pdf-outline/internal/outline"
)

// source is what Document needs from a backing store.
type source interface {
	io.ReaderAt
	io.ReadSeeker
}

// Document is an open PDF that serves per-character layout to the outline
// pipeline. It combines ledongthuc/pdf (glyphs, rectangles, metadata) with
// pdfcpu (page dimensions).
type Document struct {
	name   string
	file   *os.File
	lib    *ledongthucReader
	dims   []PageSize
	closed bool

	malformed []int
	pageErrs  map[int]error
}

var _ outline.PageSource = (*Document)(nil)

// Open opens the PDF at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &WrapperError{
			Library: LibraryLedongthuc,
			Op:      "open_file",
			Err:     fmt.Errorf("failed to open file: %w", err),
		}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &WrapperError{
			Library: LibraryLedongthuc,
			Op:      "open_file",
			Err:     fmt.Errorf("failed to stat file: %w", err),
		}
	}

	doc, err := newDocument(path, f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	doc.file = f
	return doc, nil
}

// OpenBytes opens an in-memory PDF. name is used only in error messages.
func OpenBytes(name string, data []byte) (*Document, error) {
	return newDocument(name, bytes.NewReader(data), int64(len(data)))
}

func newDocument(name string, src source, size int64) (*Document, error) {
	lib, err := openLedongthuc(src, size)
	if err != nil {
		return nil, err
	}

	// pdfcpu is stricter than ledongthuc; when it cannot read the document
	// the MediaBox fallback still applies.
	dims, _ := readPageDims(src)

	return &Document{name: name, lib: lib, dims: dims}, nil
}

// Name returns the path or name the document was opened with.
func (d *Document) Name() string {
	return d.name
}

// NumPages returns the page count.
func (d *Document) NumPages() int {
	if d.closed {
		return 0
	}
	return d.lib.numPages()
}

// PageSize resolves a page's dimensions: pdfcpu first, then the ledongthuc
// MediaBox, then US Letter.
func (d *Document) PageSize(pageNum int) PageSize {
	if d.closed || pageNum < 1 {
		return LetterSize
	}
	if len(d.dims) == d.lib.numPages() && pageNum <= len(d.dims) && d.dims[pageNum-1].Valid() {
		return d.dims[pageNum-1]
	}
	if size, ok := d.lib.mediaBox(pageNum); ok {
		return size
	}
	return LetterSize
}

// Page returns the layout of one page. A page whose content cannot be
// decoded is returned without characters and tables alongside the error.
func (d *Document) Page(pageNum int) (outline.Page, error) {
	if d.closed {
		return outline.Page{}, &WrapperError{Library: LibraryLedongthuc, Op: "page", Err: ErrDocumentClosed.Err}
	}
	if pageNum < 1 || pageNum > d.lib.numPages() {
		return outline.Page{}, &WrapperError{
			Library: LibraryLedongthuc,
			Op:      "page",
			Err:     fmt.Errorf("%w %d (document has %d pages)", ErrInvalidPage.Err, pageNum, d.lib.numPages()),
		}
	}

	size := d.PageSize(pageNum)
	page := outline.Page{Number: pageNum, Width: size.Width, Height: size.Height}

	content, err := d.lib.content(pageNum)
	if err != nil {
		return page, err
	}
	page.Chars = toChars(content.Text, size.Height)
	page.Tables = DetectTables(toRectangles(content.Rect), size.Height)
	return page, nil
}

// Pages returns every page in order. Pages with undecodable content are
// kept, empty, so page numbering stays intact.
func (d *Document) Pages() ([]outline.Page, error) {
	if d.closed {
		return nil, &WrapperError{Library: LibraryLedongthuc, Op: "pages", Err: ErrDocumentClosed.Err}
	}

	n := d.lib.numPages()
	pages := make([]outline.Page, 0, n)
	d.malformed = d.malformed[:0]
	d.pageErrs = make(map[int]error)
	for i := 1; i <= n; i++ {
		page, err := d.Page(i)
		if err != nil {
			d.malformed = append(d.malformed, i)
			d.pageErrs[i] = err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// MalformedPages lists the pages whose content could not be decoded during
// the last call to Pages.
func (d *Document) MalformedPages() []int {
	return d.malformed
}

// PageError returns why a page listed by MalformedPages could not be
// decoded, or nil.
func (d *Document) PageError(pageNum int) error {
	return d.pageErrs[pageNum]
}

// MetadataTitle returns the Info dictionary title, or "" when absent.
func (d *Document) MetadataTitle() string {
	if d.closed {
		return ""
	}
	return d.lib.title()
}

// Close releases the underlying file, if any.
func (d *Document) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
