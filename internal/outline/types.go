package outline

import "errors"

// ErrNoPages is returned when a document has zero pages.
var ErrNoPages = errors.New("document has no pages")

// Char is one glyph as reported by the PDF decoder. Top is measured from the
// top edge of the page.
type Char struct {
	Text     string  `json:"text"`
	X0       float64 `json:"x0"`
	Top      float64 `json:"top"`
	Size     float64 `json:"size"`
	FontName string  `json:"fontname"`
}

// Table is a detected table bounding box in top-origin coordinates.
type Table struct {
	X0     float64 `json:"x0"`
	Top    float64 `json:"top"`
	X1     float64 `json:"x1"`
	Bottom float64 `json:"bottom"`
}

// Page carries the geometry of a single page. Number is 1-based.
type Page struct {
	Number int     `json:"number"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Chars  []Char  `json:"chars"`
	Tables []Table `json:"tables,omitempty"`
}

// PageSource supplies per-page character geometry for one document.
type PageSource interface {
	// Pages returns every page of the document in order.
	Pages() ([]Page, error)
	// MetadataTitle returns the embedded document title, or "".
	MetadataTitle() string
}

// StaticSource is a PageSource backed by in-memory pages.
type StaticSource struct {
	PageList []Page
	Title    string
}

// Pages implements PageSource.
func (s *StaticSource) Pages() ([]Page, error) {
	return s.PageList, nil
}

// MetadataTitle implements PageSource.
func (s *StaticSource) MetadataTitle() string {
	return s.Title
}

// Line is a run of characters sharing one rounded vertical position.
type Line struct {
	Text     string
	Size     int
	FontName string
	Bold     bool
	X0       float64
	Page     int
	Top      float64
}

// Candidate is a heading candidate after merging. Tops lists the vertical
// position of every line that contributed to it.
type Candidate struct {
	Line
	Tops []float64
}

// Entry is one outline item.
type Entry struct {
	Level string `json:"level"`
	Text  string `json:"text"`
	Page  int    `json:"page"`
}

// Result is the outline of one document. The title never appears in Outline.
type Result struct {
	Title   string  `json:"title"`
	Outline []Entry `json:"outline"`
}
