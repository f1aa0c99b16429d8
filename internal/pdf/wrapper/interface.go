package wrapper

import (
	"fmt"
)

// LibraryType names the PDF library that served an operation
type LibraryType string

const (
	LibraryPDFCPU     LibraryType = "pdfcpu"
	LibraryLedongthuc LibraryType = "ledongthuc"
)

// PageSize represents the dimensions of a PDF page in points
type PageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// LetterSize is used when a page declares no usable box
var LetterSize = PageSize{Width: 612, Height: 792}

// Valid reports whether both dimensions are positive
func (s PageSize) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Point represents a coordinate point
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rectangle is an axis-aligned box in PDF user space (origin bottom-left)
type Rectangle struct {
	LowerLeft  Point `json:"lower_left"`
	UpperRight Point `json:"upper_right"`
}

// Error types for wrapper operations
type WrapperError struct {
	Library LibraryType `json:"library"`
	Op      string      `json:"operation"`
	Err     error       `json:"error"`
}

func (e *WrapperError) Error() string {
	return fmt.Sprintf("PDF %s library error in %s: %v", e.Library, e.Op, e.Err)
}

func (e *WrapperError) Unwrap() error {
	return e.Err
}

// Common error variables
var (
	ErrDocumentClosed = &WrapperError{Op: "document", Err: fmt.Errorf("document is closed")}
	ErrInvalidPage    = &WrapperError{Op: "page", Err: fmt.Errorf("invalid page number")}
)
