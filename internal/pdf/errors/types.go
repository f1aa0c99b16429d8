package errors

import (
	"errors"
	"fmt"
)

// OutlineError describes why a document could not be outlined
type OutlineError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	Path       string    `json:"path,omitempty"`
	PageNumber int       `json:"page_number,omitempty"`
	Err        error     `json:"-"`
}

// ErrorType represents the categories of outline failures
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeCannotOpen
	ErrorTypeNoPages
	ErrorTypeFileInvalid
	ErrorTypeMalformedPage
)

// Titles written in place of a document title when outlining fails
const (
	TitleCannotOpen = "Error: Could not open document"
	TitleNoPages    = "Error: Document has no pages"
)

// Error implements the error interface
func (e *OutlineError) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Type, e.Message)
	if e.Path != "" {
		msg += ": " + e.Path
	}
	if e.PageNumber > 0 {
		msg += fmt.Sprintf(" (page %d)", e.PageNumber)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *OutlineError) Unwrap() error {
	return e.Err
}

// Is matches any OutlineError of the same type, so callers can test
// against the sentinel values below.
func (e *OutlineError) Is(target error) bool {
	t, ok := target.(*OutlineError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// String returns a string representation of the ErrorType
func (et ErrorType) String() string {
	switch et {
	case ErrorTypeCannotOpen:
		return "CANNOT_OPEN"
	case ErrorTypeNoPages:
		return "NO_PAGES"
	case ErrorTypeFileInvalid:
		return "FILE_INVALID"
	case ErrorTypeMalformedPage:
		return "MALFORMED_PAGE"
	default:
		return "UNKNOWN"
	}
}

// Title returns the document title recorded for a failed document
func (et ErrorType) Title() string {
	switch et {
	case ErrorTypeNoPages:
		return TitleNoPages
	default:
		return TitleCannotOpen
	}
}

// Sentinels for errors.Is
var (
	ErrCannotOpen    = &OutlineError{Type: ErrorTypeCannotOpen}
	ErrNoPages       = &OutlineError{Type: ErrorTypeNoPages}
	ErrFileInvalid   = &OutlineError{Type: ErrorTypeFileInvalid}
	ErrMalformedPage = &OutlineError{Type: ErrorTypeMalformedPage}
)

// CannotOpen reports a document that could not be opened or parsed
func CannotOpen(path string, err error) *OutlineError {
	return &OutlineError{Type: ErrorTypeCannotOpen, Message: "could not open document", Path: path, Err: err}
}

// NoPages reports a document without pages
func NoPages(path string) *OutlineError {
	return &OutlineError{Type: ErrorTypeNoPages, Message: "document has no pages", Path: path}
}

// FileInvalid reports a file rejected before parsing
func FileInvalid(path, message string) *OutlineError {
	return &OutlineError{Type: ErrorTypeFileInvalid, Message: message, Path: path}
}

// MalformedPage reports a page whose content could not be decoded
func MalformedPage(path string, page int, err error) *OutlineError {
	return &OutlineError{Type: ErrorTypeMalformedPage, Message: "page content could not be decoded", Path: path, PageNumber: page, Err: err}
}

// TitleFor returns the error title for err, or "" when err is not an
// OutlineError.
func TitleFor(err error) string {
	var oe *OutlineError
	if !errors.As(err, &oe) {
		return ""
	}
	return oe.Type.Title()
}
