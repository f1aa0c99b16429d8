package pdf

import "github.com/a3tai/pdf-outline/internal/outline"

// FileInfo represents information about a PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// PDFOutlineFileRequest represents a request to outline one PDF file
type PDFOutlineFileRequest struct {
	Path string `json:"path"`
}

// PDFOutlineDirectoryRequest represents a request to outline every PDF in a directory
type PDFOutlineDirectoryRequest struct {
	Directory string `json:"directory"`
}

// PDFValidateFileRequest represents a request to validate a PDF file
type PDFValidateFileRequest struct {
	Path string `json:"path"`
}

// PDFSearchDirectoryRequest represents a request to search for PDF files in a directory
type PDFSearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// PDFOutlineFileResult is the outline of one document plus what was learned
// while reading it
type PDFOutlineFileResult struct {
	Path           string          `json:"path"`
	Pages          int             `json:"pages"`
	Title          string          `json:"title"`
	Outline        []outline.Entry `json:"outline"`
	MalformedPages []int           `json:"malformed_pages,omitempty"`
}

// Result returns the title/outline pair in output form
func (r *PDFOutlineFileResult) Result() *outline.Result {
	return &outline.Result{Title: r.Title, Outline: r.Outline}
}

// DocumentOutline is one entry of a directory run. Error is set, and Title
// carries the error title, when the document could not be outlined.
type DocumentOutline struct {
	Path    string          `json:"path"`
	Title   string          `json:"title"`
	Outline []outline.Entry `json:"outline"`
	Error   string          `json:"error,omitempty"`
}

// PDFOutlineDirectoryResult represents the result of outlining a directory
type PDFOutlineDirectoryResult struct {
	Directory   string            `json:"directory"`
	Documents   []DocumentOutline `json:"documents"`
	TotalCount  int               `json:"total_count"`
	FailedCount int               `json:"failed_count"`
}

// PDFValidateFileResult represents the result of a PDF validation operation
type PDFValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Pages   int    `json:"pages,omitempty"`
	Message string `json:"message,omitempty"`
}

// PDFSearchDirectoryResult represents the result of a PDF search operation
type PDFSearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}
