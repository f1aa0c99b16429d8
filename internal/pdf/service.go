package pdf

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/a3tai/pdf-outline/internal/outline"
	pdferrors "github.com/a3tai/pdf-outline/internal/pdf/errors"
	"github.com/a3tai/pdf-outline/internal/pdf/security"
	"github.com/a3tai/pdf-outline/internal/pdf/wrapper"
	"github.com/spf13/afero"
)

// Service handles PDF outline operations by orchestrating validation,
// discovery and the outline pipeline
type Service struct {
	maxFileSize   int64
	fs            afero.Fs
	validator     *Validator
	search        *Search
	analyzer      *outline.Analyzer
	pathValidator *security.PathValidator
	log           *slog.Logger
}

// Option customizes a Service
type Option func(*Service)

// WithFs replaces the operating system filesystem
func WithFs(fs afero.Fs) Option {
	return func(s *Service) { s.fs = fs }
}

// WithLogger sets the logger used for per-document logs and stage tracing
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a new PDF service confined to configuredDirectory
func NewService(maxFileSize int64, configuredDirectory string, opts ...Option) (*Service, error) {
	pathValidator, err := security.NewPathValidator(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	s := &Service{
		maxFileSize:   maxFileSize,
		fs:            afero.NewOsFs(),
		pathValidator: pathValidator,
		log:           slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.validator = NewValidator(s.fs, maxFileSize)
	s.search = NewSearch(s.fs, s.validator)
	s.analyzer = outline.NewAnalyzer(s.log)
	return s, nil
}

// OutlineFile computes the title and outline of one PDF file. Relative paths
// are taken relative to the configured directory.
func (s *Service) OutlineFile(req PDFOutlineFileRequest) (*PDFOutlineFileResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.outlineFile(path)
}

func (s *Service) outlineFile(path string) (*PDFOutlineFileResult, error) {
	data, err := s.validator.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return s.outlineDocument(path, data)
}

// OutlineBytes computes the outline of an in-memory PDF. name identifies the
// document in logs and errors.
func (s *Service) OutlineBytes(name string, data []byte) (*outline.Result, error) {
	if err := s.validator.ValidateSize(name, int64(len(data))); err != nil {
		return nil, err
	}
	res, err := s.outlineDocument(name, data)
	if err != nil {
		return nil, err
	}
	return res.Result(), nil
}

func (s *Service) outlineDocument(name string, data []byte) (*PDFOutlineFileResult, error) {
	start := time.Now()

	doc, err := wrapper.OpenBytes(name, data)
	if err != nil {
		return nil, pdferrors.CannotOpen(name, err)
	}
	defer doc.Close()

	res, err := s.analyzer.Analyze(doc)
	if errors.Is(err, outline.ErrNoPages) {
		return nil, pdferrors.NoPages(name)
	}
	if err != nil {
		return nil, pdferrors.CannotOpen(name, err)
	}

	for _, page := range doc.MalformedPages() {
		s.log.Warn("page content skipped",
			"file", name,
			"page", page,
			"error", pdferrors.MalformedPage(name, page, doc.PageError(page)),
		)
	}
	s.log.Info("document outlined",
		"file", name,
		"pages", doc.NumPages(),
		"entries", len(res.Outline),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &PDFOutlineFileResult{
		Path:           name,
		Pages:          doc.NumPages(),
		Title:          res.Title,
		Outline:        res.Outline,
		MalformedPages: doc.MalformedPages(),
	}, nil
}

// OutlineDirectory outlines every PDF directly inside a directory. Documents
// that fail are reported with an error title; they do not fail the call.
func (s *Service) OutlineDirectory(req PDFOutlineDirectoryRequest) (*PDFOutlineDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.Root()
	}
	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	files, err := s.search.ListPDFs(req.Directory)
	if err != nil {
		return nil, err
	}

	result := &PDFOutlineDirectoryResult{
		Directory: req.Directory,
		Documents: make([]DocumentOutline, 0, len(files)),
	}
	for _, f := range files {
		doc := DocumentOutline{Path: f.Path}
		res, err := s.outlineFile(f.Path)
		if err != nil {
			failed := FailedResult(err)
			doc.Title, doc.Outline, doc.Error = failed.Title, failed.Outline, err.Error()
			result.FailedCount++
			s.log.Error("document failed", "file", f.Path, "error", err)
		} else {
			doc.Title, doc.Outline = res.Title, res.Outline
		}
		result.Documents = append(result.Documents, doc)
	}
	result.TotalCount = len(result.Documents)
	return result, nil
}

// ValidateFile performs validation on a PDF file
func (s *Service) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	req.Path = path
	return s.validator.ValidateFile(req)
}

// SearchDirectory searches for PDF files in a directory
func (s *Service) SearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	if req.Directory == "" {
		req.Directory = s.pathValidator.Root()
	}
	if err := s.pathValidator.ValidateDirectory(req.Directory); err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}
	return s.search.SearchDirectory(req)
}

// ListPDFs returns the PDF files directly inside directory, without path
// confinement. It backs the batch driver, whose directories come from the
// operator rather than from tool calls.
func (s *Service) ListPDFs(directory string) ([]FileInfo, error) {
	return s.search.ListPDFs(directory)
}

// OutlinePath outlines a file without path confinement; see ListPDFs.
func (s *Service) OutlinePath(path string) (*PDFOutlineFileResult, error) {
	return s.outlineFile(path)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// Root returns the directory tool paths are confined to
func (s *Service) Root() string {
	return s.pathValidator.Root()
}

// FailedResult is the output recorded for a document that could not be
// outlined: an error title and an empty outline.
func FailedResult(err error) *outline.Result {
	title := pdferrors.TitleFor(err)
	if title == "" {
		title = pdferrors.TitleCannotOpen
	}
	return &outline.Result{Title: title, Outline: []outline.Entry{}}
}
