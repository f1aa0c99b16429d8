package pdf

import (
	"fmt"
	"os"
	"strings"

	pdferrors "github.com/a3tai/pdf-outline/internal/pdf/errors"
	"github.com/a3tai/pdf-outline/internal/pdf/wrapper"
	"github.com/spf13/afero"
)

// Validator handles PDF file validation operations
type Validator struct {
	fs          afero.Fs
	maxFileSize int64
}

// NewValidator creates a new PDF validator with the specified constraints
func NewValidator(fs afero.Fs, maxFileSize int64) *Validator {
	return &Validator{
		fs:          fs,
		maxFileSize: maxFileSize,
	}
}

// ValidateFile checks the file and opens it to count its pages. Problems are
// reported in the result, not as an error.
func (v *Validator) ValidateFile(req PDFValidateFileRequest) (*PDFValidateFileResult, error) {
	result := &PDFValidateFileResult{
		Path:  req.Path,
		Valid: false,
	}

	data, err := v.ReadFile(req.Path)
	if err != nil {
		result.Message = err.Error()
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}

	doc, err := wrapper.OpenBytes(req.Path, data)
	if err != nil {
		result.Message = fmt.Sprintf("invalid PDF file: %v", err)
		return result, nil //nolint:nilerr // Return result with validation error, not a processing error
	}
	defer doc.Close()

	result.Pages = doc.NumPages()
	if result.Pages == 0 {
		result.Message = "document has no pages"
		return result, nil
	}

	result.Valid = true
	return result, nil
}

// ReadFile validates the file's metadata and returns its contents.
func (v *Validator) ReadFile(filePath string) ([]byte, error) {
	if filePath == "" {
		return nil, pdferrors.FileInvalid(filePath, "path cannot be empty")
	}

	info, err := v.fs.Stat(filePath)
	if os.IsNotExist(err) {
		return nil, pdferrors.FileInvalid(filePath, "file does not exist")
	}
	if err != nil {
		return nil, pdferrors.CannotOpen(filePath, err)
	}
	if err := v.ValidateFileInfo(filePath, info); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(v.fs, filePath)
	if err != nil {
		return nil, pdferrors.CannotOpen(filePath, err)
	}
	return data, nil
}

// ValidateFileInfo performs basic validation on file info without opening the PDF
func (v *Validator) ValidateFileInfo(filePath string, info os.FileInfo) error {
	if info.IsDir() {
		return pdferrors.FileInvalid(filePath, "path is a directory, not a file")
	}
	if !isPDFName(filePath) {
		return pdferrors.FileInvalid(filePath, "file is not a PDF")
	}
	return v.ValidateSize(filePath, info.Size())
}

// ValidateSize rejects empty payloads and payloads over the size limit
func (v *Validator) ValidateSize(name string, size int64) error {
	if size == 0 {
		return pdferrors.FileInvalid(name, "file is empty")
	}
	if size > v.maxFileSize {
		return pdferrors.FileInvalid(name, fmt.Sprintf("file too large: %d bytes (max: %d bytes)", size, v.maxFileSize))
	}
	return nil
}

// IsValidPDF performs a quick check to see if a file is a valid PDF
func (v *Validator) IsValidPDF(filePath string) bool {
	result, err := v.ValidateFile(PDFValidateFileRequest{Path: filePath})
	return err == nil && result.Valid
}

func isPDFName(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".pdf")
}
