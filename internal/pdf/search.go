package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// Search handles PDF discovery in a directory tree
type Search struct {
	fs        afero.Fs
	validator *Validator
}

// NewSearch creates a new PDF search handler
func NewSearch(fs afero.Fs, validator *Validator) *Search {
	return &Search{
		fs:        fs,
		validator: validator,
	}
}

// SearchDirectory walks the directory and returns the PDF files whose names
// match the query, sorted by path.
func (s *Search) SearchDirectory(req PDFSearchDirectoryRequest) (*PDFSearchDirectoryResult, error) {
	files, err := s.walk(req.Directory, true, strings.ToLower(strings.TrimSpace(req.Query)))
	if err != nil {
		return nil, err
	}

	return &PDFSearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   req.Directory,
		SearchQuery: req.Query,
	}, nil
}

// ListPDFs returns the PDF files directly inside directory, sorted by name.
// Size limits are not applied; oversized files are reported when processed.
func (s *Search) ListPDFs(directory string) ([]FileInfo, error) {
	return s.walk(directory, false, "")
}

func (s *Search) walk(directory string, recursive bool, query string) ([]FileInfo, error) {
	if directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	info, err := s.fs.Stat(directory)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", directory)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", directory)
	}

	files := []FileInfo{}
	err = afero.Walk(s.fs, directory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if info.IsDir() {
			if path == directory {
				return nil
			}
			if !recursive || strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if !isPDFName(info.Name()) {
			return nil
		}
		if recursive {
			if err := s.validator.ValidateFileInfo(path, info); err != nil {
				return nil //nolint:nilerr // Skip invalid files but continue processing
			}
		}
		if query != "" && !matchesQuery(info.Name(), query) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})
	return files, nil
}

// matchesQuery matches the query as a substring of the file name, or word by
// word against the name's separator-delimited parts.
func matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	name := strings.TrimSuffix(strings.ToLower(filename), ".pdf")
	if strings.Contains(strings.ToLower(filename), query) {
		return true
	}

	words := splitIntoWords(name)
	for _, q := range splitIntoWords(query) {
		found := false
		for _, w := range words {
			if strings.Contains(w, q) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// splitIntoWords splits a string on common file name separators
func splitIntoWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return strings.ContainsRune(" _-.()[]", r)
	})
}
