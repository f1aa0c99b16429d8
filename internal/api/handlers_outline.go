package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	pdferrors "github.com/a3tai/pdf-outline/internal/pdf/errors"
	"github.com/a3tai/pdf-outline/internal/render"
)

// multipartOverhead is the allowance for form boundaries and headers on top
// of the maximum document size.
const multipartOverhead = 1 << 20

// handleOutline accepts a PDF either as the "file" field of a multipart form
// or as the raw request body, and answers with its outline. The optional
// "format" query parameter selects json (default), md or html.
func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	maxSize := s.outliner.GetMaxFileSize()
	r.Body = http.MaxBytesReader(w, r.Body, maxSize+multipartOverhead)

	name, data, err := readUpload(r, maxSize)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge), errors.Is(err, errTooLarge):
			jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", maxSize), http.StatusRequestEntityTooLarge)
		default:
			jsonError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}

	res, err := s.outliner.OutlineBytes(name, data)
	if err != nil {
		s.log.Warn("outline failed", "file", name, "error", err)
		jsonError(w, err.Error(), statusFor(err))
		return
	}

	var buf bytes.Buffer
	if err := render.Render(&buf, format, res); err != nil {
		jsonError(w, "failed to render outline", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

var errTooLarge = errors.New("file too large")

// readUpload returns the uploaded file name and content.
func readUpload(r *http.Request, maxSize int64) (string, []byte, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	var (
		name = "upload.pdf"
		src  io.Reader
	)
	if mediaType == "multipart/form-data" {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return "", nil, fmt.Errorf("invalid multipart form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()

		file, header, err := r.FormFile("file")
		if err != nil {
			return "", nil, fmt.Errorf("file is required: %w", err)
		}
		defer file.Close()

		name = sanitizeFilename(header.Filename)
		src = file
	} else {
		src = r.Body
	}

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return "", nil, err
	}
	if int64(len(data)) > maxSize {
		return "", nil, errTooLarge
	}
	return name, data, nil
}

// statusFor maps outline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pdferrors.ErrFileInvalid):
		return http.StatusBadRequest
	case errors.Is(err, pdferrors.ErrCannotOpen), errors.Is(err, pdferrors.ErrNoPages):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func contentType(format render.Format) string {
	switch format {
	case render.FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case render.FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/json"
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Keep only the base name
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." || name == "/" {
		name = "upload.pdf"
	}
	return name
}
