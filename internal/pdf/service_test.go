package pdf

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/a3tai/pdf-outline/internal/outline"
	pdferrors "github.com/a3tai/pdf-outline/internal/pdf/errors"
	"github.com/a3tai/pdf-outline/internal/pdf/pdftest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRoot = "/srv/pdf-outline-test-docs"

func newTestService(t *testing.T, files map[string][]byte) (*Service, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(testRoot, 0o755))
	for name, data := range files {
		path := filepath.Join(testRoot, name)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
	}

	var logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, nil))
	svc, err := NewService(10*1024*1024, testRoot, WithFs(fs), WithLogger(log))
	require.NoError(t, err)
	return svc, &logs
}

func reportEntries() []outline.Entry {
	return []outline.Entry{
		{Level: "H1", Text: "1. Overview", Page: 1},
		{Level: "H1", Text: "2. Summary", Page: 1},
	}
}

func TestNewService(t *testing.T) {
	_, err := NewService(1024, "")
	assert.Error(t, err)

	svc, err := NewService(1024, testRoot)
	require.NoError(t, err)
	assert.Equal(t, int64(1024), svc.GetMaxFileSize())
	assert.Equal(t, testRoot, svc.Root())
}

func TestService_OutlineFile(t *testing.T) {
	svc, logs := newTestService(t, map[string][]byte{"report.pdf": pdftest.Report().Bytes()})

	res, err := svc.OutlineFile(PDFOutlineFileRequest{Path: testRoot + "/report.pdf"})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Pages)
	assert.Equal(t, "Acme Corp Annual Report", res.Title)
	assert.Equal(t, reportEntries(), res.Outline)
	assert.Empty(t, res.MalformedPages)
	assert.Contains(t, logs.String(), "document outlined")
	assert.Contains(t, logs.String(), "entries=2")
}

func TestService_OutlineFile_MalformedPage(t *testing.T) {
	report := pdftest.Report()
	report.MissingPages = 1
	svc, logs := newTestService(t, map[string][]byte{"report.pdf": report.Bytes()})

	res, err := svc.OutlineFile(PDFOutlineFileRequest{Path: testRoot + "/report.pdf"})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, "Acme Corp Annual Report", res.Title)
	assert.Equal(t, reportEntries(), res.Outline)
	assert.Equal(t, []int{2}, res.MalformedPages)

	out := logs.String()
	assert.Contains(t, out, "page content skipped")
	assert.Contains(t, out, "page=2")
	assert.Contains(t, out, "[MALFORMED_PAGE] page content could not be decoded")
	assert.Contains(t, out, "page 2 is null")
}

func TestService_OutlineFile_Errors(t *testing.T) {
	svc, _ := newTestService(t, map[string][]byte{
		"broken.pdf": []byte("%PDF-1.4 this is not really a pdf"),
		"empty.pdf":  {},
		"notes.txt":  []byte("hello"),
	})

	tests := []struct {
		name string
		path string
		want error
	}{
		{name: "missing", path: testRoot + "/missing.pdf", want: pdferrors.ErrFileInvalid},
		{name: "empty", path: testRoot + "/empty.pdf", want: pdferrors.ErrFileInvalid},
		{name: "wrong extension", path: testRoot + "/notes.txt", want: pdferrors.ErrFileInvalid},
		{name: "unparseable", path: testRoot + "/broken.pdf", want: pdferrors.ErrCannotOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.OutlineFile(PDFOutlineFileRequest{Path: tt.path})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestService_OutlineBytes(t *testing.T) {
	svc, _ := newTestService(t, nil)

	res, err := svc.OutlineBytes("upload.pdf", pdftest.Report().Bytes())
	require.NoError(t, err)
	assert.Equal(t, &outline.Result{Title: "Acme Corp Annual Report", Outline: reportEntries()}, res)

	_, err = svc.OutlineBytes("empty.pdf", nil)
	assert.ErrorIs(t, err, pdferrors.ErrFileInvalid)

	_, err = svc.OutlineBytes("junk.pdf", []byte("junk"))
	assert.ErrorIs(t, err, pdferrors.ErrCannotOpen)
}

func TestService_OutlineBytes_NoPages(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.OutlineBytes("blank.pdf", pdftest.Doc{}.Bytes())
	assert.ErrorIs(t, err, pdferrors.ErrNoPages)
	assert.Equal(t, pdferrors.TitleNoPages, FailedResult(err).Title)
}

func TestService_OutlineBytes_TooLarge(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc, err := NewService(16, testRoot, WithFs(fs))
	require.NoError(t, err)

	_, err = svc.OutlineBytes("big.pdf", pdftest.Report().Bytes())
	assert.ErrorIs(t, err, pdferrors.ErrFileInvalid)
	assert.Contains(t, err.Error(), "file too large")
}

func TestService_OutlineDirectory(t *testing.T) {
	svc, logs := newTestService(t, map[string][]byte{
		"a-report.pdf": pdftest.Report().Bytes(),
		"b-broken.pdf": []byte("junk"),
		"readme.md":    []byte("# docs"),
	})

	res, err := svc.OutlineDirectory(PDFOutlineDirectoryRequest{})
	require.NoError(t, err)

	assert.Equal(t, testRoot, res.Directory)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, 1, res.FailedCount)
	require.Len(t, res.Documents, 2)

	assert.Equal(t, "Acme Corp Annual Report", res.Documents[0].Title)
	assert.Equal(t, reportEntries(), res.Documents[0].Outline)
	assert.Empty(t, res.Documents[0].Error)

	assert.Equal(t, pdferrors.TitleCannotOpen, res.Documents[1].Title)
	assert.Empty(t, res.Documents[1].Outline)
	assert.NotEmpty(t, res.Documents[1].Error)
	assert.Contains(t, logs.String(), "document failed")
}

func TestService_RelativePathsResolveUnderRoot(t *testing.T) {
	svc, _ := newTestService(t, map[string][]byte{"reports/report.pdf": pdftest.Report().Bytes()})

	res, err := svc.OutlineFile(PDFOutlineFileRequest{Path: "reports/report.pdf"})
	require.NoError(t, err)
	assert.Equal(t, testRoot+"/reports/report.pdf", res.Path)
	assert.Equal(t, reportEntries(), res.Outline)

	res, err = svc.OutlineFile(PDFOutlineFileRequest{Path: "reports/report\x00.pdf"})
	require.NoError(t, err)
	assert.Equal(t, testRoot+"/reports/report.pdf", res.Path)

	valid, err := svc.ValidateFile(PDFValidateFileRequest{Path: "reports/report.pdf"})
	require.NoError(t, err)
	assert.True(t, valid.Valid)
	assert.Equal(t, testRoot+"/reports/report.pdf", valid.Path)

	_, err = svc.OutlineFile(PDFOutlineFileRequest{Path: "\x00"})
	assert.Error(t, err)
}

func TestService_ValidateFile(t *testing.T) {
	svc, _ := newTestService(t, map[string][]byte{
		"report.pdf": pdftest.Report().Bytes(),
		"junk.pdf":   []byte("junk"),
	})

	res, err := svc.ValidateFile(PDFValidateFileRequest{Path: testRoot + "/report.pdf"})
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Equal(t, 1, res.Pages)

	res, err = svc.ValidateFile(PDFValidateFileRequest{Path: testRoot + "/junk.pdf"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "invalid PDF file")

	res, err = svc.ValidateFile(PDFValidateFileRequest{Path: testRoot + "/none.pdf"})
	require.NoError(t, err)
	assert.False(t, res.Valid)
	assert.Contains(t, res.Message, "file does not exist")
}

func TestService_SearchDirectory(t *testing.T) {
	svc, _ := newTestService(t, map[string][]byte{
		"annual_report_2024.pdf": []byte("x"),
		"invoice-march.PDF":      []byte("x"),
		"sub/nested-report.pdf":  []byte("x"),
		".hidden/secret.pdf":     []byte("x"),
		"empty.pdf":              {},
		"notes.txt":              []byte("x"),
	})

	res, err := svc.SearchDirectory(PDFSearchDirectoryRequest{})
	require.NoError(t, err)
	names := make([]string, 0, len(res.Files))
	for _, f := range res.Files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"annual_report_2024.pdf", "invoice-march.PDF", "nested-report.pdf"}, names)

	res, err = svc.SearchDirectory(PDFSearchDirectoryRequest{Directory: testRoot, Query: "report"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.TotalCount)
	assert.Equal(t, "report", res.SearchQuery)

	_, err = svc.SearchDirectory(PDFSearchDirectoryRequest{Directory: testRoot + "/nope"})
	assert.Error(t, err)
}

func TestService_ListPDFs(t *testing.T) {
	svc, _ := newTestService(t, map[string][]byte{
		"b.pdf":     []byte("x"),
		"a.PDF":     []byte("x"),
		"sub/c.pdf": []byte("x"),
		"empty.pdf": {},
	})

	files, err := svc.ListPDFs(testRoot)
	require.NoError(t, err)
	var names []string
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"a.PDF", "b.pdf", "empty.pdf"}, names)
}

func TestMatchesQuery(t *testing.T) {
	tests := []struct {
		filename string
		query    string
		want     bool
	}{
		{"annual_report_2024.pdf", "", true},
		{"annual_report_2024.pdf", "report", true},
		{"annual_report_2024.pdf", "annual 2024", true},
		{"annual_report_2024.pdf", "invoice", false},
		{"Invoice-March.pdf", "march", true},
	}
	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, matchesQuery(tt.filename, tt.query))
		})
	}
}

func TestFailedResult(t *testing.T) {
	assert.Equal(t, &outline.Result{Title: pdferrors.TitleCannotOpen, Outline: []outline.Entry{}},
		FailedResult(assert.AnError))
	assert.Equal(t, pdferrors.TitleNoPages, FailedResult(pdferrors.NoPages("x.pdf")).Title)
}
