package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/pdf-outline/internal/batch"
	"github.com/a3tai/pdf-outline/internal/config"
	"github.com/a3tai/pdf-outline/internal/outline"
	pdferrors "github.com/a3tai/pdf-outline/internal/pdf/errors"
	"github.com/a3tai/pdf-outline/internal/pdf/pdftest"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append(args, "--dir="+t.TempDir()))
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestPrintVersion(t *testing.T) {
	oldVersion, oldBuildTime, oldGitCommit := version, buildTime, gitCommit
	version, buildTime, gitCommit = "1.2.3", "2023-12-01_10:30:00", "abc123"
	defer func() {
		version, buildTime, gitCommit = oldVersion, oldBuildTime, oldGitCommit
	}()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)

	for _, want := range []string{
		"PDF Outline",
		"Version: 1.2.3",
		"Build Time: 2023-12-01_10:30:00",
		"Git Commit: abc123",
		"Built with:",
	} {
		assert.Contains(t, stdout, want)
	}
}

func TestFileCommand(t *testing.T) {
	path := pdftest.Report().WriteFile(t, t.TempDir(), "report.pdf")

	stdout, stderr, err := execute(t, "file", path)
	require.NoError(t, err)

	var got outline.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, "Acme Corp Annual Report", got.Title)
	assert.Len(t, got.Outline, 2)
	assert.Contains(t, stderr, "document outlined")
}

func TestFileCommand_Markdown(t *testing.T) {
	path := pdftest.Report().WriteFile(t, t.TempDir(), "report.pdf")

	stdout, _, err := execute(t, "file", path, "--format=md", "--loglevel=error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# Acme Corp Annual Report\n")
}

func TestFileCommand_Errors(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "file", filepath.Join(dir, "missing.pdf"))
	assert.ErrorIs(t, err, pdferrors.ErrFileInvalid)

	_, _, err = execute(t, "file", filepath.Join(dir, "missing.pdf"), "--format=docx")
	assert.ErrorContains(t, err, "unknown output format")

	_, _, err = execute(t, "file")
	assert.Error(t, err)
}

func TestBatchCommand(t *testing.T) {
	in, out := t.TempDir(), filepath.Join(t.TempDir(), "out")
	pdftest.Report().WriteFile(t, in, "report.pdf")
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.pdf"), []byte("not a pdf"), 0o644))

	stdout, _, err := execute(t, "batch", "--input="+in, "--output="+out, "--workers=2", "--logformat=json")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Processed 2 document(s): 1 succeeded, 1 failed, 0 skipped in ")

	data, err := os.ReadFile(filepath.Join(out, "report.json"))
	require.NoError(t, err)
	var got outline.Result
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "Acme Corp Annual Report", got.Title)

	data, err = os.ReadFile(filepath.Join(out, "broken.json"))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, pdferrors.TitleCannotOpen, got.Title)
	assert.Empty(t, got.Outline)
}

func TestPrintSummary_CancelledRun(t *testing.T) {
	var b strings.Builder
	printSummary(&b, &batch.Summary{Total: 5, Succeeded: 2, Failed: 1, Skipped: 2, Duration: 1500 * time.Microsecond})
	assert.Equal(t, "Processed 5 document(s): 2 succeeded, 1 failed, 2 skipped in 2ms\n", b.String())
}

func TestBatchCommand_InvalidConfig(t *testing.T) {
	_, _, err := execute(t, "batch", "--workers=0")
	assert.ErrorContains(t, err, "workers must be positive")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	log := newLogger(&buf, &config.Config{LogLevel: "warn", LogFormat: config.LogFormatJSON})
	log.Info("hidden")
	log.Warn("shown", "file", "a.pdf")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "a.pdf", entry["file"])

	buf.Reset()
	log = newLogger(&buf, &config.Config{LogLevel: "debug", LogFormat: config.LogFormatText})
	log.Debug("traced")
	assert.Contains(t, buf.String(), "level=DEBUG msg=traced")
}
