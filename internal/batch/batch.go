// Package batch outlines every PDF in an input directory and writes one JSON
// file per document into an output directory.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/a3tai/pdf-outline/internal/outline"
	"github.com/a3tai/pdf-outline/internal/pdf"
	"github.com/a3tai/pdf-outline/internal/render"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
)

// Outliner lists and outlines documents. *pdf.Service implements it.
type Outliner interface {
	ListPDFs(directory string) ([]pdf.FileInfo, error)
	OutlinePath(path string) (*pdf.PDFOutlineFileResult, error)
}

// Config controls a batch run
type Config struct {
	InputDir  string
	OutputDir string
	Workers   int
}

// Summary reports the outcome of a run. Err combines the per-document
// failures; each failed document still has an error result on disk.
// Skipped counts documents left unprocessed because the run was cancelled,
// so Total is always Succeeded + Failed + Skipped.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Duration  time.Duration
	Err       error
}

// Processor runs batches
type Processor struct {
	fs       afero.Fs
	outliner Outliner
	cfg      Config
	log      *slog.Logger
}

// New creates a processor. Output files are written through fs.
func New(fs afero.Fs, outliner Outliner, cfg Config, log *slog.Logger) *Processor {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Processor{fs: fs, outliner: outliner, cfg: cfg, log: log}
}

// Run outlines every PDF in the input directory on a bounded worker pool.
// The returned error is reserved for failures that stop the whole run;
// document failures are reported in Summary.Err.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	start := time.Now()

	if err := p.fs.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	files, err := p.outliner.ListPDFs(p.cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("list input directory: %w", err)
	}
	p.log.Info("batch started", "input", p.cfg.InputDir, "output", p.cfg.OutputDir, "files", len(files), "workers", p.cfg.Workers)

	var (
		mu      sync.Mutex
		summary = &Summary{Total: len(files)}
	)
	workers := pool.New().WithMaxGoroutines(p.cfg.Workers)
	for _, f := range files {
		workers.Go(func() {
			if ctx.Err() != nil {
				mu.Lock()
				summary.Skipped++
				mu.Unlock()
				return
			}
			err := p.ProcessFile(f.Path)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed++
				summary.Err = multierr.Append(summary.Err, err)
				return
			}
			summary.Succeeded++
		})
	}
	workers.Wait()

	summary.Duration = time.Since(start)
	p.log.Info("batch finished",
		"total", summary.Total,
		"succeeded", summary.Succeeded,
		"failed", summary.Failed,
		"skipped", summary.Skipped,
		"duration_ms", summary.Duration.Milliseconds(),
	)
	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// ProcessFile outlines one document and writes its JSON result. When the
// document cannot be outlined an error result is written and the error is
// returned.
func (p *Processor) ProcessFile(path string) error {
	res, docErr := p.outliner.OutlinePath(path)

	var out *outline.Result
	if docErr != nil {
		out = pdf.FailedResult(docErr)
		p.log.Error("document failed", "file", path, "error", docErr)
	} else {
		out = res.Result()
	}

	if err := p.writeResult(OutputPath(p.cfg.OutputDir, path), out); err != nil {
		return multierr.Append(docErr, err)
	}
	return docErr
}

// writeResult writes through a uniquely named temporary file so readers
// never observe a partial document and concurrent writers of the same
// result do not collide.
func (p *Processor) writeResult(path string, res *outline.Result) error {
	f, err := afero.TempFile(p.fs, filepath.Dir(path), filepath.Base(path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file for %s: %w", path, err)
	}
	tmp := f.Name()

	writeErr := render.JSON(f, res)
	closeErr := f.Close()
	if err := multierr.Combine(writeErr, closeErr); err != nil {
		_ = p.fs.Remove(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}

	if err := p.fs.Rename(tmp, path); err != nil {
		_ = p.fs.Remove(tmp)
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}

// OutputPath maps an input document to <outputDir>/<stem>.json.
func OutputPath(outputDir, input string) string {
	name := filepath.Base(input)
	if ext := filepath.Ext(name); strings.EqualFold(ext, ".pdf") {
		name = strings.TrimSuffix(name, ext)
	}
	return filepath.Join(outputDir, name+".json")
}
