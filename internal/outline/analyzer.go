// Package outline infers a document title and heading hierarchy from the
// position, size and font of individual characters.
//
// The pipeline runs once per document: lines are assembled and normalized,
// the body size is estimated, candidates are scored, the title is chosen,
// header/footer and table rows are filtered out, wrapped headings are
// merged, centered banners and overlapping text are suppressed, and the
// survivors are clustered into levels by font size.
package outline

import (
	"fmt"
	"log/slog"
)

// Analyzer runs the outline pipeline. It holds no per-document state and may
// be shared between goroutines.
type Analyzer struct {
	log *slog.Logger
}

// NewAnalyzer creates an analyzer. A nil logger disables stage tracing.
func NewAnalyzer(log *slog.Logger) *Analyzer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{log: log}
}

// Analyze computes the title and outline of the document behind src.
func (a *Analyzer) Analyze(src PageSource) (*Result, error) {
	pages, err := src.Pages()
	if err != nil {
		return nil, fmt.Errorf("read pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	lines := AssembleLines(pages)
	if len(lines) == 0 {
		title := src.MetadataTitle()
		if title == "" {
			title = NoTextTitle
		}
		a.log.Debug("no lines assembled", "pages", len(pages))
		return &Result{Title: CleanText(title), Outline: []Entry{}}, nil
	}

	body := BodySize(lines)
	candidates := NewScorer(body, pages).Candidates(lines)

	title, chosen, remaining := NewTitleResolver(pages).Resolve(candidates, lines, src.MetadataTitle())
	filtered := NewStructuralFilter(pages, lines).Apply(remaining)
	merged := MergeLines(filtered)
	collapsed := NewCenteredCollapser(pages).Apply(merged)
	survivors := ExcludeConflicts(collapsed)
	entries := AssignLevels(survivors)

	a.log.Debug("outline stages",
		"pages", len(pages),
		"lines", len(lines),
		"body_size", body,
		"candidates", len(candidates),
		"title_from_candidate", chosen != nil,
		"filtered", len(filtered),
		"merged", len(merged),
		"collapsed", len(collapsed),
		"entries", len(entries),
	)

	return &Result{Title: title, Outline: entries}, nil
}

// Analyze runs a default Analyzer over src.
func Analyze(src PageSource) (*Result, error) {
	return NewAnalyzer(nil).Analyze(src)
}
