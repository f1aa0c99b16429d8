package outline

import (
	"math"
	"sort"
	"unicode/utf8"
)

// CenteredCollapser thins out long runs of centered candidates such as cover
// pages and letterhead banners.
type CenteredCollapser struct {
	pages pageIndex
}

// NewCenteredCollapser creates a collapser for one document.
func NewCenteredCollapser(pages []Page) *CenteredCollapser {
	return &CenteredCollapser{pages: indexPages(pages)}
}

// IsCentered estimates the rendered width of c and reports whether its
// midpoint lies near the horizontal center of its page.
func (cc *CenteredCollapser) IsCentered(c Candidate) bool {
	width := cc.pages.get(c.Page).Width
	textWidth := float64(utf8.RuneCountInString(c.Text)) * float64(c.Size) * GlyphWidthFactor
	mid := c.X0 + textWidth/2
	return math.Abs(mid-width/2) < width*CenterMarginRatio
}

// Apply keeps runs of up to MaxCenteredRun centered candidates as they are
// and reduces longer runs to their MaxCenteredRun largest members.
func (cc *CenteredCollapser) Apply(candidates []Candidate) []Candidate {
	out := make([]Candidate, 0, len(candidates))
	for i := 0; i < len(candidates); {
		if !cc.IsCentered(candidates[i]) {
			out = append(out, candidates[i])
			i++
			continue
		}

		j := i + 1
		for j < len(candidates) && candidates[j].Page == candidates[i].Page && cc.IsCentered(candidates[j]) {
			j++
		}
		out = append(out, collapseRun(candidates[i:j])...)
		i = j
	}
	return out
}

func collapseRun(run []Candidate) []Candidate {
	if len(run) <= MaxCenteredRun {
		return run
	}

	bySize := make([]Candidate, len(run))
	copy(bySize, run)
	sort.SliceStable(bySize, func(i, j int) bool {
		return bySize[i].Size > bySize[j].Size
	})

	kept := bySize[:MaxCenteredRun]
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Top < kept[j].Top
	})
	return kept
}
