package outline

import (
	"math"
	"strings"
	"unicode/utf8"
)

// ExcludeConflicts removes paragraph-length candidates and every pair of
// candidates that overlap vertically on one page while using different
// fonts, then drops colon-terminated labels.
//
// An overlap usually means two rendering streams share the same band, for
// example a watermark over a heading, and neither can be trusted.
func ExcludeConflicts(candidates []Candidate) []Candidate {
	excluded := make([]bool, len(candidates))

	for i, a := range candidates {
		if utf8.RuneCountInString(a.Text) >= MaxHeadingLen {
			excluded[i] = true
			continue
		}
		for j := i + 1; j < len(candidates); j++ {
			b := candidates[j]
			if a.Page != b.Page || a.FontName == b.FontName {
				continue
			}
			if overlaps(a.Tops, b.Tops) {
				excluded[i] = true
				excluded[j] = true
			}
		}
	}

	out := make([]Candidate, 0, len(candidates))
	for i, c := range candidates {
		if excluded[i] || strings.HasSuffix(strings.TrimSpace(c.Text), ":") {
			continue
		}
		out = append(out, c)
	}
	return out
}

func overlaps(a, b []float64) bool {
	for _, y1 := range a {
		for _, y2 := range b {
			if math.Abs(y1-y2) < OverlapTolerance {
				return true
			}
		}
	}
	return false
}
