package outline

import "sort"

// headingBuilder accumulates wrapped lines of one heading until a line that
// does not continue it arrives.
type headingBuilder struct {
	line Line
	tops []float64
}

func newHeadingBuilder(l Line) *headingBuilder {
	return &headingBuilder{line: l, tops: []float64{l.Top}}
}

// continues reports whether next is a wrapped continuation of the heading.
func (b *headingBuilder) continues(next Line) bool {
	if next.Page != b.line.Page {
		return false
	}
	if absInt(next.Size-b.line.Size) > SizeTolerance {
		return false
	}
	return next.Top-b.line.Top <= float64(b.line.Size)*MergeGapFactor
}

func (b *headingBuilder) add(next Line) {
	b.line.Text += " " + next.Text
	b.line.Top = next.Top
	b.tops = append(b.tops, next.Top)
}

func (b *headingBuilder) freeze() Candidate {
	tops := make([]float64, len(b.tops))
	copy(tops, b.tops)
	return Candidate{Line: b.line, Tops: tops}
}

// MergeLines sorts candidates by page and vertical position and joins
// consecutive lines that belong to one wrapped heading.
func MergeLines(lines []Line) []Candidate {
	if len(lines) == 0 {
		return nil
	}

	sorted := make([]Line, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Page != sorted[j].Page {
			return sorted[i].Page < sorted[j].Page
		}
		return sorted[i].Top < sorted[j].Top
	})

	var out []Candidate
	cur := newHeadingBuilder(sorted[0])
	for _, next := range sorted[1:] {
		if cur.continues(next) {
			cur.add(next)
			continue
		}
		out = append(out, cur.freeze())
		cur = newHeadingBuilder(next)
	}
	return append(out, cur.freeze())
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
