package outline

// StructuralFilter drops candidates sitting in running header/footer bands or
// inside a table below its first row.
type StructuralFilter struct {
	pages  pageIndex
	byPage map[int][]Line
}

// NewStructuralFilter creates a filter over the lines of one document.
func NewStructuralFilter(pages []Page, lines []Line) *StructuralFilter {
	byPage := make(map[int][]Line)
	for _, l := range lines {
		byPage[l.Page] = append(byPage[l.Page], l)
	}
	return &StructuralFilter{pages: indexPages(pages), byPage: byPage}
}

// Apply returns the candidates that pass both tests, in input order.
func (f *StructuralFilter) Apply(candidates []Line) []Line {
	out := make([]Line, 0, len(candidates))
	for _, c := range candidates {
		if f.inHeaderFooter(c) || f.insideTable(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (f *StructuralFilter) inHeaderFooter(c Line) bool {
	h := f.pages.get(c.Page).Height
	return c.Top < h*HeaderZoneRatio || c.Top > h*FooterZoneRatio
}

// insideTable reports whether c falls within a table's vertical span while
// some other line of the same span sits above it. The first row is exempt.
func (f *StructuralFilter) insideTable(c Line) bool {
	for _, tbl := range f.pages.get(c.Page).Tables {
		if c.Top < tbl.Top || c.Top > tbl.Bottom {
			continue
		}
		first, ok := f.firstLineIn(c.Page, tbl)
		if ok && c.Top > first {
			return true
		}
	}
	return false
}

func (f *StructuralFilter) firstLineIn(page int, tbl Table) (float64, bool) {
	var top float64
	found := false
	for _, l := range f.byPage[page] {
		if l.Top < tbl.Top || l.Top > tbl.Bottom {
			continue
		}
		if !found || l.Top < top {
			top = l.Top
			found = true
		}
	}
	return top, found
}
