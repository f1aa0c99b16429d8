package wrapper

import (
	"math"
	"sort"

	"github.com/a3tai/pdf-outline/internal/outline"
)

const (
	// ruleThickness is the largest extent a rectangle may have across its
	// long axis and still be drawn as a ruling line.
	ruleThickness = 3.0
	// joinTolerance is how far apart two rules may be and still touch.
	joinTolerance = 3.0
)

// rule is a horizontal or vertical ruling segment.
type rule struct {
	horizontal bool
	pos        float64 // y for horizontal rules, x for vertical ones
	start, end float64
}

// rulesFromRects turns path rectangles into ruling segments. Thin
// rectangles are lines; larger ones contribute their four edges.
func rulesFromRects(rects []Rectangle) []rule {
	var rules []rule
	for _, r := range rects {
		x0, y0 := r.LowerLeft.X, r.LowerLeft.Y
		x1, y1 := r.UpperRight.X, r.UpperRight.Y
		w, h := x1-x0, y1-y0

		switch {
		case h <= ruleThickness && w > ruleThickness:
			rules = append(rules, rule{horizontal: true, pos: (y0 + y1) / 2, start: x0, end: x1})
		case w <= ruleThickness && h > ruleThickness:
			rules = append(rules, rule{horizontal: false, pos: (x0 + x1) / 2, start: y0, end: y1})
		case w > ruleThickness && h > ruleThickness:
			rules = append(rules,
				rule{horizontal: true, pos: y0, start: x0, end: x1},
				rule{horizontal: true, pos: y1, start: x0, end: x1},
				rule{horizontal: false, pos: x0, start: y0, end: y1},
				rule{horizontal: false, pos: x1, start: y0, end: y1},
			)
		}
	}
	return rules
}

// touches reports whether two rules intersect or overlap within
// joinTolerance.
func touches(a, b rule) bool {
	if a.horizontal == b.horizontal {
		return math.Abs(a.pos-b.pos) <= joinTolerance &&
			a.start <= b.end+joinTolerance && b.start <= a.end+joinTolerance
	}
	h, v := a, b
	if !h.horizontal {
		h, v = b, a
	}
	return v.pos >= h.start-joinTolerance && v.pos <= h.end+joinTolerance &&
		h.pos >= v.start-joinTolerance && h.pos <= v.end+joinTolerance
}

// DetectTables finds ruled table regions among a page's rectangles. A
// region is a connected group of rules with at least two distinct
// horizontal and two distinct vertical positions. Bounding boxes are
// returned in top-origin coordinates for a page of the given height.
func DetectTables(rects []Rectangle, pageHeight float64) []outline.Table {
	rules := rulesFromRects(rects)
	if len(rules) < 4 {
		return nil
	}

	parent := make([]int, len(rules))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	for i := range rules {
		for j := i + 1; j < len(rules); j++ {
			if touches(rules[i], rules[j]) {
				parent[find(i)] = find(j)
			}
		}
	}

	groups := make(map[int][]rule)
	var roots []int
	for i, r := range rules {
		root := find(i)
		if _, ok := groups[root]; !ok {
			roots = append(roots, root)
		}
		groups[root] = append(groups[root], r)
	}

	var tables []outline.Table
	for _, root := range roots {
		group := groups[root]
		var hs, vs []float64
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, r := range group {
			if r.horizontal {
				hs = append(hs, r.pos)
				minX, maxX = math.Min(minX, r.start), math.Max(maxX, r.end)
				minY, maxY = math.Min(minY, r.pos), math.Max(maxY, r.pos)
			} else {
				vs = append(vs, r.pos)
				minY, maxY = math.Min(minY, r.start), math.Max(maxY, r.end)
				minX, maxX = math.Min(minX, r.pos), math.Max(maxX, r.pos)
			}
		}
		if distinct(hs) < 2 || distinct(vs) < 2 {
			continue
		}
		tables = append(tables, outline.Table{
			X0:     minX,
			Top:    pageHeight - maxY,
			X1:     maxX,
			Bottom: pageHeight - minY,
		})
	}

	sort.SliceStable(tables, func(i, j int) bool {
		if tables[i].Top != tables[j].Top {
			return tables[i].Top < tables[j].Top
		}
		return tables[i].X0 < tables[j].X0
	})
	return tables
}

// distinct counts positions that differ from their predecessor by more than
// joinTolerance.
func distinct(positions []float64) int {
	if len(positions) == 0 {
		return 0
	}
	sorted := append([]float64(nil), positions...)
	sort.Float64s(sorted)
	n := 1
	last := sorted[0]
	for _, p := range sorted[1:] {
		if p-last > joinTolerance {
			n++
			last = p
		}
	}
	return n
}
