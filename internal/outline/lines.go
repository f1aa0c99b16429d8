package outline

import (
	"math"
	"sort"
	"strings"
)

// AssembleLines groups the characters of every page into visual lines. Lines
// are returned page by page, top to bottom.
func AssembleLines(pages []Page) []Line {
	var lines []Line
	for i, page := range pages {
		number := page.Number
		if number == 0 {
			number = i + 1
		}
		lines = append(lines, assemblePage(page.Chars, number)...)
	}
	return lines
}

func assemblePage(chars []Char, pageNum int) []Line {
	if len(chars) == 0 {
		return nil
	}

	buckets := make(map[float64][]Char)
	for _, c := range chars {
		key := roundHalfEven(c.Top)
		buckets[key] = append(buckets[key], c)
	}

	keys := make([]float64, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Float64s(keys)

	var lines []Line
	for _, top := range keys {
		if line, ok := buildLine(buckets[top], pageNum, top); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// buildLine turns one bucket into a Line. Buckets mixing font sizes, or
// starting bold and degrading to regular weight, are rejected.
func buildLine(chars []Char, pageNum int, top float64) (Line, bool) {
	sort.SliceStable(chars, func(i, j int) bool {
		return chars[i].X0 < chars[j].X0
	})

	sizes := make(map[float64]struct{})
	allBold := true
	var text strings.Builder
	var sizeSum float64
	for _, c := range chars {
		sizes[roundHalfEven(c.Size)] = struct{}{}
		if !isBold(c.FontName) {
			allBold = false
		}
		text.WriteString(c.Text)
		sizeSum += c.Size
	}

	if len(sizes) > 1 {
		return Line{}, false
	}
	if len(chars) > 1 && isBold(chars[0].FontName) && !allBold {
		return Line{}, false
	}

	normalized := Normalize(text.String())
	if normalized == "" {
		return Line{}, false
	}

	return Line{
		Text:     normalized,
		Size:     int(roundHalfEven(sizeSum / float64(len(chars)))),
		FontName: chars[0].FontName,
		Bold:     allBold,
		X0:       chars[0].X0,
		Page:     pageNum,
		Top:      top,
	}, true
}

func isBold(fontName string) bool {
	return strings.Contains(strings.ToLower(fontName), "bold")
}

func roundHalfEven(v float64) float64 {
	return math.RoundToEven(v)
}
