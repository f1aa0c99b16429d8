package outline

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var urlMarkers = []string{"http://", "https://", "www.", "WWW."}

// Scorer decides which lines are heading candidates.
type Scorer struct {
	bodySize int
	pages    pageIndex
}

// NewScorer creates a scorer for one document.
func NewScorer(bodySize int, pages []Page) *Scorer {
	return &Scorer{bodySize: bodySize, pages: indexPages(pages)}
}

// Candidates returns the lines that qualify as headings, in input order.
func (s *Scorer) Candidates(lines []Line) []Line {
	var out []Line
	for _, l := range lines {
		if s.IsCandidate(l) {
			out = append(out, l)
		}
	}
	return out
}

// IsCandidate reports whether a line is larger than body text, or is styled
// as a numbered heading, and carries heading-like text.
func (s *Scorer) IsCandidate(l Line) bool {
	if !hasASCIILetter(l.Text) || isURLLike(l.Text) {
		return false
	}
	return l.Size > s.bodySize || s.isStyleHeading(l)
}

// isStyleHeading matches numbered headings set in body size, such as a bold
// "1. Introduction" flush with the left margin.
func (s *Scorer) isStyleHeading(l Line) bool {
	if !l.Bold {
		return false
	}
	width := s.pages.get(l.Page).Width
	if l.X0 >= width*LeftAlignRatio {
		return false
	}
	return startsWithDigit(l.Text) && utf8.RuneCountInString(l.Text) <= MaxStyleHeadingLen
}

func hasASCIILetter(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			return true
		}
	}
	return false
}

func isURLLike(s string) bool {
	for _, m := range urlMarkers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func startsWithDigit(s string) bool {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	r, _ := utf8.DecodeRuneInString(s)
	return r != utf8.RuneError && unicode.IsDigit(r)
}

// pageIndex maps a 1-based page number to its geometry.
type pageIndex map[int]Page

func indexPages(pages []Page) pageIndex {
	idx := make(pageIndex, len(pages))
	for i, p := range pages {
		n := p.Number
		if n == 0 {
			n = i + 1
		}
		idx[n] = p
	}
	return idx
}

func (idx pageIndex) get(n int) Page {
	return idx[n]
}
