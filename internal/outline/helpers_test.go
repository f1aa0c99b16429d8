package outline

import "unicode/utf8"

const (
	testPageWidth  = 612.0
	testPageHeight = 792.0
)

// textChars lays out text as one glyph per rune starting at x0.
func textChars(text string, x0, top, size float64, font string) []Char {
	chars := make([]Char, 0, utf8.RuneCountInString(text))
	x := x0
	for _, r := range text {
		chars = append(chars, Char{Text: string(r), X0: x, Top: top, Size: size, FontName: font})
		x += size * 0.5
	}
	return chars
}

// centeredX returns the x0 at which IsCentered places text exactly in the
// middle of a test page.
func centeredX(text string, size float64) float64 {
	return testPageWidth/2 - float64(utf8.RuneCountInString(text))*size*GlyphWidthFactor/2
}

func page(n int, chars ...[]Char) Page {
	p := Page{Number: n, Width: testPageWidth, Height: testPageHeight}
	for _, c := range chars {
		p.Chars = append(p.Chars, c...)
	}
	return p
}

func bodyLines(from, step float64, count int) [][]Char {
	out := make([][]Char, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, textChars("Body paragraph text that is long enough", 72, from+float64(i)*step, 12, "Helvetica"))
	}
	return out
}
