package outline

import "strings"

// CleanText collapses every whitespace run to a single space and trims both
// ends.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// DedupeRepeats collapses runs of MinRepeatRun or more identical runes into a
// single rune. Shorter runs are kept, so "book" and "..": survive intact.
func DedupeRepeats(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(runes); {
		n := 1
		for i+n < len(runes) && runes[i+n] == runes[i] {
			n++
		}
		if n >= MinRepeatRun {
			b.WriteRune(runes[i])
		} else {
			for _, r := range runes[i : i+n] {
				b.WriteRune(r)
			}
		}
		i += n
	}
	return b.String()
}

// Normalize applies CleanText then DedupeRepeats.
func Normalize(s string) string {
	return DedupeRepeats(CleanText(s))
}
