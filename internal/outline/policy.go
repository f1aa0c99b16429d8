package outline

// Layout policy. Every threshold the pipeline applies lives here; none of them
// are configurable at runtime.
const (
	// HeaderZoneRatio and FooterZoneRatio bound the running header/footer bands
	// as fractions of page height.
	HeaderZoneRatio = 0.10
	FooterZoneRatio = 0.90

	// LeftAlignRatio is the fraction of page width a numbered heading must
	// start within.
	LeftAlignRatio = 0.15

	// TitleZoneRatio restricts title candidates to the upper part of page 1.
	TitleZoneRatio = 0.75

	// CenterMarginRatio is the allowed distance, as a fraction of page width,
	// between an estimated text midpoint and the page center.
	CenterMarginRatio = 0.15

	// GlyphWidthFactor estimates an average glyph advance as a fraction of
	// the font size.
	GlyphWidthFactor = 0.4

	// SizeTolerance is the font size difference treated as the same size.
	SizeTolerance = 1

	// MergeGapFactor scales the font size into the maximum vertical gap
	// between two wrapped lines of one heading.
	MergeGapFactor = 1.5

	// MaxStyleHeadingLen caps numbered body-size headings.
	MaxStyleHeadingLen = 100

	// MaxHeadingLen rejects paragraphs that were promoted by size alone.
	MaxHeadingLen = 200

	// OverlapTolerance is the vertical distance under which two candidates in
	// different fonts are considered to overlap.
	OverlapTolerance = 3.0

	// MinRepeatRun is the shortest run of one glyph collapsed by DedupeRepeats.
	MinRepeatRun = 3

	// MaxCenteredRun is the number of centered lines kept from a longer run.
	MaxCenteredRun = 2

	// DefaultBodySize is used when a document has no lines at all.
	DefaultBodySize = 12

	// NoTextTitle is reported when no line survives assembly and the document
	// carries no metadata title.
	NoTextTitle = "No text found in document"
)
