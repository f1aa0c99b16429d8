package outline

// TitleResolver picks the document title from page-1 heading candidates.
type TitleResolver struct {
	pages pageIndex
}

// NewTitleResolver creates a resolver for one document.
func NewTitleResolver(pages []Page) *TitleResolver {
	return &TitleResolver{pages: indexPages(pages)}
}

// Resolve returns the title text, the candidate it came from (nil when the
// title was taken from a fallback), and the candidates that remain eligible
// for the outline: everything strictly after the title.
func (r *TitleResolver) Resolve(candidates, lines []Line, metadataTitle string) (string, *Line, []Line) {
	chosen := r.pick(candidates)

	title := metadataTitle
	if chosen != nil {
		title = chosen.Text
	}
	if title == "" && len(lines) > 0 {
		title = lines[0].Text
	}

	if chosen == nil {
		return CleanText(title), nil, candidates
	}

	remaining := make([]Line, 0, len(candidates))
	for _, c := range candidates {
		if after(c, *chosen) {
			remaining = append(remaining, c)
		}
	}
	return CleanText(title), chosen, remaining
}

// pick returns the largest, then topmost, page-1 candidate in the title zone.
func (r *TitleResolver) pick(candidates []Line) *Line {
	limit := r.pages.get(1).Height * TitleZoneRatio

	var chosen *Line
	for i := range candidates {
		c := &candidates[i]
		if c.Page != 1 || c.Top >= limit {
			continue
		}
		if chosen == nil || c.Size > chosen.Size || (c.Size == chosen.Size && c.Top < chosen.Top) {
			chosen = c
		}
	}
	if chosen == nil {
		return nil
	}
	title := *chosen
	return &title
}

// after reports whether c comes strictly after t in reading order.
func after(c, t Line) bool {
	return c.Page > t.Page || (c.Page == t.Page && c.Top > t.Top)
}
