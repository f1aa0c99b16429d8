package outline

// BodySize returns the most frequent line size. Ties go to the size seen
// first; an empty document falls back to DefaultBodySize.
func BodySize(lines []Line) int {
	if len(lines) == 0 {
		return DefaultBodySize
	}

	counts := make(map[int]int)
	var order []int
	for _, l := range lines {
		if counts[l.Size] == 0 {
			order = append(order, l.Size)
		}
		counts[l.Size]++
	}

	best := order[0]
	for _, size := range order[1:] {
		if counts[size] > counts[best] {
			best = size
		}
	}
	return best
}
