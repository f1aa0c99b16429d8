package outline

import (
	"fmt"
	"sort"
)

// LevelMap assigns heading levels to font sizes. The largest remaining size
// anchors a cluster that absorbs every smaller size within SizeTolerance of
// it; clusters are numbered H1, H2, ... from largest to smallest.
func LevelMap(candidates []Candidate) map[int]string {
	seen := make(map[int]struct{})
	var sizes []int
	for _, c := range candidates {
		if _, ok := seen[c.Size]; ok {
			continue
		}
		seen[c.Size] = struct{}{}
		sizes = append(sizes, c.Size)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))

	levels := make(map[int]string, len(sizes))
	cluster := 0
	for i := 0; i < len(sizes); {
		cluster++
		anchor := sizes[i]
		label := fmt.Sprintf("H%d", cluster)
		for i < len(sizes) && absInt(sizes[i]-anchor) <= SizeTolerance {
			levels[sizes[i]] = label
			i++
		}
	}
	return levels
}

// AssignLevels converts candidates into outline entries, preserving their
// order.
func AssignLevels(candidates []Candidate) []Entry {
	levels := LevelMap(candidates)
	entries := make([]Entry, 0, len(candidates))
	for _, c := range candidates {
		level, ok := levels[c.Size]
		if !ok {
			continue
		}
		entries = append(entries, Entry{Level: level, Text: c.Text, Page: c.Page})
	}
	return entries
}
