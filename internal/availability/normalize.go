// Package availability turns raw calendar edits into a validated, merged
// availability submission.
package availability

import (
	"sort"

	"availability/internal/entities"
)

// SortSpans returns a copy of spans ordered by start.
func SortSpans(spans []entities.TimeSpan) []entities.TimeSpan {
	out := make([]entities.TimeSpan, len(spans))
	copy(out, spans)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

// MergeAdjacentSpans collapses runs of spans where one ends exactly where the
// next starts and their properties are equal. Input must be sorted by start.
func MergeAdjacentSpans(spans []entities.TimeSpan) []entities.TimeSpan {
	if len(spans) == 0 {
		return []entities.TimeSpan{}
	}

	result := make([]entities.TimeSpan, 0, len(spans))
	cur := spans[0]
	for _, s := range spans[1:] {
		if cur.End.Equal(s.Start) && entities.SpanPropsEqual(cur, s) {
			cur.End = s.End
			continue
		}
		result = append(result, cur)
		cur = s
	}
	return append(result, cur)
}
