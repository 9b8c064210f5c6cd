package ranking

import (
	"SchoolPick/entity"
	"cmp"
	"math"
	"slices"
)

// Rank orders the schools for mode. Schools must be in catalog order; the
// sort is stable, so catalog order breaks every tie.
//
// ByReason: descending count, missing counts are zero.
// ByDistance: ascending meters, unresolved distances last.
func Rank(mode SortMode, schools []entity.School, counts map[string]int64, distances map[string]entity.DistanceRecord) []entity.LeaderboardEntry {
	entries := make([]entity.LeaderboardEntry, len(schools))
	for i, s := range schools {
		entries[i] = entity.LeaderboardEntry{
			School: s,
			Count:  counts[s.Code],
		}
		if d, ok := distances[s.Code]; ok {
			entries[i].Distance = &d
		}
	}

	slices.SortStableFunc(entries, comparator(mode))

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

func comparator(mode SortMode) func(a, b entity.LeaderboardEntry) int {
	switch mode.(type) {
	case ByDistance:
		return byDistance
	case ByReason:
		return byCount
	}
	panic("ranking: unhandled sort mode")
}

func byCount(a, b entity.LeaderboardEntry) int {
	return cmp.Compare(b.Count, a.Count)
}

func byDistance(a, b entity.LeaderboardEntry) int {
	ar, br := resolved(a.Distance), resolved(b.Distance)
	switch {
	case ar && br:
		return cmp.Compare(a.Distance.Meters, b.Distance.Meters)
	case ar:
		return -1
	case br:
		return 1
	}
	return 0
}

func resolved(d *entity.DistanceRecord) bool {
	return d != nil && d.Resolved && !math.IsNaN(d.Meters) && !math.IsInf(d.Meters, 0)
}
