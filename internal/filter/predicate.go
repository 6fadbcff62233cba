package filter

import (
	"strings"

	"github.com/mesh-intelligence/achievements/pkg/types"
)

// Apply returns the records matching every set clause of s, in input order:
// the title contains TitleQuery ignoring case, the category equals Category,
// and the date falls within StartDate..EndDate inclusive. The input is never
// modified.
func Apply(recs []types.Achievement, s State) []types.Achievement {
	out := make([]types.Achievement, 0, len(recs))
	needle := strings.ToLower(s.TitleQuery)
	for _, rec := range recs {
		if Match(rec, s, needle) {
			out = append(out, rec)
		}
	}
	return out
}

// Match reports whether rec satisfies s. needle is the lowercased title
// query; pass strings.ToLower(s.TitleQuery).
func Match(rec types.Achievement, s State, needle string) bool {
	if needle != "" && !strings.Contains(strings.ToLower(rec.Title), needle) {
		return false
	}
	if s.Category != "" && rec.Category != s.Category {
		return false
	}
	if !s.StartDate.IsZero() && rec.Date.Before(s.StartDate) {
		return false
	}
	if !s.EndDate.IsZero() && rec.Date.After(s.EndDate) {
		return false
	}
	return true
}
