package torrentx

import (
	"strings"

	"debrid-streamer/pkg/types"
)

// ApplyPolicy returns the candidates whose titles satisfy the policy.
// Every include list is AND-ed (empty list = no constraint, any term in
// a list may match); a single exclude hit rejects. Matching is
// case-insensitive substring containment on the whole title.
//
// Filtering is strict: a constraint that matches nothing yields an
// empty list, there is no fallback to the unfiltered set.
func ApplyPolicy(cands []types.Candidate, p types.PreferencePolicy) []types.Candidate {
	if p.Empty() {
		return cands
	}
	out := make([]types.Candidate, 0, len(cands))
	for _, c := range cands {
		title := strings.ToLower(c.Title)
		if !passes(title, p.Quality) || !passes(title, p.Codec) || !passes(title, p.Audio) {
			continue
		}
		if containsAny(title, p.Exclude) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// passes reports whether the title satisfies one include list.
func passes(title string, terms []string) bool {
	return len(terms) == 0 || containsAny(title, terms)
}

func containsAny(title string, terms []string) bool {
	for _, t := range terms {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" && strings.Contains(title, t) {
			return true
		}
	}
	return false
}
