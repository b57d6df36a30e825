package tracker

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// UnknownItemError is returned when input does not resolve to exactly one
// item name. Suggestions holds the closest candidates, best first.
type UnknownItemError struct {
	Input       string
	Suggestions []string
}

func (e *UnknownItemError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("unknown item %q", e.Input)
	}
	return fmt.Sprintf("unknown item %q, did you mean: %s", e.Input, strings.Join(e.Suggestions, "; "))
}

type scored struct {
	val   string
	score float64
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

// match resolves input against names. Exact matches win, then unique
// substring matches, then a single close edit-distance match.
func match(input string, names []string) (string, error) {
	token := normalise(input)
	if token == "" {
		return "", &UnknownItemError{Input: input}
	}

	results := make([]scored, 0, len(names))
	for _, cand := range names {
		n := normalise(cand)
		var score float64
		switch {
		case token == n:
			return cand, nil
		case strings.Contains(n, token) && len(token) >= 2:
			score = 0.9
		default:
			dist := levenshtein.ComputeDistance(token, n)
			if dist > levenshteinLimit(len(n)) {
				continue
			}
			score = 0.72 - (0.08 * float64(dist))
		}
		results = append(results, scored{val: cand, score: score})
	}
	if len(results) == 0 {
		return "", &UnknownItemError{Input: input, Suggestions: nearest(token, names, 3)}
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].score == results[j].score {
			return results[i].val < results[j].val
		}
		return results[i].score > results[j].score
	})

	best := results[0]
	if len(results) > 1 && best.score-results[1].score < 0.05 {
		var tied []string
		for _, r := range results {
			if best.score-r.score < 0.05 {
				tied = append(tied, r.val)
			}
		}
		return "", &UnknownItemError{Input: input, Suggestions: tied}
	}
	return best.val, nil
}

// nearest returns up to n names ordered by edit distance to token.
func nearest(token string, names []string, n int) []string {
	type dist struct {
		val string
		d   int
	}
	all := make([]dist, 0, len(names))
	for _, cand := range names {
		all = append(all, dist{val: cand, d: levenshtein.ComputeDistance(token, normalise(cand))})
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].d == all[j].d {
			return all[i].val < all[j].val
		}
		return all[i].d < all[j].d
	})

	out := make([]string, 0, n)
	for i := 0; i < len(all) && i < n; i++ {
		out = append(out, all[i].val)
	}
	return out
}

func normalise(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}
