package resolve

import (
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
	"golang.org/x/text/cases"
)

// suggestThreshold is the minimum Jaro-Winkler similarity for a "did you mean" hint.
const suggestThreshold = 0.8

// fold applies Unicode case folding; a Caser keeps state, so one is made per call.
func fold(s string) string {
	return cases.Fold().String(s)
}

// Completer answers completion queries over a fixed candidate set.
// Candidates are kept sorted by their case-folded form so a prefix query
// is a binary search followed by a linear scan of the matching run.
type Completer struct {
	candidates []string
	folded     []string
}

// NewCompleter builds a completer over the given candidates. Duplicates are dropped.
func NewCompleter(candidates []string) *Completer {
	seen := make(map[string]bool, len(candidates))
	var unique []string
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			unique = append(unique, c)
		}
	}
	sort.SliceStable(unique, func(i, j int) bool {
		fi, fj := fold(unique[i]), fold(unique[j])
		if fi == fj {
			return unique[i] < unique[j]
		}
		return fi < fj
	})

	c := &Completer{candidates: unique, folded: make([]string, len(unique))}
	for i, s := range unique {
		c.folded[i] = fold(s)
	}
	return c
}

// Candidates returns all candidates in completion order.
func (c *Completer) Candidates() []string {
	return append([]string(nil), c.candidates...)
}

// Complete returns the candidates starting with partial, ignoring case.
func (c *Completer) Complete(partial string) []string {
	prefix := fold(partial)
	start := sort.SearchStrings(c.folded, prefix)

	var out []string
	for i := start; i < len(c.folded) && strings.HasPrefix(c.folded[i], prefix); i++ {
		out = append(out, c.candidates[i])
	}
	return out
}

// Suggest returns the candidate closest to input, if any is close enough.
func (c *Completer) Suggest(input string) (string, bool) {
	if input == "" {
		return "", false
	}
	best, bestScore := "", 0.0
	in := fold(input)
	for i, f := range c.folded {
		score := matchr.JaroWinkler(in, f, false)
		if score > bestScore {
			best, bestScore = c.candidates[i], score
		}
	}
	if bestScore < suggestThreshold {
		return "", false
	}
	return best, true
}
