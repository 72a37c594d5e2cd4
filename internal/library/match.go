package library

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"

	"gamebot/internal/catalog"
)

// Match is one ranked lookup candidate.
type Match struct {
	Entry catalog.Entry
	Score int
}

// Match tiers. Exact beats prefix beats substring beats fuzzy subsequence;
// the fuzzy library's own score only orders candidates within the last tier.
const (
	scoreExact     = 1000
	scorePrefix    = 800
	scoreSubstring = 600
)

// foldName normalizes a name for case-insensitive comparison.
// Casers are stateful, so each call builds its own.
func foldName(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

type entrySource []catalog.Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// rankMatches scores entries against query. Ordering is deterministic:
// score descending, then shortest name (most specific match), then name.
func rankMatches(query string, entries []catalog.Entry) []Match {
	folded := foldName(query)
	if folded == "" {
		return nil
	}

	matches := make([]Match, 0, 8)
	claimed := make(map[int64]struct{}, 8)

	for _, entry := range entries {
		name := foldName(entry.Name)
		var score int
		switch {
		case name == folded:
			score = scoreExact
		case strings.HasPrefix(name, folded):
			score = scorePrefix
		case strings.Contains(name, folded):
			score = scoreSubstring
		default:
			continue
		}
		matches = append(matches, Match{Entry: entry, Score: score})
		claimed[entry.AppID] = struct{}{}
	}

	// Fuzzy subsequence matching catches typos the substring tiers miss.
	for _, fm := range fuzzy.FindFrom(folded, entrySource(entries)) {
		entry := entries[fm.Index]
		if _, ok := claimed[entry.AppID]; ok {
			continue
		}
		score := fm.Score
		if score >= scoreSubstring {
			score = scoreSubstring - 1
		}
		if score < 0 {
			continue
		}
		matches = append(matches, Match{Entry: entry, Score: score})
	}

	slices.SortFunc(matches, func(a, b Match) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		if len(a.Entry.Name) != len(b.Entry.Name) {
			return len(a.Entry.Name) - len(b.Entry.Name)
		}
		return strings.Compare(a.Entry.Name, b.Entry.Name)
	})

	return matches
}
