package library

import (
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"gamebot/internal/catalog"
)

// Genres returns every distinct genre in the cached library, sorted.
func (s *Service) Genres() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, entry := range s.cache.Games {
		for _, genre := range entry.Genres {
			seen[genre] = struct{}{}
		}
	}

	genres := make([]string, 0, len(seen))
	for genre := range seen {
		genres = append(genres, genre)
	}
	slices.Sort(genres)
	return genres
}

// SimilarGenres suggests library genres close to input: substring matches
// first, then fuzzy subsequence matches for typos. Ordering is alphabetical
// within each tier so suggestions are reproducible.
func (s *Service) SimilarGenres(input string) []string {
	folded := foldName(input)
	if folded == "" {
		return nil
	}

	genres := s.Genres()
	var similar []string
	claimed := make(map[string]struct{})

	for _, genre := range genres {
		if strings.Contains(genre, folded) || strings.Contains(folded, genre) {
			similar = append(similar, genre)
			claimed[genre] = struct{}{}
		}
	}

	fuzzed := fuzzy.Find(folded, genres)
	slices.SortFunc(fuzzed, func(a, b fuzzy.Match) int {
		return strings.Compare(a.Str, b.Str)
	})
	for _, match := range fuzzed {
		if _, ok := claimed[match.Str]; ok {
			continue
		}
		similar = append(similar, match.Str)
	}

	return similar
}

// Recommend picks a random cached game, optionally restricted to a genre.
// rng may be nil outside of tests. Returns ErrNotFound when the genre
// matches nothing; callers can offer SimilarGenres suggestions.
func (s *Service) Recommend(genre string, rng *rand.Rand) (catalog.Entry, error) {
	s.mu.RLock()
	entries := s.cache.Entries()
	s.mu.RUnlock()

	folded := foldName(genre)
	if folded != "" {
		filtered := entries[:0]
		for _, entry := range entries {
			if slices.Contains(entry.Genres, folded) {
				filtered = append(filtered, entry)
			}
		}
		entries = filtered
	}

	if len(entries) == 0 {
		if folded == "" {
			return catalog.Entry{}, fmt.Errorf("library is empty: %w", ErrNotFound)
		}
		return catalog.Entry{}, fmt.Errorf("no games with genre %q: %w", genre, ErrNotFound)
	}

	pick := func(n int) int {
		if rng != nil {
			return rng.Intn(n)
		}
		return rand.Intn(n)
	}
	return entries[pick(len(entries))], nil
}
