package library

import (
	"testing"

	"gamebot/internal/catalog"
)

func matchEntries() []catalog.Entry {
	return []catalog.Entry{
		{AppID: 400, Name: "Portal"},
		{AppID: 620, Name: "Portal 2"},
		{AppID: 70, Name: "Half-Life"},
		{AppID: 220, Name: "Half-Life 2"},
		{AppID: 570, Name: "Dota 2"},
	}
}

func TestRankMatchesExactBeatsPrefix(t *testing.T) {
	matches := rankMatches("portal", matchEntries())
	if len(matches) < 2 {
		t.Fatalf("expected at least 2 matches, got %d", len(matches))
	}
	if matches[0].Entry.Name != "Portal" {
		t.Fatalf("expected Portal first, got %q", matches[0].Entry.Name)
	}
	if matches[1].Entry.Name != "Portal 2" {
		t.Fatalf("expected Portal 2 second, got %q", matches[1].Entry.Name)
	}
	if matches[0].Score <= matches[1].Score {
		t.Fatalf("exact match must outscore prefix: %d vs %d", matches[0].Score, matches[1].Score)
	}
}

func TestRankMatchesCaseInsensitive(t *testing.T) {
	matches := rankMatches("HALF-LIFE 2", matchEntries())
	if len(matches) == 0 {
		t.Fatal("expected a match for uppercase query")
	}
	if matches[0].Entry.AppID != 220 {
		t.Fatalf("expected Half-Life 2, got %q", matches[0].Entry.Name)
	}
}

func TestRankMatchesPrefixTieBreakShortestName(t *testing.T) {
	entries := []catalog.Entry{
		{AppID: 2, Name: "Portal 2"},
		{AppID: 1, Name: "Portal 2: Deluxe"},
	}
	matches := rankMatches("portal", entries)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Entry.Name != "Portal 2" {
		t.Fatalf("shortest name should win the tie, got %q", matches[0].Entry.Name)
	}
}

func TestRankMatchesStableAcrossInputOrder(t *testing.T) {
	entries := matchEntries()
	reversed := make([]catalog.Entry, len(entries))
	for i, entry := range entries {
		reversed[len(entries)-1-i] = entry
	}

	a := rankMatches("half", entries)
	b := rankMatches("half", reversed)
	if len(a) != len(b) {
		t.Fatalf("match counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Entry.AppID != b[i].Entry.AppID {
			t.Fatalf("ordering depends on input order at index %d: %d vs %d",
				i, a[i].Entry.AppID, b[i].Entry.AppID)
		}
	}
}

func TestRankMatchesFuzzyTypo(t *testing.T) {
	matches := rankMatches("prtal", matchEntries())
	if len(matches) == 0 {
		t.Fatal("expected fuzzy match for typo")
	}
	if matches[0].Entry.Name != "Portal" {
		t.Fatalf("expected Portal for typo query, got %q", matches[0].Entry.Name)
	}
	if matches[0].Score >= scoreSubstring {
		t.Fatalf("fuzzy match must rank below substring tier, got score %d", matches[0].Score)
	}
}

func TestRankMatchesEmptyQuery(t *testing.T) {
	if matches := rankMatches("   ", matchEntries()); matches != nil {
		t.Fatalf("expected no matches for blank query, got %d", len(matches))
	}
}

func TestRankMatchesNoCandidates(t *testing.T) {
	if matches := rankMatches("xyzzy", matchEntries()); len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}
