package suggest

import (
	"errors"
	"reflect"
	"testing"
)

func sampleSuggester(t *testing.T) *Suggester {
	t.Helper()
	s := NewSuggester()
	err := s.Fit(map[string]float64{
		"apple pie":        1.0,
		"pie apple":        20.0,
		"triple threat":    2.0,
		"banana boat":      3.0,
		"grape juice":      4.0,
		"apple bubble":     1.0,
		"blueberry muffin": 5.0,
		"i love apple":     2.0,
	})
	if err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return s
}

func entrySet(entries []Entry) map[Entry]struct{} {
	set := make(map[Entry]struct{}, len(entries))
	for _, e := range entries {
		set[e] = struct{}{}
	}
	return set
}

func TestSuggesterCount(t *testing.T) {
	s := sampleSuggester(t)
	// Both tries hold an independent copy of the corpus.
	if got := s.Count(); got != 16 {
		t.Errorf("Count() = %d, want 16", got)
	}
}

func TestSuggesterFitRejectsInvalidWeight(t *testing.T) {
	s := NewSuggester()
	err := s.Fit(map[string]float64{"apple": 0})
	if !errors.Is(err, ErrInvalidWeight) {
		t.Errorf("Fit with zero weight: got %v, want ErrInvalidWeight", err)
	}
}

func TestSuggesterSuggestMergesAndDeduplicates(t *testing.T) {
	s := sampleSuggester(t)

	results := s.Suggest("ple")
	if len(results) != len(entrySet(results)) {
		t.Errorf("Suggest(\"ple\") contains duplicates: %v", results)
	}

	want := map[Entry]struct{}{
		{20.0, "pie apple"}:    {},
		{1.0, "apple bubble"}:  {},
		{2.0, "i love apple"}:  {},
		{2.0, "triple threat"}: {},
		{1.0, "apple pie"}:     {},
	}
	if got := entrySet(results); !reflect.DeepEqual(got, want) {
		t.Errorf("Suggest(\"ple\") = %v, want %v", got, want)
	}
}

func TestSuggesterSuggestForwardAndBackward(t *testing.T) {
	s := sampleSuggester(t)

	results := entrySet(s.Suggest("apple"))
	// Forward: starts with "apple". Backward: contains "apple".
	for _, want := range []Entry{
		{1.0, "apple pie"},
		{1.0, "apple bubble"},
		{20.0, "pie apple"},
		{2.0, "i love apple"},
	} {
		if _, ok := results[want]; !ok {
			t.Errorf("Suggest(\"apple\") missing %v (got %v)", want, results)
		}
	}
	if _, ok := results[Entry{3.0, "banana boat"}]; ok {
		t.Error("Suggest(\"apple\") must not contain banana boat")
	}
}

func TestSuggestTrimmed(t *testing.T) {
	s := sampleSuggester(t)

	if got := s.SuggestTrimmed("applle"); len(got) != 0 {
		t.Errorf("SuggestTrimmed(\"applle\") = %v, want empty", got)
	}
	if got := s.SuggestTrimmed("a"); len(got) != 0 {
		t.Errorf("SuggestTrimmed on a single character = %v, want empty", got)
	}

	// Dropping the dead last character recovers matches for "ple".
	got := entrySet(s.SuggestTrimmed("plex"))
	if _, ok := got[Entry{20.0, "pie apple"}]; !ok {
		t.Errorf("SuggestTrimmed(\"plex\") = %v, want it to recover \"ple\" matches", got)
	}
}

func TestSuggestPerWord(t *testing.T) {
	s := sampleSuggester(t)

	results := s.SuggestPerWord("i love apple")
	set := entrySet(results)
	if _, ok := set[Entry{2.0, "i love apple"}]; !ok {
		t.Errorf("SuggestPerWord missing (2.0, \"i love apple\"): %v", set)
	}
	if _, ok := set[Entry{20.0, "pie apple"}]; !ok {
		t.Errorf("SuggestPerWord missing (20.0, \"pie apple\"): %v", set)
	}

	if got := s.SuggestPerWord("   "); len(got) != 0 {
		t.Errorf("SuggestPerWord of blank input = %v, want empty", got)
	}
}

func TestSuggesterComplete(t *testing.T) {
	s := sampleSuggester(t)

	query, suggestions, err := s.Complete("PLE!", 3)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if query != "ple" {
		t.Errorf("normalized query = %q, want \"ple\"", query)
	}
	want := []string{"pie apple", "triple threat", "i love apple"}
	if !reflect.DeepEqual(suggestions, want) {
		t.Errorf("Complete(\"PLE!\", 3) = %v, want %v", suggestions, want)
	}
}

func TestSuggesterCompleteEdgeCases(t *testing.T) {
	s := sampleSuggester(t)

	if _, _, err := s.Complete("ple", -1); !errors.Is(err, ErrInvalidLimit) {
		t.Errorf("negative k: got %v, want ErrInvalidLimit", err)
	}

	_, suggestions, err := s.Complete("ple", 0)
	if err != nil || len(suggestions) != 0 {
		t.Errorf("k = 0 should yield an empty list, got %v (%v)", suggestions, err)
	}

	query, suggestions, err := s.Complete("  ;;;  ", 10)
	if err != nil || query != "" || len(suggestions) != 0 {
		t.Errorf("empty normalized query: got (%q, %v, %v)", query, suggestions, err)
	}
}
