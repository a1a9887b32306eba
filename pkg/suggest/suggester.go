package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/screengreen/suggestive-service/internal/utils"
)

// Suggester owns one forward and one reversed trie fitted from the same
// corpus and composes their lookups into a deduplicated candidate set. The
// caller ranks and truncates.
type Suggester struct {
	trie     *Trie
	reversed *ReversedTrie
}

// NewSuggester returns an empty suggester.
func NewSuggester() *Suggester {
	return &Suggester{
		trie:     NewTrie(),
		reversed: NewReversedTrie(),
	}
}

// Fit inserts every (query, weight) pair into both tries. Intended to run
// exactly once at startup; fitting again behaves as repeated insertion.
func (s *Suggester) Fit(corpus map[string]float64) error {
	for query, weight := range corpus {
		if err := s.trie.Insert(query, weight); err != nil {
			return err
		}
		if err := s.reversed.Insert(query, weight); err != nil {
			return err
		}
	}
	log.Debugf("Fitted suggester with %d corpus entries", len(corpus))
	return nil
}

// Count returns the sum of both tries' counts, which is double the distinct
// query count under normal use.
func (s *Suggester) Count() int {
	return s.trie.Count() + s.reversed.Count()
}

// Suggest merges forward completion (stored queries starting with query) and
// backward completion (stored queries containing query), removing duplicate
// (weight, query) pairs. The result is unordered.
func (s *Suggester) Suggest(query string) []Entry {
	forward := s.trie.Suffixes(query)
	backward := s.reversed.Prefixes(query)

	merged := make([]Entry, 0, len(forward)+len(backward))
	seen := make(map[Entry]struct{}, len(forward)+len(backward))
	for _, e := range forward {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		merged = append(merged, e)
	}
	for _, e := range backward {
		if _, dup := seen[e]; dup {
			continue
		}
		seen[e] = struct{}{}
		merged = append(merged, e)
	}
	return merged
}

// SuggestTrimmed suggests for query with its last character dropped. It
// widens recall when the final typed character has no matching continuation
// yet. Queries shorter than two characters yield nothing.
func (s *Suggester) SuggestTrimmed(query string) []Entry {
	if utf8.RuneCountInString(query) < 2 {
		return nil
	}
	runes := []rune(query)
	return s.Suggest(string(runes[:len(runes)-1]))
}

// SuggestPerWord splits query on whitespace and suggests for each word
// independently, concatenating the results. Useful when only the last word
// of the query is a meaningful completion anchor.
func (s *Suggester) SuggestPerWord(query string) []Entry {
	var all []Entry
	for _, word := range strings.Fields(query) {
		all = append(all, s.Suggest(word)...)
	}
	return all
}

// Complete is the boundary-facing surface: it normalizes query, gathers
// candidates via Suggest, ranks them by weight descending and truncates to
// k. It returns the normalized query alongside the suggestions. An empty
// normalized query yields no suggestions.
func (s *Suggester) Complete(query string, k int) (string, []string, error) {
	normalized := utils.Normalize(query)
	if normalized == "" {
		if k < 0 {
			return normalized, nil, ErrInvalidLimit
		}
		return normalized, []string{}, nil
	}
	suggestions, err := Rank(s.Suggest(normalized), k)
	if err != nil {
		return normalized, nil, err
	}
	return normalized, suggestions, nil
}
