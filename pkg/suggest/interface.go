// Package suggest is the core of the service: two complementary trie
// structures over a weighted query corpus, plus the candidate composition
// and ranking layered on them.
//
// The forward Trie answers "which stored queries start with this fragment",
// the ReversedTrie answers "which stored queries contain or end with it".
// Both are fitted once from the same corpus at startup and are read-only on
// the serving path, so lookups are safe under arbitrary concurrent
// invocation without locking.
package suggest

// ISuggester is the candidate-generation contract consumed by the serving
// boundaries (HTTP, IPC and the debug CLI).
type ISuggester interface {
	// Suggest returns the merged, deduplicated candidate set for a
	// normalized query, unordered.
	Suggest(query string) []Entry

	// SuggestTrimmed suggests for the query with its last character removed.
	SuggestTrimmed(query string) []Entry

	// SuggestPerWord suggests for each whitespace-separated word.
	SuggestPerWord(query string) []Entry

	// Complete normalizes, gathers, ranks and truncates to k suggestions.
	Complete(query string, k int) (string, []string, error)

	// Count reports the total number of stored queries across both tries.
	Count() int
}
