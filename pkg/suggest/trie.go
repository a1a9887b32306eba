package suggest

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrNotFound is returned by Remove when the query is not stored.
	ErrNotFound = errors.New("query not found")
	// ErrInvalidWeight is returned by Insert for weights that cannot act as
	// terminal markers (non-positive or non-finite).
	ErrInvalidWeight = errors.New("weight must be a finite number greater than zero")
	// ErrInvalidLimit is returned by the ranking surface for a negative k.
	ErrInvalidLimit = errors.New("limit must be a non-negative integer")
)

// Entry is a single weighted candidate produced by trie lookups.
type Entry struct {
	Weight float64
	Query  string
}

// keyFunc maps a query to the key it is stored under. The forward trie uses
// the identity transform, the reversed trie stores each query reversed.
type keyFunc func(string) string

func identity(s string) string { return s }

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// Trie is a forward dictionary keyed by the literal query string. It is the
// exclusive owner of the tree it roots. Built once at startup, read
// concurrently during serving; mutation is not part of the serving path and
// carries no locking of its own.
type Trie struct {
	root      *node
	transform keyFunc
}

// NewTrie returns an empty forward trie.
func NewTrie() *Trie {
	return &Trie{root: &node{}, transform: identity}
}

// Insert stores query with the given weight, overwriting any prior weight
// for an identical query. Weights must be finite and positive: a zero weight
// is indistinguishable from absence.
func (t *Trie) Insert(query string, weight float64) error {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("insert %q: %w", query, ErrInvalidWeight)
	}
	n := t.root
	for _, r := range t.transform(query) {
		n = n.child(r)
	}
	n.weight = weight
	return nil
}

// Remove deletes query from the trie. It fails with ErrNotFound when the
// query is not stored. On success the terminal weight is cleared and every
// now-empty ancestor is pruned back toward the root, stopping at the first
// ancestor that still holds children or a weight. The root itself is never
// pruned.
func (t *Trie) Remove(query string) error {
	runes := []rune(t.transform(query))

	path := make([]*node, 0, len(runes)+1)
	n := t.root
	path = append(path, n)
	for _, r := range runes {
		n = n.children[r]
		if n == nil {
			return fmt.Errorf("remove %q: %w", query, ErrNotFound)
		}
		path = append(path, n)
	}
	if n.weight <= 0 {
		return fmt.Errorf("remove %q: %w", query, ErrNotFound)
	}

	n.weight = 0
	for i := len(path) - 1; i > 0; i-- {
		if !path[i].prunable() {
			break
		}
		delete(path[i-1].children, runes[i-1])
	}
	return nil
}

// Clear resets the trie to an empty root.
func (t *Trie) Clear() {
	t.root = &node{}
}

// Count returns the number of stored queries.
func (t *Trie) Count() int {
	return t.root.countTerminals()
}

// Suffixes returns every stored query starting with prefix, each paired with
// its weight. Results are sorted by weight descending, ties broken by
// descending lexicographic query. An incomplete prefix path yields an empty
// result. No truncation happens here; ranking across strategies is the
// Suggester's job.
func (t *Trie) Suffixes(prefix string) []Entry {
	start := t.root.walk([]rune(t.transform(prefix)))
	if start == nil {
		return nil
	}

	var entries []Entry
	var collect func(n *node, suffix string)
	collect = func(n *node, suffix string) {
		if n.weight > 0 {
			entries = append(entries, Entry{Weight: n.weight, Query: prefix + suffix})
		}
		for r, c := range n.children {
			collect(c, suffix+string(r))
		}
	}
	collect(start, "")

	sortEntries(entries)
	return entries
}

// sortEntries orders entries the way sorting (weight, query) tuples in
// reverse would: weight descending, then query descending.
func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Query > entries[j].Query
	})
}

// ReversedTrie is an independent copy of the same weighted key set, stored
// under reversed keys so that trailing fragments anchor lookups.
type ReversedTrie struct {
	trie *Trie
}

// NewReversedTrie returns an empty reversed trie.
func NewReversedTrie() *ReversedTrie {
	return &ReversedTrie{trie: &Trie{root: &node{}, transform: reverse}}
}

// Insert stores query under its reversal.
func (rt *ReversedTrie) Insert(query string, weight float64) error {
	return rt.trie.Insert(query, weight)
}

// Remove deletes query, addressing it by its reversal.
func (rt *ReversedTrie) Remove(query string) error {
	return rt.trie.Remove(query)
}

// Clear resets the reversed trie to an empty root.
func (rt *ReversedTrie) Clear() {
	rt.trie.Clear()
}

// Count returns the number of stored queries.
func (rt *ReversedTrie) Count() int {
	return rt.trie.Count()
}

// Prefixes returns every stored query that contains fragment as a contiguous
// substring, paired with its original weight. Each query is reported once
// regardless of how many times the fragment occurs in it. When the fragment
// is the trailing part of a query this degenerates to "every stored query
// ending with fragment". Results are unordered.
func (rt *ReversedTrie) Prefixes(fragment string) []Entry {
	frag := []rune(reverse(fragment))
	if len(frag) == 0 {
		return nil
	}

	var entries []Entry
	seen := make(map[string]struct{})

	// collect gathers terminal descendants of n; reversedKey accumulates the
	// root-to-terminal path, which spells the stored query reversed.
	var collect func(n *node, reversedKey string)
	collect = func(n *node, reversedKey string) {
		if n.weight > 0 {
			query := reverse(reversedKey)
			if _, dup := seen[query]; !dup {
				seen[query] = struct{}{}
				entries = append(entries, Entry{Weight: n.weight, Query: query})
			}
		}
		for r, c := range n.children {
			collect(c, reversedKey+string(r))
		}
	}

	// Anchor the reversed fragment at every node of the tree: a successful
	// descent marks queries whose reversal contains it, i.e. queries
	// containing the fragment.
	var scan func(n *node, reversedPath string)
	scan = func(n *node, reversedPath string) {
		if m := n.walk(frag); m != nil {
			collect(m, reversedPath+string(frag))
		}
		for r, c := range n.children {
			scan(c, reversedPath+string(r))
		}
	}
	scan(rt.trie.root, "")

	return entries
}
