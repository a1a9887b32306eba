package suggest

import "fmt"

// Top sorts candidates by weight descending (ties by descending
// lexicographic query), drops repeated query strings keeping the best-ranked
// occurrence, and truncates to the first k entries. A negative k is
// rejected; k = 0 yields an empty slice. The input slice is not modified.
func Top(candidates []Entry, k int) ([]Entry, error) {
	if k < 0 {
		return nil, fmt.Errorf("top %d: %w", k, ErrInvalidLimit)
	}

	sorted := make([]Entry, len(candidates))
	copy(sorted, candidates)
	sortEntries(sorted)

	top := make([]Entry, 0, k)
	seen := make(map[string]struct{}, k)
	for _, e := range sorted {
		if len(top) == k {
			break
		}
		if _, dup := seen[e.Query]; dup {
			continue
		}
		seen[e.Query] = struct{}{}
		top = append(top, e)
	}
	return top, nil
}

// Rank projects the query strings out of Top's result, preserving order.
func Rank(candidates []Entry, k int) ([]string, error) {
	top, err := Top(candidates, k)
	if err != nil {
		return nil, err
	}
	suggestions := make([]string, len(top))
	for i, e := range top {
		suggestions[i] = e.Query
	}
	return suggestions, nil
}
