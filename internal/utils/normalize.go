package utils

import (
	"regexp"
	"strings"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-zA-Z0-9 ]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize reduces a raw query to the canonical form used both for corpus
// aggregation and per-request lookups: strip everything outside
// [a-zA-Z0-9 ], collapse runs of whitespace, trim and lower-case.
func Normalize(query string) string {
	query = nonAlnum.ReplaceAllString(query, "")
	query = whitespace.ReplaceAllString(query, " ")
	return strings.ToLower(strings.TrimSpace(query))
}
