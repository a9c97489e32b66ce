// Package conv provides safe integer conversion helpers for the matching engines.
//
// These functions perform bounds checking before narrowing integer conversions
// to prevent silent overflow. They panic on overflow since this indicates a
// programming error (e.g., more Aho-Corasick states or Patterns Tree nodes
// than an int32 handle can index).
package conv

import "math"

// IntToInt32 safely converts an int to int32.
// Panics if n is outside the int32 range — the limit on how many distinct
// states a single Aho-Corasick trie or how many patterns a Patterns Tree
// can index.
//
//go:inline
func IntToInt32(n int) int32 {
	if n < math.MinInt32 || n > math.MaxInt32 {
		panic("integer overflow: int value out of int32 range")
	}
	return int32(n)
}
