package kmprt

import "testing"

// bruteMatches returns the end-positions (0-indexed, last byte of the
// occurrence) of every occurrence of pattern in text, including
// overlapping ones, via naive O(nm) scanning — used as an oracle.
func bruteMatches(pattern, text []byte) []int {
	var ends []int
	m := len(pattern)
	for i := 0; i+m <= len(text); i++ {
		ok := true
		for j := 0; j < m; j++ {
			if text[i+j] != pattern[j] {
				ok = false
				break
			}
		}
		if ok {
			ends = append(ends, i+m-1)
		}
	}
	return ends
}

func feedAll(e *Engine, text []byte) []int {
	var ends []int
	for i, c := range text {
		if e.Feed(c) {
			ends = append(ends, i)
		}
	}
	return ends
}

func assertEqualInts(t *testing.T, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestOverlappingMatches(t *testing.T) {
	// "abab" in "ababab": positions 3 and 5.
	e := New([]byte("abab"))
	got := feedAll(e, []byte("ababab"))
	assertEqualInts(t, got, []int{3, 5})
}

func TestPeriodOnePattern(t *testing.T) {
	// "aaaaa" in "aaaaaaa": matches end-positions {4,5,6}.
	e := New([]byte("aaaaa"))
	got := feedAll(e, []byte("aaaaaaa"))
	assertEqualInts(t, got, []int{4, 5, 6})
	if e.Period() != 1 {
		t.Fatalf("Period() = %d, want 1", e.Period())
	}
}

func TestBufferedFailureStressPattern(t *testing.T) {
	// Scenario 6 from spec.md §8: highly periodic prefix with a single
	// breaking character, stresses the buffered-failure path.
	pattern := []byte("AAAAAAAAAAAAAAAAAB") // length 18
	text := []byte("AAAAAAAAAAAAAAAAABAAAAAABAAAAAAAAAAAAAAAAABAAAAAAA")
	e := New(pattern)
	got := feedAll(e, text)
	want := bruteMatches(pattern, text)
	assertEqualInts(t, got, want)
	assertEqualInts(t, got, []int{17, 42})
}

func TestBoundaryLengths(t *testing.T) {
	for _, m := range []int{1, 8, 9, 16, 17} {
		pattern := make([]byte, m)
		for i := range pattern {
			pattern[i] = byte('a' + i%5)
		}
		text := append(append([]byte{}, pattern...), pattern...)
		e := New(pattern)
		got := feedAll(e, text)
		want := bruteMatches(pattern, text)
		assertEqualInts(t, got, want)
	}
}

func TestStreamShorterThanPattern(t *testing.T) {
	e := New([]byte("abcdef"))
	got := feedAll(e, []byte("abc"))
	if len(got) != 0 {
		t.Fatalf("got %v, want no matches", got)
	}
}

func TestExactLengthAndPlusMinusOne(t *testing.T) {
	pattern := []byte("needle")
	e := New(pattern)
	assertEqualInts(t, feedAll(e, pattern), []int{len(pattern) - 1})

	e2 := New(pattern)
	assertEqualInts(t, feedAll(e2, pattern[:len(pattern)-1]), nil)

	e3 := New(pattern)
	assertEqualInts(t, feedAll(e3, append(append([]byte{}, pattern...), 'x')), []int{len(pattern) - 1})
}

func TestResetClearsState(t *testing.T) {
	e := New([]byte("abc"))
	feedAll(e, []byte("ab"))
	if e.Offset() == 0 {
		t.Fatalf("expected partial match state before reset")
	}
	e.Reset()
	if e.Offset() != 0 {
		t.Fatalf("Offset() after Reset = %d, want 0", e.Offset())
	}
	got := feedAll(e, []byte("abc"))
	assertEqualInts(t, got, []int{2})
}

func TestZeroAndHighBytePattern(t *testing.T) {
	pattern := []byte{0x00, 0xFF, 0x00, 0xFF}
	text := []byte{0x01, 0x00, 0xFF, 0x00, 0xFF, 0x02}
	e := New(pattern)
	got := feedAll(e, text)
	want := bruteMatches(pattern, text)
	assertEqualInts(t, got, want)
}

func TestFixedCasesAgainstBruteForce(t *testing.T) {
	patterns := [][]byte{
		[]byte("abcabcabd"),
		[]byte("aabaabaaa"),
		[]byte("mississippi"),
		[]byte("aaaaaaaaaa"),
	}
	texts := [][]byte{
		[]byte("abcabcabcabcabdabcabcabd"),
		[]byte("aabaabaabaabaaaaabaabaaa"),
		[]byte("mississippimississippimississippi"),
		[]byte("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"),
	}
	for i, p := range patterns {
		e := New(p)
		got := feedAll(e, texts[i])
		want := bruteMatches(p, texts[i])
		assertEqualInts(t, got, want)
	}
}
