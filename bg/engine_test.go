package bg

import "testing"

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

func feedAll(t *testing.T, e *Engine, text []byte) []int {
	t.Helper()
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

func newTestEngine(t *testing.T, pattern []byte) *Engine {
	t.Helper()
	e, err := New(pattern, DefaultConfig())
	if err != nil {
		t.Fatalf("New(%q): %v", pattern, err)
	}
	return e
}

func TestEmptyPatternRejected(t *testing.T) {
	if _, err := New(nil, DefaultConfig()); err != ErrEmptyPattern {
		t.Fatalf("New(nil) error = %v, want ErrEmptyPattern", err)
	}
}

func TestShortPatternUsesKMPDirectly(t *testing.T) {
	pattern := []byte("abcdefgh") // length 8, at the shortPatternMax boundary
	e := newTestEngine(t, pattern)
	if e.short == nil {
		t.Fatalf("expected short-pattern fallback for len(pattern)=8")
	}
	got := feedAll(t, e, []byte("xxabcdefghxx"))
	assertEqualInts(t, got, []int{9})
}

func TestLadderBoundaryLength(t *testing.T) {
	pattern := []byte("abcdefghi") // length 9, just above shortPatternMax
	e := newTestEngine(t, pattern)
	if e.short != nil {
		t.Fatalf("expected ladder construction for len(pattern)=9")
	}
	text := append(append([]byte{}, pattern...), pattern...)
	got := feedAll(t, e, text)
	assertEqualInts(t, got, bruteMatches(pattern, text))
}

func TestSingleOccurrenceLongPattern(t *testing.T) {
	pattern := []byte("the quick brown fox jumps over the lazy dog")
	e := newTestEngine(t, pattern)
	text := append(append([]byte("xyz "), pattern...), []byte(" abc")...)
	got := feedAll(t, e, text)
	want := bruteMatches(pattern, text)
	assertEqualInts(t, got, want)
	if len(want) != 1 {
		t.Fatalf("test setup: want exactly one occurrence, got %d", len(want))
	}
}

func TestPeriodicPatternManyOccurrences(t *testing.T) {
	pattern := []byte("abababababababab") // period 2, length 16
	text := make([]byte, 0, 200)
	for i := 0; i < 10; i++ {
		text = append(text, pattern...)
	}
	e := newTestEngine(t, pattern)
	got := feedAll(t, e, text)
	want := bruteMatches(pattern, text)
	assertEqualInts(t, got, want)
}

func TestNonPeriodicLongPatternNoFalsePositives(t *testing.T) {
	pattern := []byte("mississippimississippimississippiriver")
	text := []byte("the mississippi river basin has mississippimississippimississippiriver in it, yes")
	e := newTestEngine(t, pattern)
	got := feedAll(t, e, text)
	want := bruteMatches(pattern, text)
	assertEqualInts(t, got, want)
}

func TestNoMatchInUnrelatedText(t *testing.T) {
	pattern := []byte("needle in a haystack of bytes")
	text := []byte("this text does not contain anything resembling the target string at all")
	e := newTestEngine(t, pattern)
	got := feedAll(t, e, text)
	if len(got) != 0 {
		t.Fatalf("got %v, want no matches", got)
	}
}

func TestResetAllowsReuse(t *testing.T) {
	pattern := []byte("abcdefghij")
	e := newTestEngine(t, pattern)
	feedAll(t, e, []byte("xxxabcdefg"))
	e.Reset()
	got := feedAll(t, e, append([]byte("zzz"), pattern...))
	assertEqualInts(t, got, []int{len(pattern) + 2})
}

func TestStatsTrackFullMatches(t *testing.T) {
	pattern := []byte("needle-in-a-haystack")
	e := newTestEngine(t, pattern)
	text := append(append([]byte{}, pattern...), pattern...)
	feedAll(t, e, text)
	if e.Stats().FullMatches != 2 {
		t.Fatalf("FullMatches = %d, want 2", e.Stats().FullMatches)
	}
	e.ResetStats()
	if e.Stats().FullMatches != 0 {
		t.Fatalf("ResetStats did not clear FullMatches")
	}
}

func TestDeterministicAcrossConstructions(t *testing.T) {
	pattern := []byte("deterministic pattern matching test string")
	text := append(append([]byte("prefix "), pattern...), []byte(" suffix")...)
	e1 := newTestEngine(t, pattern)
	e2 := newTestEngine(t, pattern)
	got1 := feedAll(t, e1, text)
	got2 := feedAll(t, e2, text)
	assertEqualInts(t, got1, got2)
}

func TestFixedPatternsAgainstBruteForce(t *testing.T) {
	cases := []struct {
		pattern, text string
	}{
		{"abcabcabcabd", "xxabcabcabcabcabcabcabdxxabcabcabcabdyy"},
		{"aaaaaaaaaaaa", "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"},
		{"rotation12345678", "rotation12345678rotation123456781rotation12345678"},
	}
	for _, c := range cases {
		pattern := []byte(c.pattern)
		text := []byte(c.text)
		e := newTestEngine(t, pattern)
		got := feedAll(t, e, text)
		want := bruteMatches(pattern, text)
		assertEqualInts(t, got, want)
	}
}
