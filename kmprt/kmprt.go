// Package kmprt implements a Galil real-time Knuth-Morris-Pratt matcher for
// a single pattern.
//
// Plain KMP is only amortized O(1) per character: a long run of failure-link
// hops can, in principle, cost more than one step for a single incoming
// byte (the amortization argument requires looking across many bytes). This
// engine instead bounds every incoming byte to at most two failure-link
// hops by buffering characters that arrive while a resolution is still
// unwinding, and draining that buffer at the same two-hops-per-arrival rate
// once the current character resolves. The buffer is a fixed-capacity ring
// sized to the pattern length, so it never grows in the hot path and never
// overflows: the draining rate is always >= the arrival rate (see Engine
// doc).
package kmprt

// Engine is a real-time KMP matcher for one pattern. Feed must be called
// once per input byte; it reports whether a full match of the pattern ended
// at the byte just fed. After a match, matching continues seamlessly
// (Galil semantics), so overlapping occurrences are all reported.
type Engine struct {
	pattern []byte
	m       int
	failure []int // failure[0..m], failure[i] = border length of pattern[0:i]

	offset int // current matched prefix length, in [0, m)
	ring   ringBuffer
}

// New builds a real-time KMP engine for pattern. pattern must be non-empty.
func New(pattern []byte) *Engine {
	if len(pattern) == 0 {
		panic("kmprt: pattern must be non-empty")
	}
	p := make([]byte, len(pattern))
	copy(p, pattern)
	e := &Engine{
		pattern: p,
		m:       len(p),
		failure: computeFailure(p),
	}
	e.ring.init(e.m)
	return e
}

// Pattern returns the pattern bytes this engine was built for.
func (e *Engine) Pattern() []byte {
	return e.pattern
}

// Period returns period(pattern) = m - failure[m], the engine's core
// contribution to BG's construction (§4.4): the smallest q such that
// pattern[i] == pattern[i+q] for every valid i.
func (e *Engine) Period() int {
	return e.m - e.failure[e.m]
}

// Offset returns the current matched-prefix length, in [0, m).
func (e *Engine) Offset() int {
	return e.offset
}

// Feed processes one input byte and reports whether a full pattern match
// ended at this byte. At most two failure-link hops are performed for this
// call, regardless of how many buffered characters are drained — the
// buffer exists exactly so that a resolution needing more than two hops can
// be spread across several calls to Feed without ever doing unbounded work
// in one of them.
func (e *Engine) Feed(c byte) (match bool) {
	budget := 2

	if e.ring.len() == 0 {
		resolved, m := e.attempt(c, &budget)
		if m {
			match = true
		}
		if !resolved {
			e.ring.pushBack(c)
		}
		return match
	}

	e.ring.pushBack(c)
	for e.ring.len() > 0 && budget > 0 {
		ch := e.ring.peekFront()
		resolved, m := e.attempt(ch, &budget)
		if m {
			match = true
		}
		if !resolved {
			break
		}
		e.ring.popFront()
	}
	return match
}

// attempt advances the matcher state against character c, spending failure
// hops out of *budget until either the character resolves (matches,
// advances to a fresh mismatch at offset 0, or exhausts budget) or the
// budget runs out mid-resolution. The current offset IS the resume point:
// if attempt returns resolved=false, the next call picks up exactly where
// this one left off.
func (e *Engine) attempt(c byte, budget *int) (resolved, match bool) {
	for {
		if e.pattern[e.offset] == c {
			e.offset++
			if e.offset == e.m {
				match = true
				e.offset = e.failure[e.m]
			}
			return true, match
		}
		if e.offset == 0 {
			return true, false
		}
		if *budget == 0 {
			return false, false
		}
		e.offset = e.failure[e.offset]
		*budget--
	}
}

// Reset returns the engine to its freshly-constructed state, discarding any
// in-flight buffered characters. The compiled pattern and failure table are
// untouched.
func (e *Engine) Reset() {
	e.offset = 0
	e.ring.reset()
}

// TotalMem reports the engine's static memory footprint in bytes, for
// harness measurement.
func (e *Engine) TotalMem() int {
	const wordSize = 8 // int/uint64 on the platforms this runs on
	return len(e.pattern) + (e.m+1)*wordSize + e.ring.cap()*1
}

// Free releases the engine's owned buffers. Go's GC reclaims them once
// unreferenced; Free exists so callers that measure memory lifecycle
// (harness reset-between-streams bookkeeping) have an explicit symmetric
// call, matching the Matcher contract's free().
func (e *Engine) Free() {
	e.pattern = nil
	e.failure = nil
	e.ring = ringBuffer{}
}

// computeFailure builds the KMP failure table for p: failure[0] is unused
// (offset 0 never consults it — a mismatch at offset 0 is terminal, not a
// fallback), and failure[i] for i in [1,m] is the length of the longest
// proper prefix of p[0:i) that is also a suffix of p[0:i).
func computeFailure(p []byte) []int {
	m := len(p)
	failure := make([]int, m+1)
	if m == 0 {
		return failure
	}
	failure[1] = 0
	k := 0
	for i := 2; i <= m; i++ {
		for k > 0 && p[i-1] != p[k] {
			k = failure[k]
		}
		if p[i-1] == p[k] {
			k++
		}
		failure[i] = k
	}
	return failure
}
