// Package mpbg composes single-pattern streaming engines into a
// multi-pattern matcher: it fans every stream byte out to one engine per
// dictionary pattern and reports the longest pattern whose occurrence ends
// at that byte. The single-pattern engine used is pluggable — this module
// wires it to both the Breslauer-Galil engine (bg.Engine) and, as a
// baseline for comparison, plain real-time KMP (kmprt.Engine) — since
// both expose the same Feed/Reset/TotalMem/Free shape.
package mpbg

import (
	"errors"

	"github.com/coregx/streammatch/patterns"
)

// singleEngine is the shape every per-pattern engine this wrapper can host
// must satisfy: bg.Engine and kmprt.Engine both already do.
type singleEngine interface {
	Feed(c byte) bool
	Reset()
	TotalMem() int
	Free()
}

// ErrAlreadyCompiled is the value AddPattern panics with when called after
// Compile.
var ErrAlreadyCompiled = errors.New("mpbg: AddPattern after Compile")

// ErrNotCompiled is the value ReadChar and Reset panic with when called
// before Compile.
var ErrNotCompiled = errors.New("mpbg: ReadChar/Reset before Compile")

type entry struct {
	engine    singleEngine
	id        patterns.ID
	patternLen int
}

// Engine fans stream bytes out to one singleEngine per dictionary pattern
// and reports the longest match. Build one via New with a factory for the
// underlying per-pattern engine.
type Engine struct {
	newEngine func(pattern []byte) (singleEngine, error)
	pending   []entry
	entries   []entry
	compiled  bool
}

// New returns an uncompiled Engine that builds one per-pattern engine via
// newEngine for every AddPattern call.
func New(newEngine func(pattern []byte) (singleEngine, error)) *Engine {
	return &Engine{newEngine: newEngine}
}

// AddPattern constructs a fresh per-pattern engine for pattern and appends
// it to the pending list. Must be called before Compile.
func (e *Engine) AddPattern(pattern []byte, id patterns.ID) {
	if e.compiled {
		panic(ErrAlreadyCompiled)
	}
	eng, err := e.newEngine(pattern)
	if err != nil {
		panic(err)
	}
	e.pending = append(e.pending, entry{engine: eng, id: id, patternLen: len(pattern)})
}

// Compile freezes the pending list into a contiguous slice.
func (e *Engine) Compile() {
	if e.compiled {
		panic("mpbg: Compile called twice")
	}
	e.entries = e.pending
	e.pending = nil
	e.compiled = true
}

// ReadChar feeds c to every per-pattern engine and returns the id of the
// longest pattern that reported a match ending at this byte, or
// patterns.NoPattern. Ties are impossible: each engine reports MATCH only
// when its own full pattern length ends at the current position, and two
// distinct dictionary patterns of the same length cannot both end at the
// same position with the same bytes (they would be the same pattern).
func (e *Engine) ReadChar(c byte) patterns.ID {
	if !e.compiled {
		panic(ErrNotCompiled)
	}
	best := patterns.NoPattern
	bestLen := -1
	for i := range e.entries {
		if e.entries[i].engine.Feed(c) && e.entries[i].patternLen > bestLen {
			best = e.entries[i].id
			bestLen = e.entries[i].patternLen
		}
	}
	return best
}

// Reset resets every per-pattern engine for the start of a new stream.
func (e *Engine) Reset() {
	if !e.compiled {
		panic(ErrNotCompiled)
	}
	for i := range e.entries {
		e.entries[i].engine.Reset()
	}
}

// TotalMem sums every per-pattern engine's footprint.
func (e *Engine) TotalMem() int {
	total := 0
	for i := range e.entries {
		total += e.entries[i].engine.TotalMem()
	}
	return total
}

// Collisions sums the fingerprint-collision events logged by every
// per-pattern engine that tracks them (only the BG-backed variant does).
func (e *Engine) Collisions() int {
	total := 0
	for i := range e.entries {
		if c, ok := e.entries[i].engine.(interface{ CollisionCount() int }); ok {
			total += c.CollisionCount()
		}
	}
	return total
}

// Free releases every per-pattern engine.
func (e *Engine) Free() {
	for i := range e.entries {
		e.entries[i].engine.Free()
	}
	e.entries = nil
}
