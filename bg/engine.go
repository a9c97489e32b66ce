// Package bg implements a single-pattern Breslauer-Galil real-time matcher:
// O(1) amortized work per input byte regardless of pattern length, achieved
// by detecting the pattern's first O(log n) characters with a KMP-style
// matcher and then promoting viable occurrences up a logarithmic ladder of
// rungs via Karp-Rabin fingerprint comparisons, fed by a round-robin
// schedule that visits the rungs below the top in strictly decreasing index
// order.
//
// Patterns of length 8 or less skip the ladder entirely and run directly on
// a real-time KMP engine (kmprt), since the ladder's O(log n) stage count
// buys nothing below that size and the construction's periodicity
// arguments need room to hold.
package bg

import (
	"github.com/coregx/streammatch/field"
	"github.com/coregx/streammatch/fingerprint"
	"github.com/coregx/streammatch/kmprt"
)

// shortPatternMax is the length threshold at or below which the ladder
// construction is skipped in favor of plain real-time KMP (§9 design note:
// short-pattern threshold = n <= 8).
const shortPatternMax = 8

// Engine is a real-time Breslauer-Galil matcher for one pattern.
type Engine struct {
	pattern []byte
	n       int
	p       field.Prime
	r       field.Value

	short *kmprt.Engine // non-nil iff n <= shortPatternMax; all other fields unused in that case

	logn       int
	loglogn    int
	firstStage int
	nStages    int

	bndLen []int    // bndLen[0..nStages], bndLen[i] = min(2^(firstStage+i), n)
	fps    []uint64 // fps[0..nStages], fps[i] = fp(pattern[0:bndLen[i]))

	firstStageR field.Value // r^(2^firstStage - 1)
	entry       *entryLadder

	stages []stage // stages[0..nStages)

	needBeforeLastStage bool

	lastFPs []uint64 // ring of logn cumulative fingerprints
	currentPos int
	currentFP  uint64
	currentR   field.Value
	currentStage int // round-robin cursor over [0, nStages-2], mod nStages-1

	stats      Stats
	collisions []CollisionEvent
}

// New builds a BG engine for pattern under cfg. pattern must be non-empty;
// it is copied, so the caller's slice may be reused afterward.
func New(pattern []byte, cfg Config) (*Engine, error) {
	if len(pattern) == 0 {
		return nil, ErrEmptyPattern
	}
	p := make([]byte, len(pattern))
	copy(p, pattern)
	n := len(p)

	if n <= shortPatternMax {
		return &Engine{pattern: p, n: n, p: cfg.Prime, short: kmprt.New(p)}, nil
	}

	e := &Engine{
		pattern: p,
		n:       n,
		p:       cfg.Prime,
		r:       cfg.pickR(),
	}
	e.build()
	return e, nil
}

func (e *Engine) build() {
	p := e.p
	e.logn = ceilLog2(e.n)
	e.loglogn = ceilLog2(e.logn) + 1

	twoLogLogN := 1 << uint(e.loglogn)
	pp := kmprt.New(e.pattern[:twoLogLogN]).Period()

	k := twoLogLogN
	for k < e.n && e.pattern[k] == e.pattern[k%pp] {
		k++
	}
	stopPos := k
	e.firstStage = floorLog2(stopPos)
	e.nStages = e.logn - e.firstStage
	if e.nStages < 1 {
		// When the whole pattern keeps period pp and n is a power of two,
		// stopPos == n and firstStage reaches logn; clamp to a single
		// stage whose entry window is the first half of the pattern.
		e.nStages = 1
		e.firstStage = e.logn - 1
	}

	twoFirstStage := 1 << uint(e.firstStage)
	e.entry = newEntryLadder(e.pattern, pp, twoFirstStage)
	e.firstStageR = powValue(e.r, twoFirstStage-1, p)

	e.bndLen = make([]int, e.nStages+1)
	e.fps = make([]uint64, e.nStages+1)
	for i := 0; i <= e.nStages; i++ {
		e.bndLen[i] = minInt(1<<uint(e.firstStage+i), e.n)
		fp, _ := fingerprint.FP(e.pattern[:e.bndLen[i]], e.r, p)
		e.fps[i] = fp
	}

	e.needBeforeLastStage = e.nStages >= 2 &&
		e.n-(1<<uint(e.logn-1)) < e.logn

	e.stages = make([]stage, e.nStages)
	e.lastFPs = make([]uint64, e.logn)
	e.currentR = field.One(p)
}

func (e *Engine) bnd(i int) int { return e.bndLen[i] }

// Feed processes one input byte and reports whether the full pattern
// matched ending at this byte.
func (e *Engine) Feed(c byte) (match bool) {
	if e.short != nil {
		return e.short.Feed(c)
	}

	p := e.p
	e.currentFP = field.Add(e.currentFP, mulmod(uint64(c), e.currentR.Val, p), p)
	e.lastFPs[e.currentPos%e.logn] = e.currentFP

	if e.entry.feed(c, e.currentPos) {
		e.stats.FirstStageMatches++
		twoFS := 1 << uint(e.firstStage)
		voPos := e.currentPos - twoFS + 1
		var voR field.Value
		field.Div(&voR, e.currentR, e.firstStageR, p)
		voFP := fingerprint.Prefix(e.currentFP, e.fps[0], voR, p)
		e.addVO(0, voPos, voFP, voR)
	}

	if e.needBeforeLastStage && !e.stages[e.nStages-2].isEmpty() {
		if e.upgrade(e.nStages - 2) {
			match = true
		}
	}
	if !e.stages[e.nStages-1].isEmpty() {
		if e.upgrade(e.nStages - 1) {
			match = true
		}
	}

	if e.nStages > 1 {
		if !e.stages[e.currentStage].isEmpty() {
			if e.upgrade(e.currentStage) {
				match = true
			}
		}
		mod := e.nStages - 1
		e.currentStage = (e.currentStage - 1 + mod) % mod
	}

	var nextR field.Value
	field.Mul(&nextR, e.currentR, e.r, p)
	e.currentR = nextR
	e.currentPos++
	return match
}

// upgrade attempts to extend stage i's oldest VO to stage i+1 (or, if i is
// the top stage, to a full match). It always drops that VO afterward,
// whether or not the extension succeeded: a VO that doesn't extend cleanly
// is not a weaker candidate to keep around, it is a dead one, since the
// fingerprint comparison is exact up to the field's collision probability.
func (e *Engine) upgrade(i int) (fullMatch bool) {
	st := &e.stages[i]
	if st.isEmpty() {
		return false
	}
	endPos := st.first.pos + e.bnd(i+1) - 1
	if e.currentPos < endPos {
		return false
	}
	if e.currentPos >= endPos+e.logn {
		e.dropFirstVO(i)
		return false
	}

	F := e.lastFPs[endPos%e.logn]
	blockFP := fingerprint.Suffix(F, st.first.fp, st.first.r, e.p)

	if blockFP == e.fps[i+1] {
		if i+1 == e.nStages {
			fullMatch = true
			e.stats.FullMatches++
		} else {
			e.addVO(i+1, st.first.pos, st.first.fp, st.first.r)
		}
		e.stats.Upgrades++
	}

	e.dropFirstVO(i)
	return fullMatch
}

func (e *Engine) addVO(i int, pos int, fp uint64, r field.Value) {
	st := &e.stages[i]
	if st.add(pos, fp, r, e.p) {
		e.recordCollision(i, pos)
		st.wipe()
	}
}

func (e *Engine) dropFirstVO(i int) {
	e.stages[i].dropFirst(e.p)
}

func (e *Engine) recordCollision(stage, pos int) {
	e.stats.Collisions++
	ev := CollisionEvent{Pos: pos, Stage: stage}
	if len(e.collisions) < collisionLogCap {
		e.collisions = append(e.collisions, ev)
	} else {
		copy(e.collisions, e.collisions[1:])
		e.collisions[len(e.collisions)-1] = ev
	}
}

// Collisions returns the most recent fingerprint-collision events, oldest
// first, capped at a small fixed window.
func (e *Engine) Collisions() []CollisionEvent { return e.collisions }

// CollisionCount returns the cumulative number of collisions seen, which
// may exceed len(Collisions()) once the log window has wrapped.
func (e *Engine) CollisionCount() int { return int(e.stats.Collisions) }

// Stats returns cumulative counters for this engine.
func (e *Engine) Stats() Stats { return e.stats }

// ResetStats zeroes the cumulative counters without touching match state.
func (e *Engine) ResetStats() { e.stats = Stats{} }

// Pattern returns the pattern bytes this engine was built for.
func (e *Engine) Pattern() []byte { return e.pattern }

// Reset returns the engine to its initial rolling state (stream position
// zero, no live viable occurrences), keeping the compiled ladder structures
// and cumulative Stats.
func (e *Engine) Reset() {
	if e.short != nil {
		e.short.Reset()
		return
	}
	e.entry.reset()
	for i := range e.stages {
		e.stages[i].wipe()
	}
	for i := range e.lastFPs {
		e.lastFPs[i] = 0
	}
	e.currentPos = 0
	e.currentFP = 0
	e.currentR = field.One(e.p)
	e.currentStage = 0
}

// TotalMem reports the engine's memory footprint in bytes, for harness
// measurement.
func (e *Engine) TotalMem() int {
	const wordSize = 8
	if e.short != nil {
		return e.short.TotalMem()
	}
	m := len(e.pattern)
	m += e.entry.totalMem()
	m += len(e.bndLen) * wordSize
	m += len(e.fps) * wordSize
	m += len(e.stages) * (3 * wordSize * 2)
	m += len(e.lastFPs) * wordSize
	m += len(e.collisions) * (2 * wordSize)
	return m
}

// Free releases the engine's owned buffers.
func (e *Engine) Free() {
	if e.short != nil {
		e.short.Free()
		return
	}
	e.entry.free()
	e.pattern = nil
	e.bndLen = nil
	e.fps = nil
	e.stages = nil
	e.lastFPs = nil
	e.collisions = nil
}
