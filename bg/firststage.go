package bg

import "github.com/coregx/streammatch/kmprt"

// entryLadder detects the first 2^firstStage characters of the pattern
// using two real-time KMP engines instead of hashing: one over the period
// pp = period(P[0:2^loglogn)), and (if the entry window is not an exact
// multiple of pp) one over the rm-byte remainder. Because P[0:2^firstStage)
// keeps period pp throughout (build stops the walk where the period
// breaks, and 2^firstStage never exceeds that point), a run of nNeed consecutive,
// contiguous period matches followed immediately by a remainder match is
// both necessary and sufficient for a genuine occurrence of the entry
// window ending at the current position.
type entryLadder struct {
	period    *kmprt.Engine
	remaining *kmprt.Engine // nil when rm == 0
	pp        int
	rm        int
	nNeed     int // 2^firstStage / pp

	currentN          int
	lastPeriodMatchPos int // -1 before any match
}

func newEntryLadder(pattern []byte, pp, twoFirstStage int) *entryLadder {
	rm := twoFirstStage % pp
	e := &entryLadder{
		period:             kmprt.New(pattern[:pp]),
		pp:                 pp,
		rm:                 rm,
		nNeed:              twoFirstStage / pp,
		lastPeriodMatchPos: -1,
	}
	if rm != 0 {
		e.remaining = kmprt.New(pattern[:rm])
	}
	return e
}

// feed processes one byte at stream position pos and reports whether the
// entry window (the first 2^firstStage pattern bytes) has just matched
// ending at pos.
func (e *entryLadder) feed(c byte, pos int) (matched bool) {
	periodMatch := e.period.Feed(c)
	if periodMatch {
		if e.lastPeriodMatchPos >= 0 && e.lastPeriodMatchPos+e.pp == pos {
			e.currentN++
		} else {
			e.currentN = 1
		}
		e.lastPeriodMatchPos = pos
	} else if e.lastPeriodMatchPos >= 0 && e.lastPeriodMatchPos+e.pp <= pos {
		e.currentN = 0
	}

	if e.rm == 0 {
		// The entry window is an exact multiple of pp: reaching the needed
		// repeat count via a period match that lands exactly at pos is
		// itself the completion of the window.
		return periodMatch && e.currentN >= e.nNeed
	}

	remainMatch := e.remaining.Feed(c)
	return remainMatch &&
		e.currentN >= e.nNeed &&
		e.lastPeriodMatchPos >= 0 &&
		e.lastPeriodMatchPos+e.rm == pos
}

func (e *entryLadder) reset() {
	e.period.Reset()
	if e.remaining != nil {
		e.remaining.Reset()
	}
	e.currentN = 0
	e.lastPeriodMatchPos = -1
}

func (e *entryLadder) totalMem() int {
	m := e.period.TotalMem()
	if e.remaining != nil {
		m += e.remaining.TotalMem()
	}
	return m
}

func (e *entryLadder) free() {
	e.period.Free()
	if e.remaining != nil {
		e.remaining.Free()
	}
}
