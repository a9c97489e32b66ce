package bg

import (
	"github.com/coregx/streammatch/field"
	"github.com/coregx/streammatch/fingerprint"
)

// vo is a viable occurrence: a candidate start position together with the
// field state needed to fold it into later fingerprint comparisons without
// rehashing the stream from scratch.
//
//	pos: candidate start position in the stream
//	fp:  fp(stream[0:pos)) — the fingerprint of everything before pos
//	r:   r^pos
type vo struct {
	pos int
	fp  uint64
	r   field.Value
}

// stage holds one rung's live viable occurrences as an arithmetic
// progression (first, step, count) instead of a list: because the pattern's
// relevant prefix has period > logn at every rung below the top, any two
// genuine occurrences landing in the same rung at the same time must be
// spaced by an exact multiple of a common step. Storing only first, step
// and count keeps per-stage memory O(1) regardless of how many VOs are
// conceptually live.
type stage struct {
	first vo
	step  vo // step.pos/fp/r hold deltas, not absolute positions
	count int
}

func (s *stage) isEmpty() bool { return s.count == 0 }

func (s *stage) wipe() {
	s.first = vo{}
	s.step = vo{}
	s.count = 0
}

// add offers a new VO to the stage. It reports collided=true when the new
// position is inconsistent with the progression already recorded — which,
// since VO positions are computed exactly (not derived from a probabilistic
// fingerprint comparison), can only happen as the downstream fallout of an
// earlier fingerprint collision promoting a spurious VO into this stage.
func (s *stage) add(pos int, fp uint64, r field.Value, p field.Prime) (collided bool) {
	switch s.count {
	case 0:
		s.first = vo{pos: pos, fp: fp, r: r}
		s.count = 1
	case 1:
		stepPos := pos - s.first.pos
		stepFP := fingerprint.Suffix(fp, s.first.fp, s.first.r, p)
		var stepR field.Value
		field.Div(&stepR, r, s.first.r, p)
		s.step = vo{pos: stepPos, fp: stepFP, r: stepR}
		s.count = 2
	default:
		predicted := s.first.pos + s.count*s.step.pos
		if predicted != pos {
			return true
		}
		s.count++
	}
	return false
}

// dropFirst removes the oldest VO from the progression, folding the next
// one (if any) into the first slot via fingerprint composition rather than
// recomputation.
func (s *stage) dropFirst(p field.Prime) {
	if s.count <= 1 {
		s.count = 0
		return
	}
	s.first.fp = fingerprint.Concat(s.first.fp, s.step.fp, s.first.r, p)
	s.first.pos += s.step.pos
	var newR field.Value
	field.Mul(&newR, s.first.r, s.step.r, p)
	s.first.r = newR
	s.count--
}
