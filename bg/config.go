package bg

import (
	"errors"
	"math/rand"

	"github.com/coregx/streammatch/field"
)

// ErrEmptyPattern is returned by New when asked to build an engine for a
// zero-length pattern.
var ErrEmptyPattern = errors.New("bg: pattern must be non-empty")

// Config controls the field and base used to build an Engine. The zero
// Config is not valid; use DefaultConfig.
type Config struct {
	// Prime is the field modulus. Must be prime and small enough that
	// val*val fits in a uint64, which DefaultPrime guarantees.
	Prime field.Prime

	// Rand supplies the base r for the rolling fingerprint. Passing a
	// seeded *rand.Rand makes construction deterministic, which the test
	// suite and any reproducible benchmark run need; passing nil falls
	// back to a fixed internal seed, which is deterministic too but not
	// independent across engines built without an explicit source.
	Rand *rand.Rand
}

// DefaultConfig returns a Config using field.DefaultPrime and a fixed,
// reproducible seed for r.
func DefaultConfig() Config {
	return Config{Prime: field.DefaultPrime}
}

func (c Config) pickR() field.Value {
	rnd := c.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	p := c.Prime
	span := int64(uint64(p) - 2)
	val := uint64(2)
	if span > 0 {
		val = 2 + uint64(rnd.Int63n(span))
	}
	return field.NewValue(val, p)
}

// Stats reports cumulative counters for one Engine's lifetime (not reset by
// Reset; see ResetStats).
type Stats struct {
	FirstStageMatches uint64
	Upgrades          uint64
	FullMatches       uint64
	Collisions        uint64
}

// CollisionEvent records one fingerprint-collision occurrence for
// diagnostics. The engine keeps only the most recent few in a fixed ring,
// matching the O(1)-per-character memory budget rather than logging
// unboundedly.
type CollisionEvent struct {
	Pos   int
	Stage int
}

const collisionLogCap = 16
