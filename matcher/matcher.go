// Package matcher defines the common contract every streaming matching
// engine in this module satisfies, and a small immutable registry of the
// algorithms available to the harness.
package matcher

import "github.com/coregx/streammatch/patterns"

// Matcher is the contract every engine (BG-composed, MP-BG, Aho-Corasick)
// satisfies. A matcher accepts AddPattern calls only before Compile, and
// ReadChar only after; violating either is a programming error, not a
// recoverable one.
type Matcher interface {
	// AddPattern registers one dictionary pattern under id. Must be
	// called only before Compile.
	AddPattern(pattern []byte, id patterns.ID)

	// Compile freezes the set of patterns. Must be called exactly once,
	// after all AddPattern calls and before any ReadChar or Reset.
	Compile()

	// ReadChar feeds one stream byte and returns the id of the pattern
	// whose occurrence ends at this byte, or patterns.NoPattern.
	ReadChar(c byte) patterns.ID

	// Reset returns the engine to its just-compiled streaming state, for
	// the start of a new stream.
	Reset()

	// TotalMem reports the engine's memory footprint in bytes.
	TotalMem() int

	// Free releases the engine's owned buffers.
	Free()
}

// Algorithm identifies one matching algorithm available to the harness.
type Algorithm int

const (
	AlgorithmAC Algorithm = iota
	AlgorithmMPBG
	AlgorithmKMPRT
)

func (a Algorithm) String() string {
	if s, ok := registry[a]; ok {
		return s.name
	}
	return "unknown"
}

type registration struct {
	name    string
	isOracle bool
	factory func() Matcher
}

// registry is populated once in init and never mutated afterward — the
// only global mutable-looking state this module has, and it stops being
// mutable the moment init returns.
var registry = map[Algorithm]registration{}

func register(a Algorithm, name string, isOracle bool, factory func() Matcher) {
	if _, exists := registry[a]; exists {
		panic("matcher: duplicate registration for " + name)
	}
	registry[a] = registration{name: name, isOracle: isOracle, factory: factory}
}

// New constructs a fresh, uncompiled Matcher for the named algorithm.
func New(a Algorithm) (Matcher, bool) {
	r, ok := registry[a]
	if !ok {
		return nil, false
	}
	return r.factory(), true
}

// IsOracle reports whether a is the reference engine the harness compares
// every other algorithm against.
func IsOracle(a Algorithm) bool {
	return registry[a].isOracle
}

// All returns every registered algorithm, oracle last so the harness can
// build it after every tested engine if it wants to report it separately.
func All() []Algorithm {
	out := make([]Algorithm, 0, len(registry))
	var oracle *Algorithm
	for a, r := range registry {
		if r.isOracle {
			o := a
			oracle = &o
			continue
		}
		out = append(out, a)
	}
	if oracle != nil {
		out = append(out, *oracle)
	}
	return out
}
