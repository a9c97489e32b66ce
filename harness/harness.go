// Package harness runs a dictionary and a sequence of streams through every
// registered matching algorithm plus the Aho-Corasick reference oracle,
// classifying each tested algorithm's per-byte answer against the oracle and
// accumulating per-stream and per-run statistics.
package harness

import (
	"errors"
	"fmt"

	"github.com/coregx/streammatch/matcher"
	"github.com/coregx/streammatch/patterns"
	"github.com/coregx/streammatch/perfcounter"
	"github.com/coregx/streammatch/streamsrc"
)

// Verdict classifies one tested algorithm's answer at one stream position
// against the oracle's answer at the same position.
type Verdict int

const (
	// Success means the tested algorithm's id equals the oracle's.
	Success Verdict = iota
	// Partial means the tested algorithm returned a proper suffix of the
	// oracle's pattern: a correct but non-longest match.
	Partial
	// FalseNeg means the oracle found a match and the tested algorithm
	// reported none.
	FalseNeg
	// FalsePos means the tested algorithm disagreed with the oracle in a
	// way not explained by Partial (wrong pattern, or a spurious match
	// where the oracle found none).
	FalsePos
)

func (v Verdict) String() string {
	switch v {
	case Success:
		return "SUCCESS"
	case Partial:
		return "PARTIAL"
	case FalseNeg:
		return "FALSE_NEG"
	case FalsePos:
		return "FALSE_POS"
	default:
		return "UNKNOWN"
	}
}

// ErrUnknownAlgorithm is returned when the harness is asked to run an
// Algorithm that has no registry entry.
var ErrUnknownAlgorithm = errors.New("harness: unknown algorithm")

// classify implements spec's oracle-comparison contract exactly.
func classify(tree *patterns.Tree, algo, real patterns.ID) Verdict {
	switch {
	case algo == real:
		return Success
	case tree.IsSuffix(algo, real):
		return Partial
	case algo == patterns.NoPattern && real != patterns.NoPattern:
		return FalseNeg
	default:
		return FalsePos
	}
}

// StreamReport is the per-stream, per-algorithm outcome: accuracy counts
// plus wall-clock-adjacent resource usage recorded around that one stream.
type StreamReport struct {
	Algorithm    matcher.Algorithm
	StreamName   string
	BytesFed     int64
	Counts       map[Verdict]int64
	Collisions   int
	UsageDelta   perfcounter.Sample
	StaticMemory int
}

// Summary accumulates StreamReports for one algorithm across every stream
// in a run.
type Summary struct {
	Algorithm    matcher.Algorithm
	Counts       map[Verdict]int64
	Collisions   int
	BytesFed     int64
	PeakRSSBytes int64
	StaticMemory int
}

func newSummary(a matcher.Algorithm) *Summary {
	return &Summary{Algorithm: a, Counts: make(map[Verdict]int64)}
}

func (s *Summary) absorb(r StreamReport) {
	for v, n := range r.Counts {
		s.Counts[v] += n
	}
	s.Collisions += r.Collisions
	s.BytesFed += r.BytesFed
	s.StaticMemory = r.StaticMemory
	if r.UsageDelta.MaxRSSBytes > s.PeakRSSBytes {
		s.PeakRSSBytes = r.UsageDelta.MaxRSSBytes
	}
}

// Run holds every matcher under test plus the oracle, built from one shared
// Patterns Tree, ready to be pumped with one or more streams.
type Run struct {
	tree      *patterns.Tree
	oracle    matcher.Matcher
	oracleAlg matcher.Algorithm
	under     map[matcher.Algorithm]matcher.Matcher
	summaries map[matcher.Algorithm]*Summary
	verbose   func(format string, args ...any)
}

// New builds the Patterns Tree from entries and constructs+compiles one
// matcher per requested algorithm plus the oracle. verbose may be nil.
func New(entries []patterns.Entry, algos []matcher.Algorithm, verbose func(format string, args ...any)) (*Run, error) {
	if verbose == nil {
		verbose = func(string, ...any) {}
	}

	under := make(map[matcher.Algorithm]matcher.Matcher, len(algos))
	var oracleAlg matcher.Algorithm
	var oracle matcher.Matcher
	var oracleFound bool

	for _, a := range algos {
		m, ok := matcher.New(a)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, a)
		}
		if matcher.IsOracle(a) {
			oracleAlg, oracle, oracleFound = a, m, true
			continue
		}
		under[a] = m
	}
	if !oracleFound {
		oracleAlg = matcher.AlgorithmAC
		m, ok := matcher.New(oracleAlg)
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownAlgorithm, oracleAlg)
		}
		oracle = m
	}

	callbacks := make([]func(pattern []byte, id patterns.ID), 0, len(under)+1)
	for _, m := range under {
		m := m
		callbacks = append(callbacks, func(pattern []byte, id patterns.ID) { m.AddPattern(pattern, id) })
	}
	oc := oracle
	callbacks = append(callbacks, func(pattern []byte, id patterns.ID) { oc.AddPattern(pattern, id) })

	tree, err := patterns.Build(entries, callbacks...)
	if err != nil {
		return nil, fmt.Errorf("harness: building patterns tree: %w", err)
	}
	verbose("patterns tree built: %d distinct patterns", tree.Len())

	for a, m := range under {
		m.Compile()
		verbose("compiled %s: static memory %d bytes", a, m.TotalMem())
	}
	oracle.Compile()

	summaries := make(map[matcher.Algorithm]*Summary, len(under))
	for a := range under {
		summaries[a] = newSummary(a)
	}

	return &Run{
		tree:      tree,
		oracle:    oracle,
		oracleAlg: oracleAlg,
		under:     under,
		summaries: summaries,
		verbose:   verbose,
	}, nil
}

// RunStream pumps one stream's bytes through the oracle and every tested
// algorithm, resetting each first, and returns one StreamReport per tested
// algorithm.
func (r *Run) RunStream(name string, src *streamsrc.Source) ([]StreamReport, error) {
	r.oracle.Reset()
	colBefore := make(map[matcher.Algorithm]int, len(r.under))
	for a, m := range r.under {
		m.Reset()
		if c, ok := m.(interface{ Collisions() int }); ok {
			colBefore[a] = c.Collisions()
		}
	}

	counts := make(map[matcher.Algorithm]map[Verdict]int64, len(r.under))
	for a := range r.under {
		counts[a] = make(map[Verdict]int64)
	}

	before, _ := perfcounter.Now()
	var bytesFed int64

	err := src.Each(func(c byte) {
		bytesFed++
		real := r.oracle.ReadChar(c)
		for a, m := range r.under {
			algo := m.ReadChar(c)
			counts[a][classify(r.tree, algo, real)]++
		}
	})
	if err != nil {
		return nil, fmt.Errorf("harness: running stream %s: %w", name, err)
	}

	after, _ := perfcounter.Now()
	delta := after.Delta(before)

	reports := make([]StreamReport, 0, len(r.under))
	for a, m := range r.under {
		col := 0
		if c, ok := m.(interface{ Collisions() int }); ok {
			col = c.Collisions() - colBefore[a]
		}
		rep := StreamReport{
			Algorithm:    a,
			StreamName:   name,
			BytesFed:     bytesFed,
			Counts:       counts[a],
			Collisions:   col,
			UsageDelta:   delta,
			StaticMemory: m.TotalMem(),
		}
		r.summaries[a].absorb(rep)
		reports = append(reports, rep)
		r.verbose("stream %s / %s: %d bytes, %d collisions", name, a, bytesFed, col)
	}
	return reports, nil
}

// Summaries returns the accumulated per-algorithm Summary after one or more
// RunStream calls.
func (r *Run) Summaries() map[matcher.Algorithm]*Summary {
	return r.summaries
}

// Free releases every matcher and the oracle.
func (r *Run) Free() {
	r.oracle.Free()
	for _, m := range r.under {
		m.Free()
	}
	r.tree.Free()
}
