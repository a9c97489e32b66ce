// Package ahocorasick implements a deterministic multi-pattern matcher used
// as the reference oracle the harness checks every other engine against.
// Construction is two-phase: a 256-way trie is built first, then compiled
// into a contiguous array of states with precomputed failure links, so the
// hot read loop never walks pointers into GC-managed node objects one at a
// time.
package ahocorasick

import (
	"github.com/coregx/streammatch/internal/conv"
	"github.com/coregx/streammatch/patterns"
)

const rootState = 0

// state is one compiled trie state: a dense 256-way transition table, the
// failure link, this state's own pattern id (NoPattern if it doesn't end
// one), and output — the pattern id ReadChar actually reports, resolved at
// Compile time to the nearest pattern along the failure chain (itself, if
// it has one) so a dictionary pattern that is a proper suffix of another is
// still reported when only the shorter one matches.
type state struct {
	next    [256]int32 // -1 means "no transition"; ReadChar resolves those through fail links
	fail    int32
	pattern patterns.ID
	output  patterns.ID
}

// Engine is the full (256-way table per state) Aho-Corasick variant: faster
// reads, proportional-to-alphabet-size memory per state.
type Engine struct {
	states    []state
	compiled  bool
	buildTrie *trieNode // discarded after Compile
	curState  int32
}

// New returns an uncompiled Engine ready for AddPattern calls.
func New() *Engine {
	return &Engine{buildTrie: newTrieNode()}
}

type trieNode struct {
	children [256]*trieNode
	pattern  patterns.ID
}

func newTrieNode() *trieNode {
	return &trieNode{pattern: patterns.NoPattern}
}

// AddPattern inserts pattern into the trie under id. Must be called before
// Compile.
func (e *Engine) AddPattern(pattern []byte, id patterns.ID) {
	if e.compiled {
		panic("ahocorasick: AddPattern after Compile")
	}
	cur := e.buildTrie
	for _, c := range pattern {
		if cur.children[c] == nil {
			cur.children[c] = newTrieNode()
		}
		cur = cur.children[c]
	}
	cur.pattern = id
}

// Compile freezes the trie into the contiguous state array, computing
// failure links by breadth-first traversal: for a node reached via c from
// parent x, walk x's failure chain until a state with a c-child is found
// (or root); that c-child is this node's failure link.
func (e *Engine) Compile() {
	if e.compiled {
		panic("ahocorasick: Compile called twice")
	}

	type queued struct {
		node *trieNode
		id   int32
	}

	e.states = append(e.states, state{pattern: e.buildTrie.pattern})
	for i := range e.states[0].next {
		e.states[0].next[i] = -1
	}

	var queue []queued
	for c := 0; c < 256; c++ {
		child := e.buildTrie.children[c]
		if child == nil {
			continue
		}
		id := conv.IntToInt32(len(e.states))
		e.states = append(e.states, newCompiledState(child))
		e.states[rootState].next[c] = id
		queue = append(queue, queued{child, id})
	}

	for qi := 0; qi < len(queue); qi++ {
		parentID := queue[qi].id
		for c := 0; c < 256; c++ {
			child := queue[qi].node.children[c]
			if child == nil {
				continue
			}
			childID := conv.IntToInt32(len(e.states))
			e.states = append(e.states, newCompiledState(child))
			e.states[parentID].next[c] = childID

			fail := e.states[parentID].fail
			for fail != rootState && e.states[fail].next[c] == -1 {
				fail = e.states[fail].fail
			}
			if e.states[fail].next[c] != -1 {
				e.states[childID].fail = e.states[fail].next[c]
			} else {
				e.states[childID].fail = rootState
			}

			queue = append(queue, queued{child, childID})
		}
	}

	// Resolve output links: BFS construction order guarantees a state's
	// fail index is always strictly less than its own, so one forward pass
	// suffices, same as the low-memory variant's suffixLink.
	e.states[rootState].output = e.states[rootState].pattern
	for i := 1; i < len(e.states); i++ {
		if e.states[i].pattern != patterns.NoPattern {
			e.states[i].output = e.states[i].pattern
		} else {
			e.states[i].output = e.states[e.states[i].fail].output
		}
	}

	e.buildTrie = nil
	e.compiled = true
}

func newCompiledState(n *trieNode) state {
	s := state{pattern: n.pattern}
	for i := range s.next {
		s.next[i] = -1
	}
	return s
}

// ReadChar feeds one byte and returns the output pattern id of the state it
// lands in. The current state is kept in Engine.curState across calls, same
// as every other matcher in this module — Compile does not reset it, Reset
// does.
func (e *Engine) ReadChar(c byte) patterns.ID {
	cur := e.curState
	for cur != rootState && e.states[cur].next[c] == -1 {
		cur = e.states[cur].fail
	}
	if e.states[cur].next[c] != -1 {
		cur = e.states[cur].next[c]
	}
	e.curState = cur
	return e.states[cur].output
}

// Reset returns the engine to the root state.
func (e *Engine) Reset() { e.curState = rootState }

// TotalMem reports the compiled state array's footprint in bytes.
func (e *Engine) TotalMem() int {
	const stateSize = 256*4 + 4 + 4 + 4
	return len(e.states) * stateSize
}

// Free releases the compiled states.
func (e *Engine) Free() {
	e.states = nil
	e.buildTrie = nil
}
