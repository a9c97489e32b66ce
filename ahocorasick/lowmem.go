package ahocorasick

import (
	"github.com/coregx/streammatch/internal/conv"
	"github.com/coregx/streammatch/patterns"
)

// lowMemState is one compiled state in the low-memory variant: a
// singly-linked list of (byte, target) children instead of a dense 256-way
// table, plus a suffix_link precomputed to the nearest failure-chain
// ancestor that carries a pattern id — so ReadChar returns a match
// directly instead of separately walking the failure chain for output.
type lowMemState struct {
	children   []lowMemChild
	fail       int32
	pattern    patterns.ID
	suffixLink int32 // nearest failure-chain ancestor with pattern != NoPattern, or -1
}

type lowMemChild struct {
	c      byte
	target int32
}

func (s *lowMemState) find(c byte) int32 {
	for _, ch := range s.children {
		if ch.c == c {
			return ch.target
		}
	}
	return -1
}

// LowMemEngine is the low-memory Aho-Corasick variant: O(total pattern
// bytes) instead of O(total pattern bytes * 256).
type LowMemEngine struct {
	states    []lowMemState
	compiled  bool
	buildTrie *trieNode
	curState  int32
}

// NewLowMem returns an uncompiled low-memory Engine.
func NewLowMem() *LowMemEngine {
	return &LowMemEngine{buildTrie: newTrieNode()}
}

// AddPattern inserts pattern into the trie under id. Must be called before
// Compile.
func (e *LowMemEngine) AddPattern(pattern []byte, id patterns.ID) {
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

// Compile freezes the trie into the compiled state array with failure
// links and precomputed suffix links to the nearest pattern-bearing
// ancestor.
func (e *LowMemEngine) Compile() {
	if e.compiled {
		panic("ahocorasick: Compile called twice")
	}

	type queued struct {
		node *trieNode
		id   int32
	}

	e.states = append(e.states, lowMemState{pattern: e.buildTrie.pattern, fail: rootState, suffixLink: -1})

	var queue []queued
	for c := 0; c < 256; c++ {
		child := e.buildTrie.children[c]
		if child == nil {
			continue
		}
		id := conv.IntToInt32(len(e.states))
		e.states = append(e.states, lowMemState{pattern: child.pattern, fail: rootState})
		e.states[rootState].children = append(e.states[rootState].children, lowMemChild{byte(c), id})
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
			e.states = append(e.states, lowMemState{pattern: child.pattern, fail: rootState})
			e.states[parentID].children = append(e.states[parentID].children, lowMemChild{byte(c), childID})

			fail := e.states[parentID].fail
			for fail != rootState {
				if t := e.states[fail].find(byte(c)); t != -1 {
					e.states[childID].fail = t
					break
				}
				fail = e.states[fail].fail
			}
			if fail == rootState {
				if t := e.states[rootState].find(byte(c)); t != -1 {
					e.states[childID].fail = t
				} else {
					e.states[childID].fail = rootState
				}
			}

			queue = append(queue, queued{child, childID})
		}
	}

	for i := range e.states {
		s := &e.states[i]
		if s.pattern != patterns.NoPattern {
			s.suffixLink = int32(i)
			continue
		}
		if i == rootState {
			s.suffixLink = -1
			continue
		}
		s.suffixLink = e.states[s.fail].suffixLink
	}

	e.buildTrie = nil
	e.compiled = true
}

// ReadChar feeds one byte and returns the pattern id ending here — either
// this state's own pattern, or (via the precomputed suffix link) the
// nearest failure-chain ancestor's pattern, or NoPattern.
func (e *LowMemEngine) ReadChar(c byte) patterns.ID {
	cur := e.curState
	for cur != rootState && e.states[cur].find(c) == -1 {
		cur = e.states[cur].fail
	}
	if t := e.states[cur].find(c); t != -1 {
		cur = t
	}
	e.curState = cur
	s := &e.states[cur]
	if s.pattern != patterns.NoPattern {
		return s.pattern
	}
	if s.suffixLink == -1 {
		return patterns.NoPattern
	}
	return e.states[s.suffixLink].pattern
}

// Reset returns the engine to the root state.
func (e *LowMemEngine) Reset() { e.curState = rootState }

// TotalMem reports the compiled states' footprint in bytes: each state is
// its child-edge list (5 bytes each) plus three int32 fields, proportional
// to total pattern length rather than to pattern length * 256.
func (e *LowMemEngine) TotalMem() int {
	total := 0
	for _, s := range e.states {
		total += len(s.children)*5 + 12
	}
	return total
}

// Free releases the compiled states.
func (e *LowMemEngine) Free() {
	e.states = nil
	e.buildTrie = nil
}
