// Package patterns implements the dictionary's pattern index: a reverse-
// suffix tree where a node is the parent of another iff its pattern is the
// longest proper suffix of the child's pattern among all dictionary
// patterns. Every matcher in the harness reports matches as node handles
// into this same tree, so handles from different engines are directly
// comparable.
package patterns

import (
	"errors"

	"github.com/coregx/streammatch/internal/conv"
)

// ID is an opaque handle into a Tree. The zero value is not meaningful on
// its own; use NoPattern for "no match".
type ID int32

// NoPattern is the sentinel id meaning "no pattern matched here". It is
// distinct from every real id a Tree hands out.
const NoPattern ID = -1

// Node is one compiled tree entry: a dictionary pattern's parent (the
// longest dictionary pattern that is a proper suffix of it, or NoPattern)
// and the source location it was read from.
type Node struct {
	Parent    ID
	FileIndex int
	LineIndex int
}

// Tree is the compiled pattern index: parent pointers and per-node source
// metadata only, no pattern bytes (those were consumed by add_pattern
// callbacks during Build and are not needed again).
type Tree struct {
	nodes []Node
}

// Len returns the number of distinct patterns in the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Parent returns id's parent: the longest dictionary pattern that is a
// proper suffix of id's pattern, or NoPattern if none.
func (t *Tree) Parent(id ID) ID {
	if id < 0 || int(id) >= len(t.nodes) {
		return NoPattern
	}
	return t.nodes[id].Parent
}

// Location returns the (file, line) a pattern was read from.
func (t *Tree) Location(id ID) (fileIndex, lineIndex int) {
	n := t.nodes[id]
	return n.FileIndex, n.LineIndex
}

// IsSuffix reports whether a is a proper suffix of b, i.e. whether a is a
// strict ancestor of b in the tree. IsSuffix(a, a) is always false.
func (t *Tree) IsSuffix(a, b ID) bool {
	if a == NoPattern || b == NoPattern || a == b {
		return false
	}
	cur := t.nodes[b].Parent
	for cur != NoPattern {
		if cur == a {
			return true
		}
		cur = t.nodes[cur].Parent
	}
	return false
}

// Free drops the tree's storage.
func (t *Tree) Free() { t.nodes = nil }

// Entry is one raw dictionary record, as produced by a dictionary loader.
type Entry struct {
	FileIndex int
	LineIndex int
	Pattern   []byte
}

// ErrEmptyPattern is returned by Build if asked to index a zero-length
// pattern (the dictionary loader should already have dropped these, but
// Build defends against it rather than silently misbuilding the tree).
var ErrEmptyPattern = errors.New("patterns: cannot index an empty pattern")

// Build constructs the Tree from entries, calling every add-pattern
// callback once per distinct pattern (duplicates across entries collapse
// to one node) with the pattern's bytes and its tree id, in the same
// order and with the same id for every callback — so that two matchers
// built from the same callbacks report directly comparable ids.
func Build(entries []Entry, addPattern ...func(pattern []byte, id ID)) (*Tree, error) {
	root := &fullNode{}

	for _, e := range entries {
		if len(e.Pattern) == 0 {
			return nil, ErrEmptyPattern
		}
		rev := reverseBytes(e.Pattern)
		n := insert(root, rev)
		if !n.isEnd {
			n.isEnd = true
			n.fileIndex = e.FileIndex
			n.lineIndex = e.LineIndex
		}
	}

	t := &Tree{}
	var dfs func(n *fullNode, revPath []byte, nearest ID)
	dfs = func(n *fullNode, revPath []byte, nearest ID) {
		cur := nearest
		if n.isEnd {
			patternBytes := reverseBytes(revPath)
			id := ID(conv.IntToInt32(len(t.nodes)))
			t.nodes = append(t.nodes, Node{Parent: nearest, FileIndex: n.fileIndex, LineIndex: n.lineIndex})
			for _, cb := range addPattern {
				cb(patternBytes, id)
			}
			cur = id
		}
		for _, ch := range n.children {
			dfs(ch, append(append([]byte{}, revPath...), ch.label...), cur)
		}
	}
	for _, ch := range root.children {
		dfs(ch, append([]byte{}, ch.label...), NoPattern)
	}

	return t, nil
}

func reverseBytes(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
