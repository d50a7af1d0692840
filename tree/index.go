package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/

import (
	"fmt"
	"sort"
)

/*
We manage ordered lists of children per parent key. A child key appears in at
most one list; the owner of the index makes sure of that by unlinking a key
from its old parent before linking it somewhere else.

Parents without children are not kept: an empty list is the same as no
entry at all.
*/

// Index maps a parent key to the ordered keys of its children.
type Index[K comparable] struct {
	children map[K][]K
}

// NewIndex creates an empty child index.
func NewIndex[K comparable]() *Index[K] {
	return &Index[K]{children: make(map[K][]K)}
}

func (ix *Index[K]) String() string {
	return fmt.Sprintf("(Index #parents=%d)", len(ix.children))
}

// Children returns a copy of the children of parent, in order.
// It returns nil if parent has no children.
func (ix *Index[K]) Children(parent K) []K {
	chs := ix.children[parent]
	if len(chs) == 0 {
		return nil
	}
	return append([]K(nil), chs...)
}

// ChildCount returns the number of children of parent.
func (ix *Index[K]) ChildCount(parent K) int {
	return len(ix.children[parent])
}

// Child returns the child at position i.
func (ix *Index[K]) Child(parent K, i int) (K, bool) {
	chs := ix.children[parent]
	if i < 0 || i >= len(chs) {
		var zero K
		return zero, false
	}
	return chs[i], true
}

// IndexOf returns the position of child among the children of parent,
// or -1 if child is not linked to parent.
func (ix *Index[K]) IndexOf(parent, child K) int {
	for i, ch := range ix.children[parent] {
		if ch == child {
			return i
		}
	}
	return -1
}

// Set replaces the children of parent. An empty list removes the entry.
func (ix *Index[K]) Set(parent K, children []K) {
	if len(children) == 0 {
		delete(ix.children, parent)
		return
	}
	ix.children[parent] = append([]K(nil), children...)
}

// Link inserts child into the children of parent at position at, shifting
// later children. An out-of-range position appends.
// If child is already linked to parent, it is moved to the new position.
func (ix *Index[K]) Link(parent, child K, at int) {
	chs := ix.children[parent]
	if i := ix.IndexOf(parent, child); i >= 0 {
		chs = append(chs[:i:i], chs[i+1:]...)
		if at > i {
			at--
		}
	}
	if at < 0 || at >= len(chs) {
		chs = append(chs, child)
	} else {
		chs = append(chs, child)   // make room for one child
		copy(chs[at+1:], chs[at:]) // shift at+1..n
		chs[at] = child
	}
	ix.children[parent] = chs
}

// Unlink removes child from the children of parent. It returns the former
// position of child, or -1 if it was not linked to parent.
func (ix *Index[K]) Unlink(parent, child K) int {
	i := ix.IndexOf(parent, child)
	if i < 0 {
		return -1
	}
	chs := ix.children[parent]
	rest := make([]K, 0, len(chs)-1)
	rest = append(rest, chs[:i]...)
	rest = append(rest, chs[i+1:]...)
	ix.Set(parent, rest)
	return i
}

// Drop removes the children entry of parent altogether.
func (ix *Index[K]) Drop(parent K) {
	delete(ix.children, parent)
}

// Has is true if parent has at least one child.
func (ix *Index[K]) Has(parent K) bool {
	return len(ix.children[parent]) > 0
}

// Len returns the number of parents with children.
func (ix *Index[K]) Len() int {
	return len(ix.children)
}

// Parents returns all parent keys with children, ordered by less.
func (ix *Index[K]) Parents(less func(a, b K) bool) []K {
	keys := make([]K, 0, len(ix.children))
	for k := range ix.children {
		keys = append(keys, k)
	}
	if less != nil {
		sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	}
	return keys
}

// Clear empties the index.
func (ix *Index[K]) Clear() {
	ix.children = make(map[K][]K)
}
