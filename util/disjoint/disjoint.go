// Unionfind
// Copyright (C) James Shubin and the project contributors
// Written by James Shubin <james@shubin.ca> and the project contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package disjoint implements a "disjoint-set data structure", otherwise known
// as the "union–find data structure", over a fixed universe of N elements which
// are addressed by the dense integer indices 0 to N-1.
//
// Four strategies implement the same Set interface, each one improving on the
// previous one:
//
// QuickFind keeps the group id of every element, so Connected is O(1) but each
// Union has to relabel the whole array, which is O(N).
//
// QuickUnion keeps a forest of parent pointers and only relinks one root on a
// Union, but nothing stops the trees from degenerating into a list, so every
// operation is O(N) in the worst case.
//
// Weighted keeps a rank on every root and always attaches the lower ranked tree
// beneath the higher ranked one, which bounds the height of every tree to
// floor(log2(N)) and so every operation is O(log N).
//
// Compressed is Weighted plus path compression: each walk to a root re-points
// every node it passes through directly at that root. The amortized cost is
// near constant, and this is the one you want for real use.
//
// The universe never grows or shrinks after construction. Passing an index
// outside of [0, N) to any operation is a programming error and panics with an
// *OutOfRangeError, since clamping or ignoring it would silently corrupt the
// partition.
//
// This package does not attempt to be thread-safe, and as a result, make sure
// to wrap this with the synchronization primitives of your choosing. The Locked
// wrapper is the simplest one.
//
// https://en.wikipedia.org/wiki/Disjoint-set_data_structure
package disjoint

import (
	"fmt"
	"strings"

	"github.com/iancoleman/strcase"
)

// ErrEmpty is returned by the constructors when asked for an empty universe.
const ErrEmpty = Error("a disjoint set needs at least one element")

// Error is a constant error type that implements error.
type Error string

// Error fulfills the error interface of this type.
func (e Error) Error() string { return string(e) }

// OutOfRangeError is the value that every operation panics with when it's
// given an index which is not part of the universe.
type OutOfRangeError struct {
	// Index is the offending index.
	Index int

	// Size is the number of elements in the universe.
	Size int
}

// Error fulfills the error interface of this type.
func (obj *OutOfRangeError) Error() string {
	return fmt.Sprintf("index %d is out of range [0, %d)", obj.Index, obj.Size)
}

// CheckIndex returns an *OutOfRangeError if the index isn't valid for a
// universe of this size. It is exported so that callers sitting at a trust
// boundary can reject bad input before it ever reaches a Set.
func CheckIndex(index, size int) error {
	if index < 0 || index >= size {
		return &OutOfRangeError{Index: index, Size: size}
	}
	return nil
}

// mustIndex panics if the index is out of range.
func mustIndex(index, size int) {
	if err := CheckIndex(index, size); err != nil {
		panic(err)
	}
}

// Set is the contract that every strategy implements. All of them model the
// same thing: a partition of the universe into disjoint, non-empty groups which
// starts with every element alone in its own group.
type Set interface {
	// Union merges the groups that contain a and b. If they're already in
	// the same group, then nothing changes.
	Union(a, b int)

	// Connected returns true if a and b are in the same group.
	Connected(a, b int) bool

	// Find returns the representative element of the group that contains
	// i. It is stable for as long as that group isn't merged again.
	Find(i int) int

	// Len returns the size of the universe.
	Len() int

	// Count returns the number of groups.
	Count() int
}

// Depther is implemented by the tree based strategies.
type Depther interface {
	// Depth returns the number of links between i and the root of its
	// tree. It never modifies the tree.
	Depth(i int) int
}

// Kind identifies one of the strategies.
type Kind int

const (
	// KindQuickFind is the eager relabeling strategy.
	KindQuickFind Kind = iota

	// KindQuickUnion is the unbalanced tree strategy.
	KindQuickUnion

	// KindWeighted is the rank balanced tree strategy.
	KindWeighted

	// KindCompressed is the rank balanced, path compressed strategy.
	KindCompressed
)

var kindNames = map[Kind]string{
	KindQuickFind:  "QuickFind",
	KindQuickUnion: "QuickUnion",
	KindWeighted:   "WeightedQuickUnion",
	KindCompressed: "PathCompressedUnion",
}

// Kinds returns every strategy, from the most naive to the most efficient.
func Kinds() []Kind {
	return []Kind{KindQuickFind, KindQuickUnion, KindWeighted, KindCompressed}
}

// String returns the kebab-case name of the kind, eg: quick-find.
func (k Kind) String() string {
	name, exists := kindNames[k]
	if !exists {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return strcase.ToKebab(name)
}

// ParseKind returns the kind with this name. Both the kebab-case form and the
// CamelCase form are accepted, regardless of case.
func ParseKind(s string) (Kind, error) {
	want := strcase.ToKebab(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if k.String() == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown kind: %s", s)
}

// New builds a fresh set of the requested kind, with n singleton groups.
func New(kind Kind, n int) (Set, error) {
	// build each one explicitly so that we never return a typed nil
	var set Set
	var err error
	switch kind {
	case KindQuickFind:
		set, err = NewQuickFind(n)
	case KindQuickUnion:
		set, err = NewQuickUnion(n)
	case KindWeighted:
		set, err = NewWeighted(n)
	case KindCompressed:
		set, err = NewCompressed(n)
	default:
		return nil, fmt.Errorf("unknown kind: %d", int(kind))
	}
	if err != nil {
		return nil, err
	}
	return set, nil
}

// Groups returns every group in the set. Each group is sorted, and the groups
// are ordered by their smallest element, so the result doesn't depend on which
// strategy was used.
func Groups(set Set) [][]int {
	byRoot := make(map[int][]int, set.Count())
	order := []int{}
	for i := 0; i < set.Len(); i++ {
		root := set.Find(i)
		if _, exists := byRoot[root]; !exists {
			order = append(order, root)
		}
		byRoot[root] = append(byRoot[root], i) // appended in increasing order
	}
	out := make([][]int, 0, len(order))
	for _, root := range order { // already ordered by smallest element
		out = append(out, byRoot[root])
	}
	return out
}

// MaxDepth returns the longest path from any element to its root. Sets that
// don't use trees are always flat, so this returns zero for them.
func MaxDepth(set Set) int {
	d, ok := set.(Depther)
	if !ok {
		return 0
	}
	max := 0
	for i := 0; i < set.Len(); i++ {
		if depth := d.Depth(i); depth > max {
			max = depth
		}
	}
	return max
}
