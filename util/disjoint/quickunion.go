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

package disjoint

// QuickUnion only changes one entry on a Union, which forms a forest of trees.
// Two elements are connected if walking up from each of them reaches the same
// root. Nothing keeps the trees shallow, so an unlucky sequence of unions makes
// a tree of depth n, and then every operation is O(n).
//
// A root is an element which is its own parent.
type QuickUnion struct {
	parent []int
	count  int
}

// NewQuickUnion returns a QuickUnion with n singleton groups.
func NewQuickUnion(n int) (*QuickUnion, error) {
	if n < 1 {
		return nil, ErrEmpty
	}
	obj := &QuickUnion{
		parent: make([]int, n),
		count:  n,
	}
	for i := range obj.parent {
		obj.parent[i] = i // initially point to self
	}
	return obj, nil
}

// root walks up to the fixed point. This is a loop and not a recursion because
// the tree may be as deep as the universe is large.
func (obj *QuickUnion) root(i int) int {
	for i != obj.parent[i] {
		i = obj.parent[i]
	}
	return i
}

// Union attaches the root of a beneath the root of b.
func (obj *QuickUnion) Union(a, b int) {
	mustIndex(a, len(obj.parent))
	mustIndex(b, len(obj.parent))

	rootA := obj.root(a)
	rootB := obj.root(b)
	if rootA == rootB {
		return // already part of the same group, do nothing
	}
	obj.parent[rootA] = rootB
	obj.count--
}

// Connected returns true if a and b have the same root.
func (obj *QuickUnion) Connected(a, b int) bool {
	mustIndex(a, len(obj.parent))
	mustIndex(b, len(obj.parent))
	return obj.root(a) == obj.root(b)
}

// Find returns the root of i.
func (obj *QuickUnion) Find(i int) int {
	mustIndex(i, len(obj.parent))
	return obj.root(i)
}

// Depth returns the number of links from i to its root.
func (obj *QuickUnion) Depth(i int) int {
	mustIndex(i, len(obj.parent))
	depth := 0
	for i != obj.parent[i] {
		i = obj.parent[i]
		depth++
	}
	return depth
}

// Len returns the size of the universe.
func (obj *QuickUnion) Len() int { return len(obj.parent) }

// Count returns the number of groups.
func (obj *QuickUnion) Count() int { return obj.count }
