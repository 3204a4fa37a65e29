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

// Weighted is a QuickUnion which balances its trees. Whenever two trees are
// joined, the one with the lower rank is added beneath the one with the higher
// rank. The height of a tree can only grow when both ranks are equal, which
// keeps every tree at most floor(log2(n)) high, and so root, Union and
// Connected are all O(log n).
type Weighted struct {
	forest
}

// NewWeighted returns a Weighted set with n singleton groups.
func NewWeighted(n int) (*Weighted, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &Weighted{forest: f}, nil
}

// Union merges the groups of a and b.
func (obj *Weighted) Union(a, b int) {
	mustIndex(a, len(obj.nodes))
	mustIndex(b, len(obj.nodes))

	rootA, rankA := obj.root(a)
	rootB, rankB := obj.root(b)
	obj.link(rootA, rankA, rootB, rankB)
}

// Connected returns true if a and b have the same root.
func (obj *Weighted) Connected(a, b int) bool {
	mustIndex(a, len(obj.nodes))
	mustIndex(b, len(obj.nodes))

	rootA, _ := obj.root(a)
	rootB, _ := obj.root(b)
	return rootA == rootB
}

// Find returns the root of i.
func (obj *Weighted) Find(i int) int {
	mustIndex(i, len(obj.nodes))
	root, _ := obj.root(i)
	return root
}

// Depth returns the number of links from i to its root.
func (obj *Weighted) Depth(i int) int {
	mustIndex(i, len(obj.nodes))
	return obj.depth(i)
}

// Rank returns the rank of the root of i's group.
func (obj *Weighted) Rank(i int) uint32 {
	mustIndex(i, len(obj.nodes))
	return obj.rankOf(i)
}

// Len returns the size of the universe.
func (obj *Weighted) Len() int { return len(obj.nodes) }

// Count returns the number of groups.
func (obj *Weighted) Count() int { return obj.count }
