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

// Compressed is Weighted with path compression. When we look up the root of a
// node, we also set every node we walked through to point directly at that
// root, which saves future walks that pass through them. Ranks are left as they
// were, so they remain an upper bound on the height. The amortized cost of an
// operation is near constant.
type Compressed struct {
	forest
}

// NewCompressed returns a Compressed set with n singleton groups.
func NewCompressed(n int) (*Compressed, error) {
	f, err := newForest(n)
	if err != nil {
		return nil, err
	}
	return &Compressed{forest: f}, nil
}

// compress finds the root of i, and then re-points every leaf on the path from
// i to that root directly at it. Only the nodes on this one path change.
func (obj *Compressed) compress(i int) (int, uint32) {
	root, rank := obj.root(i)

	for obj.nodes[i].tag == leafTag {
		next := obj.nodes[i].parent
		if next != root {
			obj.setLeaf(i, root) // compress the path!
		}
		i = next
	}
	return root, rank
}

// Union merges the groups of a and b.
func (obj *Compressed) Union(a, b int) {
	mustIndex(a, len(obj.nodes))
	mustIndex(b, len(obj.nodes))

	rootA, rankA := obj.compress(a)
	rootB, rankB := obj.compress(b)
	obj.link(rootA, rankA, rootB, rankB)
}

// Connected returns true if a and b have the same root. This mutates the set,
// since both paths are compressed.
func (obj *Compressed) Connected(a, b int) bool {
	mustIndex(a, len(obj.nodes))
	mustIndex(b, len(obj.nodes))

	rootA, _ := obj.compress(a)
	rootB, _ := obj.compress(b)
	return rootA == rootB
}

// Find returns the root of i, and compresses the path to it.
func (obj *Compressed) Find(i int) int {
	mustIndex(i, len(obj.nodes))
	root, _ := obj.compress(i)
	return root
}

// Depth returns the number of links from i to its root. It does not compress.
func (obj *Compressed) Depth(i int) int {
	mustIndex(i, len(obj.nodes))
	return obj.depth(i)
}

// Rank returns the rank of the root of i's group. It does not compress.
func (obj *Compressed) Rank(i int) uint32 {
	mustIndex(i, len(obj.nodes))
	return obj.rankOf(i)
}

// Len returns the size of the universe.
func (obj *Compressed) Len() int { return len(obj.nodes) }

// Count returns the number of groups.
func (obj *Compressed) Count() int { return obj.count }
