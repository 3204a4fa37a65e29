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

import (
	"fmt"
)

// nodeTag says which of the two variants a node is.
type nodeTag uint8

const (
	// rootTag nodes carry a rank and are the representative of a group.
	rootTag nodeTag = iota

	// leafTag nodes point to some other node.
	leafTag
)

// node is the tagged variant Root(rank) | Leaf(parent). Being a root is stated
// by the tag and never by pointing at ourself, which stays unambiguous once
// path compression starts rewriting parents.
type node struct {
	tag nodeTag

	// rank is only meaningful for a root. It's an upper bound for the
	// height of the tree, and not the exact height, since compression may
	// shorten a tree without touching the rank of its root.
	rank uint32

	// parent is only meaningful for a leaf.
	parent int
}

// forest is the state shared by the rank balanced strategies.
type forest struct {
	nodes []node
	count int
}

func newForest(n int) (forest, error) {
	if n < 1 {
		return forest{}, ErrEmpty
	}
	// the zero value of a node is a root of rank zero
	return forest{
		nodes: make([]node, n),
		count: n,
	}, nil
}

// setLeaf links n beneath r. Linking a node to itself would make a one node
// cycle, so that's an internal bug and not an input error.
func (obj *forest) setLeaf(n, r int) {
	if n == r {
		panic(fmt.Sprintf("disjoint: can't link node %d to itself", n))
	}
	obj.nodes[n] = node{tag: leafTag, parent: r}
}

// root walks up to the root of i and returns it along with its rank. This is
// O(log n) since the trees are balanced.
func (obj *forest) root(i int) (int, uint32) {
	for obj.nodes[i].tag == leafTag {
		i = obj.nodes[i].parent
	}
	return i, obj.nodes[i].rank
}

// link merges two distinct roots by their rank. The shallow tree goes beneath
// the deep one, so the height only grows (by one) when both have equal rank.
// When the ranks are equal, a goes beneath b and b is promoted. This order is
// significant and must not be swapped.
func (obj *forest) link(rootA int, rankA uint32, rootB int, rankB uint32) {
	if rootA == rootB {
		return // guard against a self leaf (and extra work)
	}
	switch {
	case rankA < rankB:
		obj.setLeaf(rootA, rootB)
	case rankA == rankB:
		obj.nodes[rootB].rank = rankB + 1 // the only place a rank changes
		obj.setLeaf(rootA, rootB)
	default:
		obj.setLeaf(rootB, rootA)
	}
	obj.count--
}

// depth counts the links from i to its root.
func (obj *forest) depth(i int) int {
	depth := 0
	for obj.nodes[i].tag == leafTag {
		i = obj.nodes[i].parent
		depth++
	}
	return depth
}

// rankOf returns the rank of the root of i's tree.
func (obj *forest) rankOf(i int) uint32 {
	_, rank := obj.root(i)
	return rank
}
