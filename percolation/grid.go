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

// Package percolation runs the grid percolation experiment on top of a
// disjoint set. Take a square grid of closed cells, and open them one at a time
// at random. Two open cells are connected if they share a side (diagonals don't
// count). The grid percolates once an open cell on the top row is connected to
// an open cell on the bottom row. The fraction of cells that had to be opened
// estimates the percolation threshold, which is close to 0.593 for large grids.
//
// The disjoint set knows nothing about the geometry; this package maps every
// (row, col) coordinate to a flat index before it asks anything of the set.
package percolation

import (
	"fmt"
	"strings"

	"github.com/purpleidea/unionfind/util/disjoint"
)

// Predicate selects what "percolates" means.
type Predicate int

const (
	// Any percolates when at least one open top cell is connected to at
	// least one open bottom cell. This is the classical definition.
	Any Predicate = iota

	// All percolates when every open top cell is connected to every open
	// bottom cell, and there is at least one of each.
	All
)

// String returns the name of the predicate.
func (p Predicate) String() string {
	switch p {
	case Any:
		return "any"
	case All:
		return "all"
	}
	return fmt.Sprintf("predicate(%d)", int(p))
}

// direction is a unit step on the grid.
type direction struct {
	row, col int
}

// directions is the fixed order in which neighbours get merged.
var directions = []direction{
	{0, -1}, // left
	{0, 1},  // right
	{-1, 0}, // up
	{1, 0},  // down
}

// Grid is a square grid of cells which are either open or closed, along with
// the disjoint set that tracks which open cells are connected.
type Grid struct {
	size   int
	open   []bool
	opened int
	set    disjoint.Set
}

// NewGrid returns a size by size grid with every cell closed, backed by a
// disjoint set of the requested kind.
func NewGrid(kind disjoint.Kind, size int) (*Grid, error) {
	if size < 1 {
		return nil, fmt.Errorf("grid size must be at least one, got: %d", size)
	}
	set, err := disjoint.New(kind, size*size)
	if err != nil {
		return nil, err
	}
	return &Grid{
		size: size,
		open: make([]bool, size*size),
		set:  set,
	}, nil
}

// Size returns the length of one side of the grid.
func (obj *Grid) Size() int { return obj.size }

// Len returns the number of cells.
func (obj *Grid) Len() int { return len(obj.open) }

// Opened returns the number of open cells.
func (obj *Grid) Opened() int { return obj.opened }

// Set returns the disjoint set which backs this grid.
func (obj *Grid) Set() disjoint.Set { return obj.set }

// Index maps a coordinate to the element of the disjoint set that represents
// it. It panics on coordinates outside of the grid.
func (obj *Grid) Index(row, col int) int {
	if row < 0 || row >= obj.size || col < 0 || col >= obj.size {
		panic(fmt.Sprintf("percolation: cell (%d, %d) is outside of a %dx%d grid", row, col, obj.size, obj.size))
	}
	return row + col*obj.size
}

// Coords is the inverse of Index.
func (obj *Grid) Coords(index int) (row, col int) {
	return index % obj.size, index / obj.size
}

// IsOpen returns true if the cell is open.
func (obj *Grid) IsOpen(row, col int) bool {
	return obj.open[obj.Index(row, col)]
}

// Open opens a cell, and merges it with each of its open neighbours, looking
// left, right, up and then down. Opening a cell which is already open does
// nothing.
func (obj *Grid) Open(row, col int) {
	idx := obj.Index(row, col)
	if obj.open[idx] {
		return
	}
	obj.open[idx] = true
	obj.opened++

	for _, d := range directions {
		r, c := row+d.row, col+d.col
		if r < 0 || r >= obj.size || c < 0 || c >= obj.size {
			continue // the edge of the grid
		}
		if n := obj.Index(r, c); obj.open[n] {
			obj.set.Union(idx, n)
		}
	}
}

// edges returns the indexes of the open cells on the top and bottom rows.
func (obj *Grid) edges() (top, bottom []int) {
	for col := 0; col < obj.size; col++ {
		if i := obj.Index(0, col); obj.open[i] {
			top = append(top, i)
		}
		if i := obj.Index(obj.size-1, col); obj.open[i] {
			bottom = append(bottom, i)
		}
	}
	return top, bottom
}

// Percolates returns true if any open cell on the top row is connected to any
// open cell on the bottom row.
func (obj *Grid) Percolates() bool {
	top, bottom := obj.edges()
	for _, t := range top {
		for _, b := range bottom {
			if obj.set.Connected(t, b) {
				return true
			}
		}
	}
	return false
}

// PercolatesAll returns true if every open cell on the top row is connected to
// every open cell on the bottom row. This is a stricter test than Percolates,
// and an empty top or bottom row never percolates.
func (obj *Grid) PercolatesAll() bool {
	top, bottom := obj.edges()
	if len(top) == 0 || len(bottom) == 0 {
		return false
	}
	for _, t := range top {
		for _, b := range bottom {
			if !obj.set.Connected(t, b) {
				return false
			}
		}
	}
	return true
}

// Check runs the chosen predicate.
func (obj *Grid) Check(p Predicate) bool {
	if p == All {
		return obj.PercolatesAll()
	}
	return obj.Percolates()
}

// String draws the grid, with a block for every closed cell.
func (obj *Grid) String() string {
	var sb strings.Builder
	for row := 0; row < obj.size; row++ {
		sb.WriteString("|")
		for col := 0; col < obj.size; col++ {
			if obj.IsOpen(row, col) {
				sb.WriteString(" ")
			} else {
				sb.WriteString("█")
			}
		}
		sb.WriteString("|\n")
	}
	return sb.String()
}
