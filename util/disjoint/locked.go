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
	"sync"
)

// Locked wraps a Set with a single mutex so that it can be shared between
// goroutines. Every method holds the lock for its whole duration, because a
// Union is a read-modify-write sequence (find both roots, then link one), and
// even Connected may write when the set compresses its paths.
type Locked struct {
	mutex *sync.Mutex
	set   Set
}

// NewLocked wraps the set. The set must not be used directly afterwards.
func NewLocked(set Set) *Locked {
	return &Locked{
		mutex: &sync.Mutex{},
		set:   set,
	}
}

// Union merges the groups of a and b.
func (obj *Locked) Union(a, b int) {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	obj.set.Union(a, b)
}

// Connected returns true if a and b are in the same group.
func (obj *Locked) Connected(a, b int) bool {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.set.Connected(a, b)
}

// Find returns the representative element of the group of i.
func (obj *Locked) Find(i int) int {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.set.Find(i)
}

// Depth returns the depth of i in the wrapped set, or zero if it's not a tree.
func (obj *Locked) Depth(i int) int {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	if d, ok := obj.set.(Depther); ok {
		return d.Depth(i)
	}
	mustIndex(i, obj.set.Len())
	return 0
}

// Len returns the size of the universe. It never changes, so no lock is taken.
func (obj *Locked) Len() int {
	return obj.set.Len()
}

// Count returns the number of groups.
func (obj *Locked) Count() int {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return obj.set.Count()
}

// Groups returns every group, like the Groups function does, but as a single
// atomic snapshot.
func (obj *Locked) Groups() [][]int {
	obj.mutex.Lock()
	defer obj.mutex.Unlock()
	return Groups(obj.set)
}
