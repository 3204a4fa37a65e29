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

// QuickFind tracks the connected elements by keeping their values equal. If two
// indexes have the same owner, they are connected. A Union rewrites the owner
// of one whole group to the owner of the other.
type QuickFind struct {
	owner []int
	count int
}

// NewQuickFind returns a QuickFind with n singleton groups.
func NewQuickFind(n int) (*QuickFind, error) {
	if n < 1 {
		return nil, ErrEmpty
	}
	obj := &QuickFind{
		owner: make([]int, n),
		count: n,
	}
	for i := range obj.owner {
		obj.owner[i] = i
	}
	return obj, nil
}

// Union merges the groups of a and b. This is O(n) since every element is
// checked for membership in the group of a.
func (obj *QuickFind) Union(a, b int) {
	mustIndex(a, len(obj.owner))
	mustIndex(b, len(obj.owner))

	from := obj.owner[a]
	to := obj.owner[b]
	if from == to {
		return // rewriting a group into itself changes nothing
	}
	for i := range obj.owner {
		if obj.owner[i] == from {
			obj.owner[i] = to
		}
	}
	obj.count--
}

// Connected is O(1).
func (obj *QuickFind) Connected(a, b int) bool {
	mustIndex(a, len(obj.owner))
	mustIndex(b, len(obj.owner))
	return obj.owner[a] == obj.owner[b]
}

// Find returns the owner of i. The owner is always a member of the group.
func (obj *QuickFind) Find(i int) int {
	mustIndex(i, len(obj.owner))
	return obj.owner[i]
}

// Len returns the size of the universe.
func (obj *QuickFind) Len() int { return len(obj.owner) }

// Count returns the number of groups.
func (obj *QuickFind) Count() int { return obj.count }
