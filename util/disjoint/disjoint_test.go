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

//go:build !root

package disjoint

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kylelemons/godebug/pretty"
	"github.com/sanity-io/litter"
)

// newSets builds one set of every kind.
func newSets(t testing.TB, n int) map[Kind]Set {
	t.Helper()
	sets := make(map[Kind]Set)
	for _, kind := range Kinds() {
		set, err := New(kind, n)
		if err != nil {
			t.Fatalf("kind: %s, could not build: %v", kind, err)
		}
		sets[kind] = set
	}
	return sets
}

// randomPairs returns a reproducible list of pairs in [0, n).
func randomPairs(seed uint64, n, count int) [][2]int {
	rng := rand.New(rand.NewPCG(seed, uint64(n)))
	pairs := make([][2]int, count)
	for i := range pairs {
		pairs[i] = [2]int{rng.IntN(n), rng.IntN(n)}
	}
	return pairs
}

// floorLog2 returns floor(log2(n)) for n >= 1.
func floorLog2(n int) int {
	return bits.Len(uint(n)) - 1
}

func expectOutOfRange(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Errorf("%s: expected a panic", name)
			return
		}
		if _, ok := r.(*OutOfRangeError); !ok {
			t.Errorf("%s: unexpected panic: %v", name, r)
		}
	}()
	fn()
}

func TestUnionFind0(t *testing.T) {
	type test struct {
		a, b int
		exp  bool
	}
	testCases := []test{
		{0, 0, true},
		{4, 3, true},
		{3, 4, true},
		{8, 9, true},
		{9, 3, true},
		{5, 6, true},
		{1, 2, true},
		{5, 0, false},
		{7, 0, false},
		{0, 7, false},
		{3, 1, false},
		{6, 9, false},
	}

	for kind, set := range newSets(t, 10) {
		set.Union(4, 3)
		set.Union(3, 8)
		set.Union(6, 5)
		set.Union(9, 4)
		set.Union(2, 1)

		for index, tc := range testCases {
			if got := set.Connected(tc.a, tc.b); got != tc.exp {
				t.Errorf("kind: %s, test #%d: Connected(%d, %d) = %t, expected: %t", kind, index, tc.a, tc.b, got, tc.exp)
			}
		}
		if c := set.Count(); c != 5 {
			t.Errorf("kind: %s, expected 5 groups, got: %d", kind, c)
		}
	}
}

func TestSingleton(t *testing.T) {
	for kind, set := range newSets(t, 1) {
		if !set.Connected(0, 0) {
			t.Errorf("kind: %s, element is not connected to itself", kind)
		}
		set.Union(0, 0) // legal no-op
		if set.Count() != 1 || set.Find(0) != 0 {
			t.Errorf("kind: %s, self union changed the set", kind)
		}

		expectOutOfRange(t, fmt.Sprintf("%s: Union(0, 1)", kind), func() { set.Union(0, 1) })
		expectOutOfRange(t, fmt.Sprintf("%s: Union(1, 0)", kind), func() { set.Union(1, 0) })
		expectOutOfRange(t, fmt.Sprintf("%s: Connected(0, 1)", kind), func() { set.Connected(0, 1) })
		expectOutOfRange(t, fmt.Sprintf("%s: Connected(1, 1)", kind), func() { set.Connected(1, 1) })
		expectOutOfRange(t, fmt.Sprintf("%s: Find(1)", kind), func() { set.Find(1) })
		expectOutOfRange(t, fmt.Sprintf("%s: Find(-1)", kind), func() { set.Find(-1) })

		// a rejected call must not have touched anything
		if set.Count() != 1 || !set.Connected(0, 0) {
			t.Errorf("kind: %s, state changed after a bad call", kind)
		}
	}
}

func TestEmpty(t *testing.T) {
	for _, kind := range Kinds() {
		for _, n := range []int{0, -1} {
			set, err := New(kind, n)
			if !errors.Is(err, ErrEmpty) {
				t.Errorf("kind: %s, n: %d, expected ErrEmpty, got: %v", kind, n, err)
			}
			if set != nil {
				t.Errorf("kind: %s, n: %d, expected a nil set", kind, n)
			}
		}
	}
	if _, err := New(Kind(42), 3); err == nil {
		t.Errorf("expected an error for an unknown kind")
	}
}

func TestOutOfRangeError(t *testing.T) {
	err := CheckIndex(7, 5)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Errorf("expected an OutOfRangeError, got: %v", err)
		return
	}
	if oor.Index != 7 || oor.Size != 5 {
		t.Errorf("unexpected contents: %s", spew.Sdump(oor))
	}
	if s := err.Error(); s != "index 7 is out of range [0, 5)" {
		t.Errorf("unexpected message: %s", s)
	}
	if err := CheckIndex(4, 5); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestChain(t *testing.T) {
	const n = 64
	for kind, set := range newSets(t, n) {
		for i := 0; i < n-1; i++ {
			if set.Connected(0, n-1) {
				t.Errorf("kind: %s, ends connected too early, before union #%d", kind, i)
				break
			}
			set.Union(i, i+1)
			if c, exp := set.Count(), n-1-i; c != exp {
				t.Errorf("kind: %s, after union #%d, expected %d groups, got: %d", kind, i, exp, c)
			}
		}
		if !set.Connected(0, n-1) {
			t.Errorf("kind: %s, ends are not connected", kind)
		}
		if c := set.Count(); c != 1 {
			t.Errorf("kind: %s, expected a single group, got: %d", kind, c)
		}
	}
}

func TestEquivalenceLaws(t *testing.T) {
	const n = 24
	for seed := uint64(0); seed < 4; seed++ {
		for kind, set := range newSets(t, n) {
			for _, p := range randomPairs(seed, n, n/2) {
				set.Union(p[0], p[1])
			}
			for a := 0; a < n; a++ {
				if !set.Connected(a, a) {
					t.Errorf("kind: %s, seed: %d, not reflexive at %d", kind, seed, a)
				}
				for b := 0; b < n; b++ {
					ab := set.Connected(a, b)
					if ab != set.Connected(b, a) {
						t.Errorf("kind: %s, seed: %d, not symmetric at (%d, %d)", kind, seed, a, b)
					}
					if !ab {
						continue
					}
					for c := 0; c < n; c++ {
						if set.Connected(b, c) && !set.Connected(a, c) {
							t.Errorf("kind: %s, seed: %d, not transitive at (%d, %d, %d)", kind, seed, a, b, c)
						}
					}
				}
			}
		}
	}
}

// matrix returns the full connected relation of a set.
func matrix(set Set) [][]bool {
	n := set.Len()
	out := make([][]bool, n)
	for a := range out {
		out[a] = make([]bool, n)
		for b := range out[a] {
			out[a][b] = set.Connected(a, b)
		}
	}
	return out
}

func TestMonotonicIdempotent(t *testing.T) {
	const n = 16
	pairs := randomPairs(7, n, 2*n)
	for kind, set := range newSets(t, n) {
		prev := matrix(set)
		for index, p := range pairs {
			set.Union(p[0], p[1])
			next := matrix(set)
			for a := range prev {
				for b := range prev[a] {
					if prev[a][b] && !next[a][b] {
						t.Errorf("kind: %s, union #%d split (%d, %d)", kind, index, a, b)
					}
				}
			}

			count := set.Count()
			set.Union(p[0], p[1]) // again, which must change nothing
			set.Union(p[1], p[0])
			if diff := pretty.Compare(next, matrix(set)); diff != "" {
				t.Errorf("kind: %s, repeated union #%d changed the relation: %s", kind, index, diff)
			}
			if set.Count() != count {
				t.Errorf("kind: %s, repeated union #%d changed the count", kind, index)
			}
			prev = next
		}
	}
}

// TestCrossVariant applies the same random unions to each kind and to a plain
// reference labelling, and expects every answer to agree.
func TestCrossVariant(t *testing.T) {
	for _, n := range []int{1, 2, 3, 10, 50, 200} {
		for seed := uint64(0); seed < 3; seed++ {
			group := make([]int, n) // reference
			for i := range group {
				group[i] = i
			}
			sets := newSets(t, n)
			for _, p := range randomPairs(seed, n, n) {
				for _, set := range sets {
					set.Union(p[0], p[1])
				}
				ga, gb := group[p[0]], group[p[1]]
				for i := range group {
					if group[i] == ga {
						group[i] = gb
					}
				}
			}

			var expected [][]int
			for _, kind := range Kinds() {
				set := sets[kind]
				for _, q := range randomPairs(seed+100, n, 4*n) {
					exp := group[q[0]] == group[q[1]]
					if got := set.Connected(q[0], q[1]); got != exp {
						t.Errorf("n: %d, seed: %d, kind: %s, Connected(%d, %d) = %t, expected: %t", n, seed, kind, q[0], q[1], got, exp)
					}
				}
				groups := Groups(set)
				if expected == nil {
					expected = groups
					continue
				}
				if diff := pretty.Compare(expected, groups); diff != "" {
					t.Errorf("n: %d, seed: %d, kind: %s, groups differ: %s", n, seed, kind, diff)
				}
			}
		}
	}
}

func TestBalanceBound(t *testing.T) {
	for _, n := range []int{1, 2, 7, 8, 100, 1000, 4096} {
		bound := floorLog2(n)
		sequences := map[string][][2]int{
			"random": randomPairs(3, n, 2*n),
		}
		// always union the deep tree beneath a fresh element, which is
		// the worst case for quick union
		worst := [][2]int{}
		for i := 1; i < n; i++ {
			worst = append(worst, [2]int{0, i})
		}
		sequences["worst"] = worst
		// pairwise merges of equal trees, which maximizes the ranks
		pairwise := [][2]int{}
		for step := 1; step < n; step *= 2 {
			for i := 0; i+step < n; i += 2 * step {
				pairwise = append(pairwise, [2]int{i, i + step})
			}
		}
		sequences["pairwise"] = pairwise

		for name, seq := range sequences {
			for _, kind := range []Kind{KindWeighted, KindCompressed} {
				set, err := New(kind, n)
				if err != nil {
					t.Errorf("kind: %s, could not build: %v", kind, err)
					continue
				}
				for index, p := range seq {
					set.Union(p[0], p[1])
					if n > 100 && index != len(seq)-1 {
						continue // only check the final state of big sets
					}
					if d := MaxDepth(set); d > bound {
						t.Errorf("n: %d, seq: %s, kind: %s, depth %d exceeds %d", n, name, kind, d, bound)
						break
					}
				}
			}
		}
	}
}

func TestQuickUnionDegenerate(t *testing.T) {
	const n = 100
	set, err := NewQuickUnion(n)
	if err != nil {
		t.Errorf("could not build: %v", err)
		return
	}
	for i := 0; i < n-1; i++ {
		set.Union(i, i+1) // every root goes beneath a singleton
	}
	if d := set.Depth(0); d != n-1 {
		t.Errorf("expected a depth of %d, got: %d", n-1, d)
	}
	if !set.Connected(0, n-1) { // the walk terminates
		t.Errorf("ends are not connected")
	}
}

func TestTieBreak(t *testing.T) {
	set, err := NewWeighted(4)
	if err != nil {
		t.Errorf("could not build: %v", err)
		return
	}

	set.Union(0, 1) // equal: 0 goes beneath 1, which is promoted
	if root := set.Find(0); root != 1 {
		t.Errorf("expected 0 beneath 1, root is: %d", root)
	}
	if r := set.Rank(1); r != 1 {
		t.Errorf("expected rank 1, got: %d", r)
	}

	set.Union(2, 1) // lower: 2 goes beneath 1
	if root := set.Find(2); root != 1 {
		t.Errorf("expected 2 beneath 1, root is: %d", root)
	}

	set.Union(1, 3) // higher: 3 goes beneath 1
	if root := set.Find(3); root != 1 {
		t.Errorf("expected 3 beneath 1, root is: %d", root)
	}
	if r := set.Rank(3); r != 1 {
		t.Errorf("expected rank to stay 1, got: %d", r)
	}

	set2, err := NewWeighted(4)
	if err != nil {
		t.Errorf("could not build: %v", err)
		return
	}
	set2.Union(0, 1)
	set2.Union(2, 3)
	set2.Union(1, 3) // equal again: 1 goes beneath 3
	if root := set2.Find(0); root != 3 {
		t.Errorf("expected root 3, got: %d", root)
	}
	if d := set2.Depth(0); d != 2 {
		t.Errorf("expected depth 2, got: %d", d)
	}
	if r := set2.Rank(0); r != 2 {
		t.Errorf("expected rank 2, got: %d", r)
	}
	if t.Failed() {
		t.Logf("state: %s", spew.Sdump(set2.nodes))
	}
}

func TestCompression(t *testing.T) {
	const n = 16
	weighted, err := NewWeighted(n)
	if err != nil {
		t.Errorf("could not build: %v", err)
		return
	}
	compressed, err := NewCompressed(n)
	if err != nil {
		t.Errorf("could not build: %v", err)
		return
	}
	// pairwise merges build one tree of height four
	for step := 1; step < n; step *= 2 {
		for i := 0; i+step < n; i += 2 * step {
			weighted.Union(i, i+step)
			compressed.Union(i, i+step)
		}
	}

	deepest := 0
	for i := 0; i < n; i++ {
		if compressed.Depth(i) > compressed.Depth(deepest) {
			deepest = i
		}
	}
	before := compressed.Depth(deepest)
	if before < 2 {
		t.Errorf("expected a deep tree, got depth: %d", before)
		return
	}
	rank := compressed.Rank(deepest)

	// record the path before compressing it
	path := []int{}
	for i := deepest; compressed.nodes[i].tag == leafTag; i = compressed.nodes[i].parent {
		path = append(path, i)
	}

	root := compressed.Find(deepest)
	for _, i := range path {
		if d := compressed.Depth(i); d != 1 {
			t.Errorf("node %d on the path has depth %d after compression", i, d)
		}
	}
	if r := compressed.Rank(deepest); r != rank {
		t.Errorf("compression changed the rank from %d to %d", rank, r)
	}
	if r := compressed.nodes[root].rank; r < uint32(MaxDepth(compressed)) {
		t.Errorf("rank %d is lower than the height %d", r, MaxDepth(compressed))
	}

	// the uncompressed set is untouched by Find
	weightedBefore := weighted.Depth(deepest)
	weighted.Find(deepest)
	if d := weighted.Depth(deepest); d != weightedBefore {
		t.Errorf("weighted depth changed from %d to %d", weightedBefore, d)
	}
	if diff := pretty.Compare(Groups(weighted), Groups(compressed)); diff != "" {
		t.Errorf("groups differ: %s", diff)
	}
}

func TestCompressionShortens(t *testing.T) {
	const n = 300
	set, err := NewCompressed(n)
	if err != nil {
		t.Errorf("could not build: %v", err)
		return
	}
	for _, p := range randomPairs(11, n, n) {
		set.Union(p[0], p[1])
		for _, i := range []int{p[0], p[1], (p[0] + p[1]) % n} {
			before := set.Depth(i)
			set.Find(i)
			after := set.Depth(i)
			if (before == 0 && after != 0) || (before > 0 && after != 1) {
				t.Errorf("depth of %d went from %d to %d", i, before, after)
			}
		}
	}
}

func TestGroups(t *testing.T) {
	set, err := NewCompressed(7)
	if err != nil {
		t.Errorf("could not build: %v", err)
		return
	}
	set.Union(6, 2)
	set.Union(4, 0)
	set.Union(2, 4)
	set.Union(5, 3)

	exp := [][]int{{0, 2, 4, 6}, {1}, {3, 5}}
	got := Groups(set)
	if diff := pretty.Compare(exp, got); diff != "" {
		t.Errorf("groups differ: %s", diff)
		t.Logf("groups: %s", litter.Sdump(got))
	}
	if c := set.Count(); c != len(exp) {
		t.Errorf("expected %d groups, got: %d", len(exp), c)
	}
}

func TestKindNames(t *testing.T) {
	type test struct {
		name string
		kind Kind
		fail bool
	}
	testCases := []test{
		{"quick-find", KindQuickFind, false},
		{"QuickFind", KindQuickFind, false},
		{"quick-union", KindQuickUnion, false},
		{"WeightedQuickUnion", KindWeighted, false},
		{"weighted-quick-union", KindWeighted, false},
		{" path-compressed-union ", KindCompressed, false},
		{"PathCompressedUnion", KindCompressed, false},
		{"nope", 0, true},
		{"", 0, true},
	}
	for index, tc := range testCases {
		kind, err := ParseKind(tc.name)
		if tc.fail {
			if err == nil {
				t.Errorf("test #%d: expected an error for %q", index, tc.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("test #%d: unexpected error: %v", index, err)
			continue
		}
		if kind != tc.kind {
			t.Errorf("test #%d: expected %s, got: %s", index, tc.kind, kind)
		}
	}

	for _, kind := range Kinds() {
		if k, err := ParseKind(kind.String()); err != nil || k != kind {
			t.Errorf("kind %s does not round trip", kind)
		}
	}
	if s := KindCompressed.String(); s != "path-compressed-union" {
		t.Errorf("unexpected name: %s", s)
	}
}

func TestLocked(t *testing.T) {
	const n = 500
	for _, kind := range Kinds() {
		set, err := New(kind, n)
		if err != nil {
			t.Errorf("kind: %s, could not build: %v", kind, err)
			continue
		}
		locked := NewLocked(set)

		wg := &sync.WaitGroup{}
		for w := 0; w < 8; w++ {
			wg.Add(1)
			go func(w int) {
				defer wg.Done()
				for i := w; i+8 < n; i += 8 {
					locked.Union(i, i+8) // eight chains, one per residue
					locked.Connected(i, n-1)
					locked.Find(i)
				}
			}(w)
		}
		wg.Wait()

		if c := locked.Count(); c != 8 {
			t.Errorf("kind: %s, expected 8 groups, got: %d", kind, c)
		}
		for i := 0; i < n; i++ {
			if !locked.Connected(i, i%8) {
				t.Errorf("kind: %s, %d is not connected to %d", kind, i, i%8)
				break
			}
		}
		if groups := locked.Groups(); len(groups) != 8 {
			t.Errorf("kind: %s, expected 8 groups, got: %s", kind, litter.Sdump(groups))
		}
		if d := MaxDepth(locked); kind == KindQuickFind && d != 0 {
			t.Errorf("quick find is not flat: %d", d)
		}
	}
}

func benchmarkKind(b *testing.B, kind Kind, n int) {
	pairs := randomPairs(1, n, n)
	queries := randomPairs(2, n, n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		set, err := New(kind, n)
		if err != nil {
			b.Fatalf("could not build: %v", err)
		}
		for _, p := range pairs {
			set.Union(p[0], p[1])
		}
		for _, q := range queries {
			set.Connected(q[0], q[1])
		}
	}
}

func BenchmarkQuickFind(b *testing.B)  { benchmarkKind(b, KindQuickFind, 2000) }
func BenchmarkQuickUnion(b *testing.B) { benchmarkKind(b, KindQuickUnion, 2000) }
func BenchmarkWeighted(b *testing.B)   { benchmarkKind(b, KindWeighted, 2000) }
func BenchmarkCompressed(b *testing.B) { benchmarkKind(b, KindCompressed, 2000) }
