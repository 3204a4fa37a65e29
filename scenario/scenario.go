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

// Package scenario loads scripted sequences of unions and queries, and checks
// that every disjoint set strategy answers them the same way. A scenario is a
// small yaml file:
//
//	size: 10
//	unions:
//	  - [4, 3]
//	  - [3, 8]
//	queries:
//	  - [8, 4]
//	  - [5, 0]
//	expect: [true, false]
//
// The expect list is optional, and if present, has one entry per query.
package scenario

import (
	"fmt"
	"math/rand/v2"

	"github.com/purpleidea/unionfind/util/disjoint"
	"github.com/purpleidea/unionfind/util/errwrap"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Pair is two element indexes.
type Pair [2]int

// Scenario is a universe size, a list of unions to apply in order, and then a
// list of connectivity queries to answer.
type Scenario struct {
	// Size is the number of elements.
	Size int `yaml:"size"`

	// Unions are applied in order.
	Unions []Pair `yaml:"unions"`

	// Queries are asked after every union was applied.
	Queries []Pair `yaml:"queries"`

	// Expect is the optional list of expected answers to the queries.
	Expect []bool `yaml:"expect,omitempty"`
}

// Parse decodes a scenario from yaml. Unknown fields are an error, since they
// are most likely a typo.
func Parse(data []byte) (*Scenario, error) {
	obj := &Scenario{}
	if err := yaml.UnmarshalStrict(data, obj); err != nil {
		return nil, errwrap.Wrapf(err, "could not parse scenario")
	}
	return obj, nil
}

// Load reads and parses a scenario file from the filesystem.
func Load(fs afero.Fs, path string) (*Scenario, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errwrap.Wrapf(err, "could not read scenario")
	}
	obj, err := Parse(data)
	if err != nil {
		return nil, errwrap.Wrapf(err, "in file: %s", path)
	}
	return obj, nil
}

// Marshal encodes the scenario as yaml.
func (obj *Scenario) Marshal() ([]byte, error) {
	return yaml.Marshal(obj)
}

// Validate checks the whole scenario and returns every problem it finds, not
// only the first one. Running a scenario which doesn't validate would panic.
func (obj *Scenario) Validate() error {
	if obj.Size < 1 {
		return fmt.Errorf("size must be at least one, got: %d", obj.Size)
	}
	var reterr error
	check := func(what string, index int, p Pair) {
		for _, i := range p {
			if err := disjoint.CheckIndex(i, obj.Size); err != nil {
				reterr = errwrap.Append(reterr, errwrap.Wrapf(err, "%s #%d", what, index))
			}
		}
	}
	for index, p := range obj.Unions {
		check("union", index, p)
	}
	for index, p := range obj.Queries {
		check("query", index, p)
	}
	if obj.Expect != nil && len(obj.Expect) != len(obj.Queries) {
		reterr = errwrap.Append(reterr, fmt.Errorf("got %d expectations for %d queries", len(obj.Expect), len(obj.Queries)))
	}
	return reterr
}

// Run applies the unions to a fresh set of this kind, and returns the set along
// with the answers to the queries.
func (obj *Scenario) Run(kind disjoint.Kind) (disjoint.Set, []bool, error) {
	if err := obj.Validate(); err != nil {
		return nil, nil, err
	}
	set, err := disjoint.New(kind, obj.Size)
	if err != nil {
		return nil, nil, err
	}
	for _, p := range obj.Unions {
		set.Union(p[0], p[1])
	}
	answers := make([]bool, 0, len(obj.Queries))
	for _, q := range obj.Queries {
		answers = append(answers, set.Connected(q[0], q[1]))
	}
	return set, answers, nil
}

// Random generates a reproducible scenario with the given number of random
// unions and queries. It has no expectations.
func Random(seed uint64, size, unions, queries int) (*Scenario, error) {
	if size < 1 {
		return nil, fmt.Errorf("size must be at least one, got: %d", size)
	}
	rng := rand.New(rand.NewPCG(seed, uint64(size)))
	pair := func() Pair { return Pair{rng.IntN(size), rng.IntN(size)} }

	obj := &Scenario{
		Size:    size,
		Unions:  make([]Pair, 0, unions),
		Queries: make([]Pair, 0, queries),
	}
	for i := 0; i < unions; i++ {
		obj.Unions = append(obj.Unions, pair())
	}
	for i := 0; i < queries; i++ {
		obj.Queries = append(obj.Queries, pair())
	}
	return obj, nil
}
