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

package scenario

import (
	"fmt"

	"github.com/purpleidea/unionfind/util/disjoint"
	"github.com/purpleidea/unionfind/util/errwrap"
)

// Answers are the results of running a scenario with one kind.
type Answers struct {
	Kind    disjoint.Kind
	Answers []bool
	Groups  [][]int
	Count   int

	// MaxDepth is the longest path to a root once everything ran.
	MaxDepth int
}

// Result is what Check found.
type Result struct {
	// Answers are in the same order as the kinds that were checked.
	Answers []*Answers

	// Disagreements are the indexes of the queries that didn't get the
	// same answer from every kind.
	Disagreements []int

	// Mismatches are the indexes of the queries whose answer differs from
	// the expected one, for any kind.
	Mismatches []int
}

// OK returns true if every kind agreed, and matched the expectations if any.
func (obj *Result) OK() bool {
	return len(obj.Disagreements) == 0 && len(obj.Mismatches) == 0
}

// Err returns an error that lists each problem, or nil if there were none.
func (obj *Result) Err() error {
	var reterr error
	for _, i := range obj.Disagreements {
		answers := []string{}
		for _, a := range obj.Answers {
			answers = append(answers, fmt.Sprintf("%s=%t", a.Kind, a.Answers[i]))
		}
		reterr = errwrap.Append(reterr, fmt.Errorf("query #%d: kinds disagree: %v", i, answers))
	}
	for _, i := range obj.Mismatches {
		reterr = errwrap.Append(reterr, fmt.Errorf("query #%d: unexpected answer", i))
	}
	return reterr
}

// Check runs the scenario with every one of the kinds, and compares their
// answers with each other and with the expectations. The error is only for a
// scenario that can't run. Look at the result to know if the answers were
// good.
func (obj *Scenario) Check(kinds []disjoint.Kind) (*Result, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("no kinds to check")
	}
	result := &Result{}
	for _, kind := range kinds {
		set, answers, err := obj.Run(kind)
		if err != nil {
			return nil, errwrap.Wrapf(err, "kind: %s", kind)
		}
		result.Answers = append(result.Answers, &Answers{
			Kind:     kind,
			Answers:  answers,
			Groups:   disjoint.Groups(set),
			Count:    set.Count(),
			MaxDepth: disjoint.MaxDepth(set),
		})
	}

	first := result.Answers[0]
	for i := range obj.Queries {
		agree := true
		mismatch := false
		for _, a := range result.Answers {
			if a.Answers[i] != first.Answers[i] {
				agree = false
			}
			if obj.Expect != nil && a.Answers[i] != obj.Expect[i] {
				mismatch = true
			}
		}
		if !agree {
			result.Disagreements = append(result.Disagreements, i)
		}
		if mismatch {
			result.Mismatches = append(result.Mismatches, i)
		}
	}
	return result, nil
}
