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

package cli

import (
	"context"
	"fmt"
	"strings"

	cliUtil "github.com/purpleidea/unionfind/cli/util"
	"github.com/purpleidea/unionfind/scenario"
	"github.com/purpleidea/unionfind/util"
	"github.com/purpleidea/unionfind/util/errwrap"

	"github.com/spf13/afero"
)

// CheckArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the flags for the `check` subcommand.
type CheckArgs struct {
	// Input is the path to the scenario file.
	Input string `arg:"positional,required" help:"scenario yaml file"`

	Kinds  []string `arg:"--kinds,separate" help:"strategy to check, can be repeated (every one if unset)"`
	Groups bool     `arg:"--groups" help:"print the groups of each strategy"`

	// fs is where the input is read from. It's the real filesystem unless
	// set.
	fs afero.Fs `arg:"-"`
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not. This information is used so that the top-level parser can return
// usage or help information if no subcommand activates. This particular Run is
// the run for the main `check` subcommand. Any disagreement between the kinds
// or with the expected answers is an error.
func (obj *CheckArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	kinds, err := cliUtil.ParseKinds(obj.Kinds)
	if err != nil {
		return false, err
	}
	Logf := util.PrefixLogf("check: ", data.Flags.Logf)

	fs := obj.fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	s, err := scenario.Load(fs, obj.Input)
	if err != nil {
		return false, err
	}
	if data.Flags.Debug {
		Logf("size: %d, unions: %d, queries: %d", s.Size, len(s.Unions), len(s.Queries))
	}

	result, err := s.Check(kinds)
	if err != nil {
		return false, err
	}
	for _, a := range result.Answers {
		answers := []string{}
		for _, x := range a.Answers {
			answers = append(answers, fmt.Sprintf("%t", x))
		}
		fmt.Printf("%s: [%s] groups: %d, max depth: %d\n", a.Kind, strings.Join(answers, " "), a.Count, a.MaxDepth)
		if obj.Groups {
			fmt.Printf("%s: %v\n", a.Kind, a.Groups)
		}
	}
	if !result.OK() {
		return false, errwrap.Wrapf(result.Err(), "check failed for: %s", obj.Input)
	}
	Logf("ok: %d queries agree on %d kinds", len(s.Queries), len(kinds))
	return true, nil
}
