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
	"time"

	cliUtil "github.com/purpleidea/unionfind/cli/util"
	"github.com/purpleidea/unionfind/scenario"
	"github.com/purpleidea/unionfind/util"
	"github.com/purpleidea/unionfind/util/disjoint"

	"github.com/dustin/go-humanize"
)

// BenchArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the flags for the `bench` subcommand.
type BenchArgs struct {
	Size  int      `arg:"--size" default:"10000" help:"number of elements"`
	Ops   int      `arg:"--ops" default:"20000" help:"number of unions, and also of connected queries"`
	Seed  uint64   `arg:"--seed" default:"1" help:"seed of the workload"`
	Kinds []string `arg:"--kinds,separate" help:"strategy to time, can be repeated (every one if unset)"`
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not. This information is used so that the top-level parser can return
// usage or help information if no subcommand activates. This particular Run is
// the run for the main `bench` subcommand. Every kind gets the same workload.
func (obj *BenchArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	kinds, err := cliUtil.ParseKinds(obj.Kinds)
	if err != nil {
		return false, err
	}
	if obj.Ops < 1 {
		return false, cliUtil.CliParseError(fmt.Errorf("ops must be positive, got: %d", obj.Ops))
	}
	Logf := util.PrefixLogf("bench: ", data.Flags.Logf)

	workload, err := scenario.Random(obj.Seed, obj.Size, obj.Ops, obj.Ops)
	if err != nil {
		return false, err
	}
	Logf("%s elements, %s unions, %s queries", humanize.Comma(int64(obj.Size)), humanize.Comma(int64(obj.Ops)), humanize.Comma(int64(obj.Ops)))

	for _, kind := range kinds {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		set, err := disjoint.New(kind, workload.Size)
		if err != nil {
			return false, err
		}

		start := time.Now()
		for _, p := range workload.Unions {
			set.Union(p[0], p[1])
		}
		connected := 0
		for _, q := range workload.Queries {
			if set.Connected(q[0], q[1]) {
				connected++
			}
		}
		elapsed := time.Since(start)
		if elapsed <= 0 {
			elapsed = time.Nanosecond // coarse clocks
		}

		rate := float64(2*obj.Ops) / elapsed.Seconds()
		fmt.Printf("%-22s %12s %14s ops/sec, groups: %s, connected: %d, max depth: %d\n",
			kind, elapsed.Round(time.Microsecond), humanize.Comma(int64(rate)), humanize.Comma(int64(set.Count())), connected, disjoint.MaxDepth(set))
	}
	return true, nil
}
