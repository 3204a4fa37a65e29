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
	"github.com/purpleidea/unionfind/percolation"
	"github.com/purpleidea/unionfind/prometheus"
	"github.com/purpleidea/unionfind/util"

	"github.com/dustin/go-humanize"
)

// PercolateArgs is the CLI parsing structure and type of the parsed result.
// This particular one contains all the flags for the `percolate` subcommand.
type PercolateArgs struct {
	cliUtil.KindArgs // embedded (can't be a pointer) https://github.com/alexflint/go-arg/issues/240

	Size    int     `arg:"--size" default:"20" help:"length of a side of the grid"`
	Trials  int     `arg:"--trials" default:"1000" help:"number of grids to percolate"`
	Workers int     `arg:"--workers" help:"number of trials to run at once (0 is one per cpu)"`
	Seed    *uint64 `arg:"--seed,env:UNIONFIND_SEED" help:"seed for a reproducible run (random if unset)"`

	All  bool `arg:"--all" help:"require every open top cell to reach every open bottom cell"`
	Show bool `arg:"--show" help:"draw the grid of the first trial"`

	Prometheus       bool   `arg:"--prometheus" help:"start a prometheus instance, and keep serving it after the run until ^C"`
	PrometheusListen string `arg:"--prometheus-listen,env:UNIONFIND_PROMETHEUS_LISTEN" help:"specify prometheus instance binding"`
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not. This information is used so that the top-level parser can return
// usage or help information if no subcommand activates. This particular Run is
// the run for the main `percolate` subcommand.
func (obj *PercolateArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	kind, err := obj.ParseKind()
	if err != nil {
		return false, err
	}
	Logf := util.PrefixLogf("percolate: ", data.Flags.Logf)

	seed := uint64(time.Now().UnixNano())
	if obj.Seed != nil {
		seed = *obj.Seed
	}
	predicate := percolation.Any
	if obj.All {
		predicate = percolation.All
	}

	sim := &percolation.Simulation{
		Kind:      kind,
		Size:      obj.Size,
		Trials:    obj.Trials,
		Workers:   obj.Workers,
		Seed:      seed,
		Predicate: predicate,

		Debug: data.Flags.Debug,
		Logf:  Logf,
	}

	var prom *prometheus.Prometheus
	if obj.Prometheus {
		prom = &prometheus.Prometheus{
			Listen: obj.PrometheusListen,
		}
		if err := prom.Init(); err != nil {
			return false, err
		}
		if err := prom.Start(); err != nil {
			return false, err
		}
		defer prom.Stop()
		Logf("prometheus: serving metrics on: %s", prom.Addr())
		sim.Observe = func(trial *percolation.Trial) {
			prom.UpdateTrialsTotal(kind.String(), trial.Percolated)
		}
	}

	if data.Flags.Verbose {
		Logf("seed: %d", seed)
	}
	report, err := sim.Run(ctx)
	if err != nil {
		return false, err
	}
	fmt.Printf("%s\n", report)
	fmt.Printf("%s trials of %s cells, seed: %d\n", humanize.Comma(int64(report.Trials)), humanize.Comma(int64(report.Size*report.Size)), seed)

	if obj.Show {
		grid, trial, err := sim.RunGrid(0)
		if err != nil {
			return false, err
		}
		fmt.Printf("trial #0 opened %d cells (%.2f%%):\n%s", trial.Opened, 100*trial.Fraction, grid)
	}

	if prom != nil {
		prom.UpdateThreshold(kind.String(), report.Mean)
		Logf("waiting for ^C to exit...")
		<-ctx.Done()
	}
	return true, nil
}
