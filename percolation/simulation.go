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

package percolation

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"runtime"
	"sort"
	"time"

	"github.com/purpleidea/unionfind/util/disjoint"
	"github.com/purpleidea/unionfind/util/errwrap"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSize is the length of a side of the grid if none is given.
	DefaultSize = 20

	// DefaultTrials is the number of trials if none is given.
	DefaultTrials = 1000

	// confidence95 is the z value of a 95% confidence interval.
	confidence95 = 1.96
)

// Trial is the result of opening cells on one fresh grid until it percolated.
type Trial struct {
	// Index is the number of this trial, from zero.
	Index int

	// Opened is the number of cells that were open once it percolated.
	Opened int

	// Fraction is Opened divided by the number of cells.
	Fraction float64

	// Percolated is false only if opening every cell still didn't satisfy
	// the predicate, which can't happen with a correct disjoint set.
	Percolated bool
}

// Report summarizes every trial of a Simulation.
type Report struct {
	// ID is a unique id for this run, so that logs can be correlated.
	ID string

	Kind      disjoint.Kind
	Predicate Predicate
	Size      int
	Trials    int

	// Mean is the estimate of the percolation threshold.
	Mean float64

	// StdDev is the sample standard deviation, which is NaN for a single
	// trial.
	StdDev float64

	// Low and High are the bounds of the 95% confidence interval.
	Low  float64
	High float64

	// Elapsed is the wall clock time that the trials took.
	Elapsed time.Duration
}

// String returns a short human readable summary.
func (obj *Report) String() string {
	return fmt.Sprintf("%s: %dx%d grid, %d trials: threshold %.4f (stddev %.4f, 95%% in [%.4f, %.4f]) in %s",
		obj.Kind, obj.Size, obj.Size, obj.Trials, obj.Mean, obj.StdDev, obj.Low, obj.High, obj.Elapsed)
}

// Simulation estimates the percolation threshold by Monte Carlo. Every trial
// opens the cells of a fresh grid in a random order until it percolates. Each
// trial has its own random source which is derived from Seed and the trial
// index, so the result doesn't depend on how many workers ran it.
type Simulation struct {
	// Kind is the disjoint set strategy that backs each grid.
	Kind disjoint.Kind

	// Size is the length of a side of the grid.
	Size int

	// Trials is the number of grids to percolate.
	Trials int

	// Workers is the maximum number of trials that run at once. Zero picks
	// the number of CPUs.
	Workers int

	// Seed makes the run reproducible.
	Seed uint64

	// Predicate chooses what percolates means.
	Predicate Predicate

	// Observe, if not nil, is called after each trial. It may be called
	// concurrently from different workers.
	Observe func(*Trial)

	// Debug represents if we're running in debug mode or not.
	Debug bool

	// Logf is a logger which should be used.
	Logf func(format string, v ...interface{})
}

// Validate checks the parameters, and fills in the defaults.
func (obj *Simulation) Validate() error {
	if obj.Size == 0 {
		obj.Size = DefaultSize
	}
	if obj.Trials == 0 {
		obj.Trials = DefaultTrials
	}
	if obj.Workers == 0 {
		obj.Workers = runtime.NumCPU()
	}
	if obj.Size < 1 {
		return fmt.Errorf("size must be positive, got: %d", obj.Size)
	}
	if obj.Trials < 1 {
		return fmt.Errorf("trials must be positive, got: %d", obj.Trials)
	}
	if obj.Workers < 1 {
		return fmt.Errorf("workers must be positive, got: %d", obj.Workers)
	}
	if obj.Predicate != Any && obj.Predicate != All {
		return fmt.Errorf("unknown predicate: %s", obj.Predicate)
	}
	if _, err := disjoint.New(obj.Kind, 1); err != nil {
		return errwrap.Wrapf(err, "invalid kind")
	}
	if obj.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}
	return nil
}

// RunTrial runs one trial. This is deterministic for a given seed and index.
func (obj *Simulation) RunTrial(index int) (*Trial, error) {
	_, trial, err := obj.RunGrid(index)
	return trial, err
}

// RunGrid runs one trial like RunTrial does, and also returns the grid in the
// state it was in when the trial stopped.
func (obj *Simulation) RunGrid(index int) (*Grid, *Trial, error) {
	grid, err := NewGrid(obj.Kind, obj.Size)
	if err != nil {
		return nil, nil, err
	}
	rng := rand.New(rand.NewPCG(obj.Seed, uint64(index)))

	trial := &Trial{
		Index: index,
	}
	// Opening the cells in the order of a random permutation is the same
	// as repeatedly picking a random closed cell, but without the retries.
	for _, cell := range rng.Perm(grid.Len()) {
		grid.Open(grid.Coords(cell))
		if grid.Check(obj.Predicate) {
			trial.Percolated = true
			break
		}
	}
	trial.Opened = grid.Opened()
	trial.Fraction = float64(trial.Opened) / float64(grid.Len())

	if obj.Debug {
		obj.Logf("trial #%d: opened %d/%d, percolated: %t\n%s", index, trial.Opened, grid.Len(), trial.Percolated, grid)
	}
	return grid, trial, nil
}

// Run runs every trial with a bounded pool of workers and returns the report.
// It stops early with the context error if the context is cancelled.
func (obj *Simulation) Run(ctx context.Context) (*Report, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}
	id := uuid.New().String()
	obj.Logf("run %s: %s, %dx%d grid, %d trials, %d workers", id, obj.Kind, obj.Size, obj.Size, obj.Trials, obj.Workers)
	start := time.Now()

	trials := make([]*Trial, obj.Trials) // each worker writes its own slot
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(obj.Workers)
	for i := 0; i < obj.Trials; i++ {
		if gctx.Err() != nil {
			break // stop scheduling, g.Wait reports why
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			trial, err := obj.RunTrial(i)
			if err != nil {
				return errwrap.Wrapf(err, "trial #%d failed", i)
			}
			if !trial.Percolated {
				return fmt.Errorf("trial #%d never percolated", i)
			}
			trials[i] = trial
			if obj.Observe != nil {
				obj.Observe(trial)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil { // cancelled before any worker saw it
		return nil, err
	}

	report := Summarize(trials)
	report.ID = id
	report.Kind = obj.Kind
	report.Predicate = obj.Predicate
	report.Size = obj.Size
	report.Elapsed = time.Since(start)
	obj.Logf("run %s: done in %s", id, report.Elapsed)
	return report, nil
}

// Summarize computes the statistics of a list of trials. Only the statistics
// fields of the report are filled in.
func Summarize(trials []*Trial) *Report {
	report := &Report{
		Trials: len(trials),
	}
	if len(trials) == 0 {
		report.Mean, report.StdDev = math.NaN(), math.NaN()
		report.Low, report.High = math.NaN(), math.NaN()
		return report
	}

	fractions := make([]float64, 0, len(trials))
	for _, t := range trials {
		fractions = append(fractions, t.Fraction)
	}
	sort.Float64s(fractions) // summing in order is a bit more accurate

	sum := 0.0
	for _, f := range fractions {
		sum += f
	}
	n := float64(len(fractions))
	report.Mean = sum / n

	report.StdDev = math.NaN()
	if len(fractions) > 1 {
		ss := 0.0
		for _, f := range fractions {
			ss += (f - report.Mean) * (f - report.Mean)
		}
		report.StdDev = math.Sqrt(ss / (n - 1))
	}

	report.Low, report.High = report.Mean, report.Mean
	if !math.IsNaN(report.StdDev) {
		delta := confidence95 * report.StdDev / math.Sqrt(n)
		report.Low, report.High = report.Mean-delta, report.Mean+delta
	}
	return report
}
