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

// Package cli handles all of the core command line parsing. It's the first
// entry point after the real main function, and it runs the subcommand that
// was asked for.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	cliUtil "github.com/purpleidea/unionfind/cli/util"
	"github.com/purpleidea/unionfind/util/errwrap"

	"github.com/alexflint/go-arg"
)

// CLI is the entry point for using unionfind normally from the CLI.
func CLI(ctx context.Context, data *cliUtil.Data) error {
	// test for sanity
	if data == nil {
		return fmt.Errorf("this CLI was not run correctly")
	}
	if data.Program == "" || data.Version == "" {
		return fmt.Errorf("program was not compiled correctly")
	}
	if data.Flags.Logf == nil {
		return fmt.Errorf("the Logf function is missing")
	}

	args := Args{}
	args.version = data.Version // copy this in
	args.description = data.Tagline

	config := arg.Config{
		Program: data.Program,
	}
	parser, err := arg.NewParser(config, &args)
	if err != nil {
		// programming error
		return errwrap.Wrapf(err, "cli config error")
	}
	err = parser.Parse(data.Args[1:]) // args[0] is the program name
	if err == arg.ErrHelp {
		parser.WriteHelp(os.Stdout)
		return nil
	}
	if err == arg.ErrVersion {
		fmt.Printf("%s\n", data.Version) // byon: bring your own newline
		return nil
	}
	if err != nil {
		return cliUtil.CliParseError(err) // consistent errors
	}

	// the flags can only be turned on from here, never off
	data.Flags.Debug = data.Flags.Debug || args.Debug
	data.Flags.Verbose = data.Flags.Verbose || args.Verbose
	cliUtil.LogSetup(data.Flags)

	if ok, err := args.Run(ctx, data); err != nil {
		return err
	} else if ok { // did we activate one of the commands?
		return nil
	}

	// print help if no subcommands are set
	parser.WriteHelp(os.Stdout)

	return nil
}

// Args is the CLI parsing structure and type of the parsed result. This
// particular struct is the top-most one.
type Args struct {
	Debug   bool `arg:"--debug,env:UNIONFIND_DEBUG" help:"add additional log messages"`
	Verbose bool `arg:"--verbose,env:UNIONFIND_VERBOSE" help:"add extra log message output"`

	PercolateCmd *PercolateArgs `arg:"subcommand:percolate" help:"estimate the percolation threshold"`

	CheckCmd *CheckArgs `arg:"subcommand:check" help:"check a scenario file against every strategy"`

	BenchCmd *BenchArgs `arg:"subcommand:bench" help:"time a random workload on each strategy"`

	ServeCmd *ServeArgs `arg:"subcommand:serve" help:"serve a shared disjoint set over http"`

	// version is a private handle for our version string.
	version string `arg:"-"` // ignored from parsing

	// description is a private handle for our description string.
	description string `arg:"-"` // ignored from parsing
}

// Version returns the version string. Implementing this signature is part of
// the API for the cli library.
func (obj *Args) Version() string {
	return obj.version
}

// Description returns a description string. Implementing this signature is part
// of the API for the cli library.
func (obj *Args) Description() string {
	return obj.description
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not. This information is used so that the top-level parser can return
// usage or help information if no subcommand activates.
func (obj *Args) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	var name string
	var fn func(context.Context, *cliUtil.Data) (bool, error)
	if cmd := obj.PercolateCmd; cmd != nil {
		name, fn = cliUtil.LookupSubcommand(obj, cmd), cmd.Run // "percolate"
	}
	if cmd := obj.CheckCmd; cmd != nil {
		name, fn = cliUtil.LookupSubcommand(obj, cmd), cmd.Run // "check"
	}
	if cmd := obj.BenchCmd; cmd != nil {
		name, fn = cliUtil.LookupSubcommand(obj, cmd), cmd.Run // "bench"
	}
	if cmd := obj.ServeCmd; cmd != nil {
		name, fn = cliUtil.LookupSubcommand(obj, cmd), cmd.Run // "serve"
	}
	if fn == nil {
		return false, nil // nobody activated
	}

	if data.Flags.Verbose {
		cliUtil.Hello(data.Program, data.Version, data.Flags)
	}
	if data.Flags.Debug {
		data.Flags.Logf("main: running: %s", name)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	wg := &sync.WaitGroup{}
	defer wg.Wait()
	exit := make(chan struct{})
	defer close(exit)
	wg.Add(1)
	go func() {
		defer wg.Done()
		interrupt(exit, cancel, data.Flags.Logf)
	}()

	return fn(ctx, data)
}

// interrupt is the exit signal handler. The first signal cancels the running
// command, which should then return on its own. Three ^C in a row exits right
// away, for when it doesn't.
func interrupt(exit <-chan struct{}, cancel func(), logf func(format string, v ...interface{})) {
	// must have buffer for max number of signals
	signals := make(chan os.Signal, 3+1) // 3 * ^C + 1 * SIGTERM
	signal.Notify(signals, os.Interrupt) // catch ^C
	signal.Notify(signals, syscall.SIGTERM)
	defer signal.Stop(signals)

	var count uint8
	for {
		select {
		case sig := <-signals: // any signal will do
			if sig != os.Interrupt {
				logf("interrupted by signal")
				cancel()
				return
			}

			switch count {
			case 0:
				logf("interrupted by ^C")
				cancel()
			case 1:
				logf("interrupted by ^C (once more to exit now)")
			case 2:
				logf("interrupted by ^C (hard interrupt)")
				os.Exit(1)
			}
			count++

		case <-exit:
			return
		}
	}
}
