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

	cliUtil "github.com/purpleidea/unionfind/cli/util"
	"github.com/purpleidea/unionfind/prometheus"
	"github.com/purpleidea/unionfind/server"
	"github.com/purpleidea/unionfind/util"
)

// ServeArgs is the CLI parsing structure and type of the parsed result. This
// particular one contains all the flags for the `serve` subcommand.
type ServeArgs struct {
	cliUtil.KindArgs // embedded (can't be a pointer) https://github.com/alexflint/go-arg/issues/240

	Size   int    `arg:"--size" default:"1000" help:"number of elements"`
	Listen string `arg:"--listen,env:UNIONFIND_LISTEN" help:"address to serve on"`

	Prometheus bool `arg:"--prometheus" help:"count operations, and serve them on /metrics"`
}

// Run executes the correct subcommand. It errors if there's ever an error. It
// returns true if we did activate one of the subcommands. It returns false if
// we did not. This information is used so that the top-level parser can return
// usage or help information if no subcommand activates. This particular Run is
// the run for the main `serve` subcommand. It blocks until ^C.
func (obj *ServeArgs) Run(ctx context.Context, data *cliUtil.Data) (bool, error) {
	kind, err := obj.ParseKind()
	if err != nil {
		return false, err
	}

	srv := &server.Server{
		Kind:   kind,
		Size:   obj.Size,
		Listen: obj.Listen,

		Debug: data.Flags.Debug,
		Logf:  util.PrefixLogf("server: ", data.Flags.Logf),
	}
	if obj.Prometheus {
		srv.Prometheus = &prometheus.Prometheus{}
		if err := srv.Prometheus.Init(); err != nil {
			return false, err
		}
	}
	if err := srv.Init(); err != nil {
		return false, err
	}
	if err := srv.Run(ctx); err != nil {
		return false, err
	}
	return true, nil
}
