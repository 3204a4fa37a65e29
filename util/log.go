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

// Package util contains small helpers which are shared by the other packages.
package util

import (
	"strings"
)

// Logf is the signature of the logging function which every component takes.
type Logf func(format string, v ...interface{})

// PrefixLogf returns a Logf which puts prefix in front of every message. A nil
// logf returns a Logf which discards everything.
func PrefixLogf(prefix string, logf Logf) Logf {
	if logf == nil {
		return func(format string, v ...interface{}) {}
	}
	return func(format string, v ...interface{}) {
		logf(prefix+format, v...)
	}
}

// LogWriter is a simple interface adapter between Logf and io.Writer. Each
// write is logged as one message, with the trailing newline removed.
type LogWriter struct {
	Prefix string
	Logf   func(format string, v ...interface{})
}

// Write satisfies the io.Writer interface.
func (obj *LogWriter) Write(p []byte) (n int, err error) {
	obj.Logf("%s%s", obj.Prefix, strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
