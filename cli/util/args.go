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

package util

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/purpleidea/unionfind/util/disjoint"
)

// LookupSubcommand returns the name of the subcommand in the obj, of a struct.
// This is useful for determining the name of the subcommand that was activated.
// It returns an empty string if a specific name was not found.
func LookupSubcommand(obj interface{}, st interface{}) string {
	val := reflect.ValueOf(obj)
	if val.Kind() == reflect.Ptr { // max one de-referencing
		val = val.Elem()
	}

	v := reflect.ValueOf(st) // value of the struct
	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		f := val.Field(i) // value of the field
		if !f.CanInterface() || f.Interface() != v.Interface() {
			continue
		}

		field := typ.Field(i)
		alias, ok := field.Tag.Lookup("arg")
		if !ok {
			continue
		}

		// XXX: `arg` needs a split by comma first or fancier parsing
		prefix := "subcommand"
		split := strings.Split(alias, ":")
		if len(split) != 2 || split[0] != prefix {
			continue
		}

		return split[1] // found
	}
	return "" // not found
}

// ParseKinds parses a list of kind names. An empty list means every kind.
// Duplicates are an error.
func ParseKinds(names []string) ([]disjoint.Kind, error) {
	if len(names) == 0 {
		return disjoint.Kinds(), nil
	}
	kinds := []disjoint.Kind{}
	seen := make(map[disjoint.Kind]struct{})
	for _, name := range names {
		kind, err := disjoint.ParseKind(name)
		if err != nil {
			return nil, CliParseError(err)
		}
		if _, exists := seen[kind]; exists {
			return nil, CliParseError(fmt.Errorf("duplicate kind: %s", kind))
		}
		seen[kind] = struct{}{}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

// KindArgs is the common CLI parsing structure for commands which run one set.
type KindArgs struct {
	Kind string `arg:"--kind,env:UNIONFIND_KIND" default:"path-compressed-union" help:"disjoint set strategy: quick-find, quick-union, weighted-quick-union or path-compressed-union"`
}

// ParseKind returns the parsed kind.
func (obj *KindArgs) ParseKind() (disjoint.Kind, error) {
	kind, err := disjoint.ParseKind(obj.Kind)
	if err != nil {
		return 0, CliParseError(err)
	}
	return kind, nil
}
