// Copyright 2025 by Harald Albrecht
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy
// of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations
// under the License.

/*
Package format provides the named formatters that can be applied to
interpolated values, such as in “{{name|upper}}”.

A formatter is a plain function taking the value to format and the position of
the placeholder in the text being interpolated. Most formatters don't care
about the position; line-aware formatters such as “padleft” use the column of
the placeholder to indent the second and following lines of multi-line values.

Formatters are looked up by name in a [Registry]. Registries are immutable
values: extending a registry returns a new registry, leaving the original
untouched. This makes registries safe for concurrent use without any locking.
*/
package format

import (
	"sort"
	"strings"
)

// Position of a placeholder in the text being interpolated.
type Position struct {
	Line   int // zero-based line index
	Column int // zero-based column of the opening delimiter, in runes
}

// Func formats a value, taking the placeholder's position into account where
// necessary.
type Func func(value string, pos Position) (string, error)

// Simple adapts a position-agnostic, infallible string function into a Func.
func Simple(fn func(string) string) Func {
	return func(value string, _ Position) (string, error) {
		return fn(value), nil
	}
}

// Registry maps case-insensitive formatter names to formatter functions.
type Registry struct {
	funcs map[string]Func
}

// NewRegistry returns a new Registry with the specified formatters.
func NewRegistry(funcs map[string]Func) Registry {
	r := Registry{funcs: make(map[string]Func, len(funcs))}
	for name, fn := range funcs {
		r.funcs[normalize(name)] = fn
	}
	return r
}

// Lookup returns the formatter with the specified name, ignoring case and
// surrounding whitespace, and true if found. Otherwise, it returns nil and
// false.
func (r Registry) Lookup(name string) (Func, bool) {
	fn, ok := r.funcs[normalize(name)]
	return fn, ok
}

// With returns a new Registry with the additional formatter, replacing an
// existing formatter of the same name in the new registry.
func (r Registry) With(name string, fn Func) Registry {
	funcs := make(map[string]Func, len(r.funcs)+1)
	for n, f := range r.funcs {
		funcs[n] = f
	}
	funcs[normalize(name)] = fn
	return Registry{funcs: funcs}
}

// Names returns the sorted (normalized) names of all formatters.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of formatters in this registry.
func (r Registry) Len() int { return len(r.funcs) }

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
