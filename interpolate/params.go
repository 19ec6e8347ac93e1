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

package interpolate

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Params maps parameter keys to their values. Values can be strings, numbers,
// booleans, nil, or nested mappings and sequences.
type Params map[string]any

type unset struct{}

func (unset) String() string { return "" }

// Unset marks a parameter as present, yet without a value. An unset parameter
// is missing when interpolating, but it nevertheless shadows any fallback
// parameter with the same key, such as an environment variable.
var Unset any = unset{}

// ParseParams parses parameters in either JSON format or as a list of
// comma-separated “key=value” pairs. Any other valid JSON text than an object
// results in empty parameters.
//
// In “key=value” format, only the first “=” separates the key from the value.
// Keys get trimmed, values are kept as is. Keys without a value (either “key”
// or “key=”) are [Unset]. Empty keys are ignored.
func ParseParams(s string) Params {
	if json.Valid([]byte(s)) {
		var decoded any
		dec := json.NewDecoder(strings.NewReader(s))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err == nil {
			if m, ok := decoded.(map[string]any); ok {
				return Params(m)
			}
		}
		return Params{}
	}
	params := Params{}
	for _, token := range strings.Split(s, ",") {
		if token == "" || token == "=" {
			continue
		}
		key, value, _ := strings.Cut(token, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if value == "" {
			params[key] = Unset
			continue
		}
		params[key] = value
	}
	return params
}

// FromEnviron returns the parameters from a list of “key=value” environment
// variables, as returned by [os.Environ].
func FromEnviron(environ []string) Params {
	params := Params{}
	for _, pair := range environ {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		params[key] = value
	}
	return params
}

// Has returns true if there is a parameter with the specified (literal) key,
// even if it is [Unset].
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// Merge returns new parameters with the parameters from other overriding the
// parameters p.
func (p Params) Merge(other Params) Params {
	merged := make(Params, len(p)+len(other))
	for key, value := range p {
		merged[key] = value
	}
	for key, value := range other {
		merged[key] = value
	}
	return merged
}

// Defaults returns new parameters with the parameters from other filling in
// only those keys missing in p. Unset parameters in p are not filled in.
func (p Params) Defaults(other Params) Params {
	merged := make(Params, len(p)+len(other))
	for key, value := range other {
		merged[key] = value
	}
	for key, value := range p {
		merged[key] = value
	}
	return merged
}

// Lookup returns the value of the parameter with the specified key, and true
// if found. The key is either a literal key or otherwise a dot path into
// nested mappings and sequences. Unset parameters are reported as not found.
func (p Params) Lookup(key string) (any, bool) {
	value, ok := p[key]
	if !ok {
		value, ok = p.lookupPath(key)
	}
	if !ok {
		return nil, false
	}
	if _, isUnset := value.(unset); isUnset {
		return nil, false
	}
	return value, true
}

var indexBrackets = strings.NewReplacer("[", ".", "]", "")

func (p Params) lookupPath(path string) (any, bool) {
	segments := strings.Split(indexBrackets.Replace(path), ".")
	if len(segments) < 2 {
		return nil, false
	}
	var current any = p
	for _, segment := range segments {
		next, ok := child(current, segment)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// child returns the named element of a mapping or the indexed element of a
// sequence.
func child(container any, name string) (any, bool) {
	var (
		value any
		ok    bool
	)
	switch c := container.(type) {
	case Params:
		value, ok = c[name]
	case map[string]any:
		value, ok = c[name]
	case map[string]string:
		value, ok = c[name]
	case map[any]any:
		value, ok = c[name]
	case []any:
		if idx, err := strconv.Atoi(name); err == nil && idx >= 0 && idx < len(c) {
			return c[idx], true
		}
	case []string:
		if idx, err := strconv.Atoi(name); err == nil && idx >= 0 && idx < len(c) {
			return c[idx], true
		}
	}
	return value, ok
}
