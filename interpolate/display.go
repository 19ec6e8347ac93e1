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
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// display returns the textual representation of a parameter value: numbers in
// their shortest form, nil as “null”, and mappings and sequences as compact
// JSON.
func display(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case nil:
		return "null"
	case bool:
		return strconv.FormatBool(v)
	case json.Number:
		return v.String()
	case float64:
		return formatFloat(v, 64)
	case float32:
		return formatFloat(float64(v), 32)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v)
	case fmt.Stringer:
		return v.String()
	case map[string]any, Params, map[any]any, map[string]string, []any, []string:
		var buff bytes.Buffer
		enc := json.NewEncoder(&buff)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(normalizeJSON(v)); err == nil {
			return strings.TrimSuffix(buff.String(), "\n")
		}
	}
	return fmt.Sprint(value)
}

func formatFloat(f float64, bits int) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e21 {
		return strconv.FormatFloat(f, 'f', -1, bits)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

// normalizeJSON converts YAML-style map[any]any mappings (recursively) into
// map[string]any so that they can be JSON encoded.
func normalizeJSON(value any) any {
	switch v := value.(type) {
	case map[any]any:
		m := make(map[string]any, len(v))
		for key, val := range v {
			m[fmt.Sprint(key)] = normalizeJSON(val)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(v))
		for key, val := range v {
			m[key] = normalizeJSON(val)
		}
		return m
	case Params:
		return normalizeJSON(map[string]any(v))
	case []any:
		s := make([]any, len(v))
		for idx, val := range v {
			s[idx] = normalizeJSON(val)
		}
		return s
	case unset:
		return nil
	}
	return value
}
