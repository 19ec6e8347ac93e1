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
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadParamsFile reads parameters from the file at the specified path. The
// file format is determined by the file extension:
//   - “.json”: a JSON object,
//   - “.env”: dotenv “KEY=value” lines,
//   - anything else, including “.yaml” and “.yml”: a YAML mapping.
func LoadParamsFile(path string) (Params, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read parameters file, reason: %w", err)
	}
	params, err := decodeParams(text, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("malformed parameters file %q, reason: %w", path, err)
	}
	return params, nil
}

func decodeParams(text []byte, ext string) (Params, error) {
	switch ext {
	case ".env":
		env, err := godotenv.Unmarshal(string(text))
		if err != nil {
			return nil, err
		}
		params := make(Params, len(env))
		for key, value := range env {
			params[key] = value
		}
		return params, nil
	case ".json":
		var m map[string]any
		dec := json.NewDecoder(bytes.NewReader(text))
		dec.UseNumber()
		if err := dec.Decode(&m); err != nil {
			return nil, err
		}
		return Params(m), nil
	}
	var m map[string]any
	if err := yaml.Unmarshal(text, &m); err != nil {
		return nil, err
	}
	if m == nil {
		return Params{}, nil
	}
	return Params(m), nil
}
