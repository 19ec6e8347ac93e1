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
Package envstr converts whitespace-separated “key value” tables as well as
JSON objects into environment variable assignments of the form “KEY=value”,
one assignment per line.

	conv := envstr.New(envstr.WithQuotes(), envstr.WithExport())
	out, err := conv.JSON(`{"FOO": "bar", "N": 42}`)
	// export FOO="bar"
	// export N="42"

The order of the keys in JSON objects is kept.
*/
package envstr

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Pair is a single environment variable assignment.
type Pair struct {
	Key   string
	Value string
}

// Converter converts tables and JSON objects into environment variable
// assignments.
type Converter struct {
	quotes  bool
	newline string
	include []string
	exclude []string
	key     string
	caps    bool
	export  bool
}

// Option configures a [Converter].
type Option func(*Converter)

// WithQuotes puts double quotes around values.
func WithQuotes() Option {
	return func(c *Converter) { c.quotes = true }
}

// WithNewline sets the line separator of both the input tables and the
// output; it defaults to “\n”.
func WithNewline(newline string) Option {
	return func(c *Converter) { c.newline = newline }
}

// WithInclude only outputs the keys from the specified comma-separated list.
func WithInclude(keys string) Option {
	return func(c *Converter) { c.include = keyList(keys) }
}

// WithExclude skips the keys from the specified comma-separated list.
func WithExclude(keys string) Option {
	return func(c *Converter) { c.exclude = keyList(keys) }
}

// WithKey converts the JSON object at the specified dot path, such as
// “services.web.env”, instead of the top-level object.
func WithKey(path string) Option {
	return func(c *Converter) { c.key = path }
}

// WithCaps capitalizes the output keys.
func WithCaps() Option {
	return func(c *Converter) { c.caps = true }
}

// WithExport prefixes each assignment with “export ”.
func WithExport() Option {
	return func(c *Converter) { c.export = true }
}

// New returns a new Converter, configured using the specified options.
func New(opts ...Option) *Converter {
	c := &Converter{newline: "\n"}
	for _, opt := range opts {
		opt(c)
	}
	if c.newline == "" {
		c.newline = "\n"
	}
	return c
}

func keyList(keys string) []string {
	if keys == "" {
		return nil
	}
	list := strings.Split(keys, ",")
	for idx := range list {
		list[idx] = strings.TrimSpace(list[idx])
	}
	return list
}

// Table converts a table with one “key value” per line. The key ends at the
// first space, the remainder of the line is the trimmed value.
func (c *Converter) Table(text string) string {
	pairs := []Pair{}
	for _, line := range strings.Split(strings.TrimSpace(text), c.newline) {
		key, value, _ := strings.Cut(strings.TrimSpace(line), " ")
		pairs = append(pairs, Pair{Key: key, Value: strings.TrimSpace(value)})
	}
	return c.Pairs(pairs)
}

// JSON converts the members of a JSON object into assignments, keeping the
// order of the members. Nested objects and arrays become compact JSON values.
// Empty input results in empty output.
func (c *Converter) JSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", nil
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return "", fmt.Errorf("envstr json str is not valid json: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(text), &doc); err != nil {
		return "", fmt.Errorf("envstr json str is not valid json: %w", err)
	}
	node := &doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if c.key != "" {
		node = at(node, c.key)
	}
	pairs, err := nodePairs(node)
	if err != nil {
		return "", err
	}
	return c.Pairs(pairs), nil
}

// Pairs filters the specified pairs by the included and excluded keys, and
// then returns the assignments separated by newlines.
func (c *Converter) Pairs(pairs []Pair) string {
	var out strings.Builder
	first := true
	for _, pair := range pairs {
		if c.include != nil && !slices.Contains(c.include, pair.Key) {
			continue
		}
		if c.exclude != nil && slices.Contains(c.exclude, pair.Key) {
			continue
		}
		if !first {
			out.WriteString(c.newline)
		}
		first = false
		out.WriteString(c.assignment(pair))
	}
	return out.String()
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func (c *Converter) assignment(pair Pair) string {
	key := pair.Key
	if c.caps {
		key = strings.ToUpper(key)
	}
	if c.export {
		key = "export " + key
	}
	if c.quotes {
		return key + `="` + quoteEscaper.Replace(pair.Value) + `"`
	}
	return key + "=" + pair.Value
}

// at returns the node at the specified dot path, or nil if there is none.
func at(node *yaml.Node, path string) *yaml.Node {
	for _, name := range strings.Split(path, ".") {
		if node == nil {
			return nil
		}
		switch node.Kind {
		case yaml.MappingNode:
			var found *yaml.Node
			for idx := 0; idx+1 < len(node.Content); idx += 2 {
				if node.Content[idx].Value == name {
					found = node.Content[idx+1]
				}
			}
			node = found
		case yaml.SequenceNode:
			idx, err := strconv.Atoi(name)
			if err != nil || idx < 0 || idx >= len(node.Content) {
				return nil
			}
			node = node.Content[idx]
		default:
			return nil
		}
	}
	return node
}

// nodePairs returns the members of a mapping node, or the elements of a
// sequence node indexed from zero. Any other node has no pairs.
func nodePairs(node *yaml.Node) ([]Pair, error) {
	pairs := []Pair{}
	if node == nil {
		return pairs, nil
	}
	switch node.Kind {
	case yaml.MappingNode:
		for idx := 0; idx+1 < len(node.Content); idx += 2 {
			value, err := nodeValue(node.Content[idx+1])
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, Pair{Key: node.Content[idx].Value, Value: value})
		}
	case yaml.SequenceNode:
		for idx, elem := range node.Content {
			value, err := nodeValue(elem)
			if err != nil {
				return nil, err
			}
			pairs = append(pairs, Pair{Key: strconv.Itoa(idx), Value: value})
		}
	}
	return pairs, nil
}

// nodeValue returns the text of a scalar node as written, “null” for null,
// and compact JSON for mappings and sequences.
func nodeValue(node *yaml.Node) (string, error) {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			return "null", nil
		}
		return node.Value, nil
	}
	var v any
	if err := node.Decode(&v); err != nil {
		return "", fmt.Errorf("cannot decode JSON value, reason: %w", err)
	}
	var buff bytes.Buffer
	enc := json.NewEncoder(&buff)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("cannot encode JSON value, reason: %w", err)
	}
	return strings.TrimSuffix(buff.String(), "\n"), nil
}
