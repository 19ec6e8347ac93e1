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
	"errors"
	"fmt"
	"strconv"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"
	"golang.org/x/exp/slices"

	"github.com/thediveo/interpol/format"
	"github.com/thediveo/interpol/lines"
)

// Interpolator interpolates placeholders in texts using a fixed set of
// parameters and configuration. Interpolators are immutable and thus can be
// used concurrently.
type Interpolator struct {
	params       Params
	environ      func() []string
	open, close  string
	sep          string
	report       Reporting
	substitute   Substitute
	defaultValue string
	formatting   bool
	lenient      bool
	formatters   format.Registry
	log          log.FieldLogger
	maxDepth     int
	scanner      scanner
}

// New returns a new Interpolator for the specified parameters, configured
// using the specified options. By default, missing parameters are warned
// about and their placeholders are left in place.
func New(params Params, opts ...Option) (*Interpolator, error) {
	ip := &Interpolator{
		open:       DefaultOpen,
		close:      DefaultClose,
		sep:        DefaultFormatterDelimiter,
		report:     Warn,
		substitute: KeepLiteral,
		formatting: true,
		formatters: format.Builtins(),
		log:        log.StandardLogger(),
		maxDepth:   DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(ip)
	}
	switch {
	case ip.open == "" || ip.close == "":
		return nil, errors.New("placeholder delimiters must not be empty")
	case ip.open == ip.close:
		return nil, fmt.Errorf("placeholder delimiters must differ, got %q twice", ip.open)
	case ip.sep == "":
		return nil, errors.New("formatter delimiter must not be empty")
	case ip.maxDepth <= 0:
		return nil, fmt.Errorf("maximum nesting depth must be positive, got %d", ip.maxDepth)
	case ip.log == nil:
		return nil, errors.New("logger must not be nil")
	}
	ip.params = Params{}.Merge(params)
	if ip.environ != nil {
		ip.params = ip.params.Defaults(FromEnviron(ip.environ()))
	}
	ip.scanner = newScanner(ip.open, ip.close, ip.sep)
	return ip, nil
}

// String interpolates the specified text using the specified parameters and
// options. It is a shorthand for creating a throw-away Interpolator.
func String(text string, params Params, opts ...Option) (string, error) {
	ip, err := New(params, opts...)
	if err != nil {
		return "", err
	}
	return ip.String(text)
}

// String returns the interpolated text. It only returns an error when
// configured to throw on missing parameters or failing formatters.
func (ip *Interpolator) String(text string) (string, error) {
	return ip.expand(text, nil)
}

// expand the placeholders in the text line by line, where chain contains the
// keys of the parameters currently being recursively expanded.
func (ip *Interpolator) expand(text string, chain []string) (string, error) {
	x := &expansion{ip: ip, chain: chain}
	return lines.MapErr(text, func(line string, lineno int) (string, error) {
		return ip.scanner.parse(line, lineno).text(x)
	})
}

// Placeholders returns the placeholders found in the specified text, in order
// of appearance.
func (ip *Interpolator) Placeholders(text string) []Placeholder {
	placeholders := []Placeholder{}
	for lineno, line := range lines.Split(text) {
		for _, seg := range ip.scanner.parse(line, lineno) {
			if p, ok := seg.(Placeholder); ok {
				placeholders = append(placeholders, p)
			}
		}
	}
	return placeholders
}

// Validate checks the placeholders in the specified text for unknown
// formatters, without resolving any parameters. It returns all unknown
// formatters found as a combined error.
func (ip *Interpolator) Validate(text string) error {
	var err error
	for _, p := range ip.Placeholders(text) {
		for _, name := range p.Formatters {
			if _, ok := ip.formatters.Lookup(name); ok {
				continue
			}
			err = multierr.Append(err, &FormatterError{
				Key:       p.Key,
				Formatter: name,
				Position:  p.Position,
				Err:       ErrUnknownFormatter,
			})
		}
	}
	return err
}

// unresolved tells why a placeholder could not be resolved.
type unresolved int

const (
	notFound unresolved = iota
	cyclic
	tooDeep
)

// expansion keeps track of the parameters currently being expanded in order to
// detect parameters referring back to themselves.
type expansion struct {
	ip    *Interpolator
	chain []string
}

// substitute returns the text to substitute for the specified placeholder.
func (x *expansion) substitute(p Placeholder) (string, error) {
	if p.Key == "" {
		return x.missing(p, notFound)
	}
	value, ok := x.ip.params.Lookup(p.Key)
	if !ok {
		return x.missing(p, notFound)
	}
	text := display(value)
	if s, ok := value.(string); ok && x.ip.scanner.contains(s) {
		switch {
		case slices.Contains(x.chain, p.Key):
			return x.missing(p, cyclic)
		case len(x.chain) >= x.ip.maxDepth:
			return x.missing(p, tooDeep)
		}
		expanded, err := x.ip.expand(s, append(slices.Clip(x.chain), p.Key))
		if err != nil {
			return "", err
		}
		text = expanded
	}
	return x.format(p, text)
}

// format pipes the value through the formatters of the placeholder. If a
// formatter is unknown or fails, the unformatted value is returned.
func (x *expansion) format(p Placeholder, value string) (string, error) {
	if !x.ip.formatting || len(p.Formatters) == 0 {
		return value, nil
	}
	formatted := value
	for _, name := range p.Formatters {
		fn, ok := x.ip.formatters.Lookup(name)
		if !ok {
			return x.formatFailed(value, &FormatterError{
				Key: p.Key, Formatter: name, Position: p.Position, Err: ErrUnknownFormatter,
			})
		}
		var err error
		formatted, err = safely(fn, formatted, p.Position)
		if err != nil {
			return x.formatFailed(value, &FormatterError{
				Key: p.Key, Formatter: name, Position: p.Position, Err: err,
			})
		}
	}
	return formatted, nil
}

func (x *expansion) formatFailed(value string, err *FormatterError) (string, error) {
	switch {
	case x.ip.report == Throw && !x.ip.lenient:
		return "", err
	case x.ip.report != Silent:
		x.warn(err.Position, err.Error(), log.Fields{"key": err.Key, "formatter": err.Formatter})
	}
	return value, nil
}

// missing returns the text to substitute for a placeholder that cannot be
// resolved, or an error if configured to throw.
func (x *expansion) missing(p Placeholder, why unresolved) (string, error) {
	err := &MissingKeyError{
		Key:         p.Key,
		Placeholder: p.Raw,
		Position:    p.Position,
		Cycle:       why == cyclic,
		TooDeep:     why == tooDeep,
	}
	switch x.ip.report {
	case Throw:
		return "", err
	case Warn:
		x.warn(p.Position, err.Error(), log.Fields{"key": p.Key})
	}
	if x.ip.substitute == UseDefault {
		return x.ip.defaultValue, nil
	}
	return p.Raw, nil
}

func (x *expansion) warn(pos format.Position, msg string, fields log.Fields) {
	fields["line"] = pos.Line + 1
	fields["column"] = pos.Column + 1
	if len(x.chain) > 0 {
		fields["within"] = x.chain[len(x.chain)-1]
	}
	x.ip.log.WithFields(fields).Warn(msg)
}

// safely calls the formatter, turning panics into errors.
func safely(fn format.Func, value string, pos format.Position) (formatted string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formatter panicked: %v", r)
		}
	}()
	return fn(value, pos)
}

// Values interpolates all string values in the passed (recursive) map. It
// returns a new (recursive) map with the interpolated results.
func (ip *Interpolator) Values(data map[string]any) (map[string]any, error) {
	return ip.interpolateMapping(data, "")
}

// recursively interpolate string values, string values inside mappings, and
// string values inside sequences.
func (ip *Interpolator) recursively(data any, path Path) (any, error) {
	switch value := data.(type) {
	case string:
		return ip.interpolateString(value, path)
	case map[string]any:
		return ip.interpolateMapping(value, path)
	case []any:
		return ip.interpolateSequence(value, path)
	default:
		return value, nil
	}
}

func (ip *Interpolator) interpolateString(value string, path Path) (string, error) {
	s, err := ip.String(value)
	if err != nil {
		return "", fmt.Errorf("error in '%s': %w", string(path), err)
	}
	return s, nil
}

func (ip *Interpolator) interpolateMapping(values map[string]any, path Path) (map[string]any, error) {
	result := make(map[string]any, len(values))
	for key, value := range values {
		interpolValue, err := ip.recursively(value, path.Append(key))
		if err != nil {
			return nil, err
		}
		result[key] = interpolValue
	}
	return result, nil
}

func (ip *Interpolator) interpolateSequence(values []any, path Path) ([]any, error) {
	result := make([]any, 0, len(values))
	for idx, value := range values {
		interpolValue, err := ip.recursively(value, path.AppendIndex(idx))
		if err != nil {
			return nil, err
		}
		result = append(result, interpolValue)
	}
	return result, nil
}

// Path represents the path to a scalar inside a structured document.
type Path string

// Append the name of a mapping key to the path, returning the new Path.
func (p Path) Append(name string) Path {
	if p == "" {
		return Path(name)
	}
	return Path(string(p) + "." + name)
}

// AppendIndex appends the index of a sequence element to the path, returning
// the new Path.
func (p Path) AppendIndex(idx int) Path {
	return Path(string(p) + "[" + strconv.Itoa(idx) + "]")
}
