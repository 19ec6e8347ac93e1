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
	log "github.com/sirupsen/logrus"

	"github.com/thediveo/interpol/format"
)

// Reporting controls how missing parameters and formatter failures are reported.
type Reporting int

const (
	// Warn logs a warning and continues interpolating.
	Warn Reporting = iota
	// Silent silently continues interpolating.
	Silent
	// Throw aborts interpolation with an error.
	Throw
)

// Substitute controls what gets substituted in place of a placeholder with a
// missing parameter.
type Substitute int

const (
	// KeepLiteral leaves the original placeholder text in place.
	KeepLiteral Substitute = iota
	// UseDefault substitutes the default value, see [WithDefault].
	UseDefault
)

// Default placeholder delimiters and formatter separator.
const (
	DefaultOpen               = "{{"
	DefaultClose              = "}}"
	DefaultFormatterDelimiter = "|"
	DefaultMaxDepth           = 32
)

// Option configures an [Interpolator].
type Option func(*Interpolator)

// WithDelimiters sets the opening and closing placeholder delimiters, which
// default to “{{” and “}}”.
func WithDelimiters(open, close string) Option {
	return func(ip *Interpolator) {
		ip.open = open
		ip.close = close
	}
}

// WithFormatterDelimiter sets the separator between the key and formatter
// names inside placeholders; it defaults to “|”.
func WithFormatterDelimiter(sep string) Option {
	return func(ip *Interpolator) {
		ip.sep = sep
	}
}

// WithReport sets how missing parameters and failing formatters get reported.
func WithReport(report Reporting) Option {
	return func(ip *Interpolator) {
		ip.report = report
	}
}

// WithSubstitute sets what to substitute for missing parameters.
func WithSubstitute(subst Substitute) Option {
	return func(ip *Interpolator) {
		ip.substitute = subst
	}
}

// WithDefault sets the default value to substitute for missing parameters
// when using [UseDefault].
func WithDefault(value string) Option {
	return func(ip *Interpolator) {
		ip.defaultValue = value
	}
}

// WithFormatting enables or disables applying formatters. When disabled,
// formatter names in placeholders are still accepted, but ignored.
func WithFormatting(enabled bool) Option {
	return func(ip *Interpolator) {
		ip.formatting = enabled
	}
}

// WithLenientFormatters only warns about failing formatters even when
// otherwise throwing on missing parameters.
func WithLenientFormatters() Option {
	return func(ip *Interpolator) {
		ip.lenient = true
	}
}

// WithFormatters sets the formatter registry to use instead of the built-in
// formatters.
func WithFormatters(registry format.Registry) Option {
	return func(ip *Interpolator) {
		ip.formatters = registry
	}
}

// WithLogger sets the logger for reporting warnings; it defaults to the
// logrus standard logger.
func WithLogger(logger log.FieldLogger) Option {
	return func(ip *Interpolator) {
		ip.log = logger
	}
}

// WithMaxDepth limits the nesting depth of recursive interpolation.
func WithMaxDepth(depth int) Option {
	return func(ip *Interpolator) {
		ip.maxDepth = depth
	}
}

// WithEnvironment adds the specified environment variables as fallback
// parameters. Explicit parameters, even unset ones, take precedence. Pass
// [os.Environ] to use the process environment.
func WithEnvironment(environ func() []string) Option {
	return func(ip *Interpolator) {
		ip.environ = environ
	}
}
