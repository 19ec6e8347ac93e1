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

	"github.com/thediveo/interpol/format"
)

// ErrUnknownFormatter signals a formatter name not found in the formatter
// registry.
var ErrUnknownFormatter = errors.New("unknown formatter")

// MissingKeyError reports a placeholder whose key could not be resolved,
// either because there is no such parameter, because the parameter refers
// back to itself, or because parameters referencing other parameters are
// nested too deeply.
type MissingKeyError struct {
	Key         string
	Placeholder string // original placeholder text
	Position    format.Position
	Cycle       bool // parameter refers back to itself
	TooDeep     bool // maximum nesting depth exceeded
}

// Error implements the error interface.
func (e *MissingKeyError) Error() string {
	switch {
	case e.Cycle:
		return fmt.Sprintf("interpolate param key refers back to itself: %s", e.Key)
	case e.TooDeep:
		return fmt.Sprintf("interpolate param key nested too deeply: %s", e.Key)
	}
	return fmt.Sprintf("interpolate param key not found: %s", e.Key)
}

// FormatterError reports a formatter that is either unknown or failed to
// format a value.
type FormatterError struct {
	Key       string
	Formatter string
	Position  format.Position
	Err       error
}

// Error implements the error interface.
func (e *FormatterError) Error() string {
	return fmt.Sprintf("failed to format value - key: %s, formatter: %s, reason: %s",
		e.Key, e.Formatter, e.Err)
}

// Unwrap implements the implicit interface used by errors.Is and errors.As.
func (e *FormatterError) Unwrap() error {
	return e.Err
}
