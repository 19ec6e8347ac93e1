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
Package lines splits text into lines while keeping the original line
terminators, so that mapping a function over the lines and joining the results
again gives back the original text byte for byte for all lines left alone.

A line terminator is any of “\r\n”, “\r”, or “\n”. The segment handed to a
mapping function always includes its terminator, if any. There's always at
least one segment: an empty text yields a single empty segment, and a text
ending in a terminator yields a final empty segment for the (empty) trailing
line.
*/
package lines

import "strings"

// Split returns the lines of the specified text, including their terminators.
func Split(text string) []string {
	segments := make([]string, 0, strings.Count(text, "\n")+1)
	start := 0
	for idx := 0; idx < len(text); idx++ {
		switch text[idx] {
		case '\r':
			if idx+1 < len(text) && text[idx+1] == '\n' {
				idx++
			}
		case '\n':
		default:
			continue
		}
		segments = append(segments, text[start:idx+1])
		start = idx + 1
	}
	return append(segments, text[start:])
}

// Map calls fn for each line (including its terminator) of the specified text
// together with the zero-based line index, and returns the concatenation of
// the results.
func Map(text string, fn func(line string, index int) string) string {
	s, _ := MapErr(text, func(line string, index int) (string, error) {
		return fn(line, index), nil
	})
	return s
}

// MapErr works like Map, but aborts with the first error returned by fn.
func MapErr(text string, fn func(line string, index int) (string, error)) (string, error) {
	var result strings.Builder
	result.Grow(len(text))
	for index, line := range Split(text) {
		mapped, err := fn(line, index)
		if err != nil {
			return "", err
		}
		result.WriteString(mapped)
	}
	return result.String(), nil
}

// Terminator returns the line terminator of the specified line, or "" if the
// line doesn't end in a terminator.
func Terminator(line string) string {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return "\r\n"
	case strings.HasSuffix(line, "\n"):
		return "\n"
	case strings.HasSuffix(line, "\r"):
		return "\r"
	}
	return ""
}
