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
	"strings"
	"unicode/utf8"

	"github.com/thediveo/interpol/format"
	"github.com/thediveo/interpol/lines"
)

// Segment produces text upon request, substituting parameters as necessary.
type Segment interface {
	text(x *expansion) (string, error)
}

// Segments is a slice of Segment-implementing objects that produce text upon
// request while doing parameter substitutions.
type Segments []Segment

func (segs Segments) text(x *expansion) (string, error) {
	var text strings.Builder
	for _, seg := range segs {
		segtext, err := seg.text(x)
		if err != nil {
			return "", err
		}
		text.WriteString(segtext)
	}
	return text.String(), nil
}

// PlainText is just what it says on the tin: plain text, no substitutions.
type PlainText string

func (pt PlainText) text(*expansion) (string, error) {
	return string(pt), nil
}

// Placeholder represents a particular placeholder in a line of text.
type Placeholder struct {
	Raw        string   // the placeholder text, including delimiters
	Key        string   // trimmed parameter key
	Formatters []string // trimmed formatter names, in order of application
	Position   format.Position
}

func (p Placeholder) text(x *expansion) (string, error) {
	return x.substitute(p)
}

// scanner splits lines into plain text and placeholder segments.
type scanner struct {
	open, close string
	sep         string
	reserved    string // characters not allowed inside placeholders
}

func newScanner(open, close, sep string) scanner {
	return scanner{
		open:     open,
		close:    close,
		sep:      sep,
		reserved: open + close,
	}
}

// parse the specified line of text into plain text and placeholder segments.
// The line index is only used to record the positions of placeholders.
func (s scanner) parse(line string, lineno int) Segments {
	segments := Segments{}
	plain := 0 // start of pending plain text
	for idx := 0; idx < len(line); {
		end, ok := s.match(line, idx)
		if !ok {
			idx++
			continue
		}
		if plain < idx {
			segments = append(segments, PlainText(line[plain:idx]))
		}
		segments = append(segments, s.placeholder(
			line[idx:end],
			format.Position{Line: lineno, Column: utf8.RuneCountInString(line[:idx])}))
		idx = end
		plain = end
	}
	if plain < len(line) {
		segments = append(segments, PlainText(line[plain:]))
	}
	return segments
}

// match checks for a placeholder starting at the specified index, returning
// the index just after the placeholder and true if found.
func (s scanner) match(line string, idx int) (int, bool) {
	if !strings.HasPrefix(line[idx:], s.open) {
		return 0, false
	}
	bodyStart := idx + len(s.open)
	bodyEnd := bodyStart
	for bodyEnd < len(line) {
		r, size := utf8.DecodeRuneInString(line[bodyEnd:])
		if strings.ContainsRune(s.reserved, r) {
			break
		}
		bodyEnd += size
	}
	if bodyEnd == bodyStart || !strings.HasPrefix(line[bodyEnd:], s.close) {
		return 0, false
	}
	return bodyEnd + len(s.close), true
}

// placeholder returns a Placeholder for the specified placeholder text,
// splitting its body into the key and the formatter names.
func (s scanner) placeholder(raw string, pos format.Position) Placeholder {
	body := raw[len(s.open) : len(raw)-len(s.close)]
	fields := strings.Split(body, s.sep)
	p := Placeholder{
		Raw:      raw,
		Key:      strings.TrimSpace(fields[0]),
		Position: pos,
	}
	for _, name := range fields[1:] {
		p.Formatters = append(p.Formatters, strings.TrimSpace(name))
	}
	return p
}

// contains returns true if the text contains at least one placeholder.
func (s scanner) contains(text string) bool {
	for _, line := range lines.Split(text) {
		for idx := 0; idx < len(line); idx++ {
			if _, ok := s.match(line, idx); ok {
				return true
			}
		}
	}
	return false
}
