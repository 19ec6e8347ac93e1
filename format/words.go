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

package format

import (
	"strings"
	"unicode"
)

type runeClass int

const (
	otherRune runeClass = iota
	lowerRune           // lower case as well as uncased letters
	upperRune
	digitRune
)

func classify(r rune) runeClass {
	switch {
	case unicode.IsNumber(r):
		return digitRune
	case unicode.IsUpper(r):
		return upperRune
	case unicode.IsLetter(r):
		return lowerRune
	}
	return otherRune
}

var apostrophes = strings.NewReplacer("'", "", "’", "")

// Words splits the value into its words. Words are separated by anything
// that is neither a letter nor a digit, at lower-to-upper case humps (“fooBar”),
// at the end of acronyms (“XMLHttp”), and at letter-digit boundaries
// (“foo2”). Apostrophes don't separate words but are dropped instead.
func Words(value string) []string {
	rs := []rune(apostrophes.Replace(value))
	words := []string{}
	start := -1
	for idx, r := range rs {
		class := classify(r)
		if class == otherRune {
			if start >= 0 {
				words = append(words, string(rs[start:idx]))
				start = -1
			}
			continue
		}
		if start < 0 {
			start = idx
			continue
		}
		if isWordBoundary(rs, idx, class) {
			words = append(words, string(rs[start:idx]))
			start = idx
		}
	}
	if start >= 0 {
		words = append(words, string(rs[start:]))
	}
	return words
}

// isWordBoundary returns true if a new word starts at index idx; the rune at
// idx-1 is known to be a letter or digit.
func isWordBoundary(rs []rune, idx int, class runeClass) bool {
	prev := classify(rs[idx-1])
	switch {
	case (prev == digitRune) != (class == digitRune):
		return true
	case prev == lowerRune && class == upperRune:
		return true
	case prev == upperRune && class == upperRune:
		return idx+1 < len(rs) && classify(rs[idx+1]) == lowerRune
	}
	return false
}
