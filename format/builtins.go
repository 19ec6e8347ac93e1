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
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/thediveo/interpol/lines"
)

var builtins = NewRegistry(map[string]Func{
	"padleft":     PadLeft,
	"pad":         PadLeft,
	"padright":    PadRight,
	"lowercase":   Simple(LowerCase),
	"uppercase":   Simple(UpperCase),
	"lower":       Simple(Lower),
	"upper":       Simple(Upper),
	"camel":       Simple(Camel),
	"kebab":       Simple(Kebab),
	"snake":       Simple(Snake),
	"start":       Simple(StartCase),
	"start-case":  Simple(StartCase),
	"capitalize":  Simple(Capitalize),
	"lowerfirst":  Simple(LowerFirst),
	"lower-first": Simple(LowerFirst),
	"upperfirst":  Simple(UpperFirst),
	"upper-first": Simple(UpperFirst),
	"deburr":      Simple(Deburr),
	"escape":      Simple(Escape),
	"unescape":    Simple(Unescape),
	"trim":        Simple(strings.TrimSpace),
})

// Builtins returns the registry of built-in formatters.
func Builtins() Registry { return builtins }

// PadLeft indents the second and all following lines of a (multi-line) value
// by the column of the placeholder. The first line is left alone, as it
// already sits at the placeholder's column.
func PadLeft(value string, pos Position) (string, error) {
	if pos.Column <= 0 {
		return value, nil
	}
	padding := strings.Repeat(" ", pos.Column)
	return lines.Map(value, func(line string, index int) string {
		if index == 0 {
			return line
		}
		return padding + line
	}), nil
}

// PadRight appends as many spaces as the column of the placeholder to the
// second and all following lines of a (multi-line) value, keeping line
// terminators at the end.
func PadRight(value string, pos Position) (string, error) {
	if pos.Column <= 0 {
		return value, nil
	}
	padding := strings.Repeat(" ", pos.Column)
	return lines.Map(value, func(line string, index int) string {
		if index == 0 {
			return line
		}
		term := lines.Terminator(line)
		return line[:len(line)-len(term)] + padding + term
	}), nil
}

// Lower returns the value in lower case.
func Lower(value string) string {
	return cases.Lower(language.Und).String(value)
}

// Upper returns the value in upper case.
func Upper(value string) string {
	return cases.Upper(language.Und).String(value)
}

// LowerCase returns the words of the value in lower case, separated by
// spaces: “--Foo-Bar--” becomes “foo bar”.
func LowerCase(value string) string {
	return compound(value, " ", Lower)
}

// UpperCase returns the words of the value in upper case, separated by
// spaces: “fooBar” becomes “FOO BAR”.
func UpperCase(value string) string {
	return compound(value, " ", Upper)
}

// Camel returns the value in camel case: “Foo Bar” becomes “fooBar”.
func Camel(value string) string {
	var result strings.Builder
	for idx, word := range Words(Deburr(value)) {
		if idx == 0 {
			result.WriteString(Lower(word))
			continue
		}
		result.WriteString(Capitalize(word))
	}
	return result.String()
}

// Kebab returns the value in kebab case: “fooBar” becomes “foo-bar”.
func Kebab(value string) string {
	return compound(value, "-", Lower)
}

// Snake returns the value in snake case: “fooBar” becomes “foo_bar”.
func Snake(value string) string {
	return compound(value, "_", Lower)
}

// StartCase returns the words of the value with their first letters upper
// cased, separated by spaces: “--foo-bar--” becomes “Foo Bar”.
func StartCase(value string) string {
	return compound(value, " ", UpperFirst)
}

// Capitalize upper cases the first character of the value and lower cases
// the rest.
func Capitalize(value string) string {
	return UpperFirst(Lower(value))
}

// LowerFirst lower cases only the first character of the value.
func LowerFirst(value string) string {
	return mapFirst(value, Lower)
}

// UpperFirst upper cases only the first character of the value.
func UpperFirst(value string) string {
	return mapFirst(value, Upper)
}

func mapFirst(value string, fn func(string) string) string {
	if value == "" {
		return value
	}
	_, n := utf8.DecodeRuneInString(value)
	return fn(value[:n]) + value[n:]
}

func compound(value string, sep string, fn func(string) string) string {
	words := Words(Deburr(value))
	for idx, word := range words {
		words[idx] = fn(word)
	}
	return strings.Join(words, sep)
}

// letters that don't decompose into a base letter plus combining marks.
var undecomposables = strings.NewReplacer(
	"ß", "ss", "æ", "ae", "Æ", "Ae", "ø", "o", "Ø", "O",
	"đ", "d", "Đ", "D", "ð", "d", "Ð", "D", "ł", "l", "Ł", "L",
	"þ", "th", "Þ", "Th", "œ", "oe", "Œ", "Oe", "ı", "i",
	"ĳ", "ij", "Ĳ", "IJ", "ŀ", "l", "Ŀ", "L", "ŉ", "'n", "ſ", "s",
	"ħ", "h", "Ħ", "H", "ŧ", "t", "Ŧ", "T", "ŋ", "n", "Ŋ", "N", "ĸ", "k",
)

// Deburr converts Latin letters with diacritics into their basic Latin
// counterparts and removes combining diacritical marks: “déjà vu” becomes
// “deja vu”.
func Deburr(value string) string {
	value = undecomposables.Replace(value)
	// transformer chains carry state, so they cannot be shared between
	// concurrent callers.
	deburred, _, err := transform.String(
		transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC),
		value)
	if err != nil {
		return value
	}
	return deburred
}

var (
	htmlEscaper   = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&#39;")
	htmlUnescaper = strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&#39;", "'")
)

// Escape converts the characters “&”, “<”, “>”, “"”, and “'” into their
// corresponding HTML entities.
func Escape(value string) string {
	return htmlEscaper.Replace(value)
}

// Unescape is the inverse of Escape.
func Unescape(value string) string {
	return htmlUnescaper.Replace(value)
}
