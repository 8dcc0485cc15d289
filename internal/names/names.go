// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package names implements the identifier normalization rules §4.5
// requires the generator to apply consistently at every emission site.
package names

import "strings"

// reserved holds the Go keywords and predeclared identifiers a normalized
// field name must not collide with.
var reserved = map[string]struct{}{
	"break": {}, "case": {}, "chan": {}, "const": {}, "continue": {},
	"default": {}, "defer": {}, "else": {}, "fallthrough": {}, "for": {},
	"func": {}, "go": {}, "goto": {}, "if": {}, "import": {},
	"interface": {}, "map": {}, "package": {}, "range": {}, "return": {},
	"select": {}, "struct": {}, "switch": {}, "type": {}, "var": {},
	"string": {}, "int": {}, "bool": {}, "byte": {}, "error": {}, "len": {},
}

// Module normalizes a module name into a snake_case identifier suitable
// for a file name: it inserts '_' at lowercase→uppercase boundaries and
// before a lone uppercase letter followed by a lowercase one, lowercases
// everything, and maps '-' to '_'.
func Module(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		switch {
		case r == '-':
			b.WriteByte('_')
			continue
		case r >= 'A' && r <= 'Z':
			prevLower := i > 0 && isLower(runes[i-1])
			nextLower := i+1 < len(runes) && isLower(runes[i+1])
			if i > 0 && (prevLower || (nextLower && !isUpper(runes[i-1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(toLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }
func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// Field normalizes a field name: '-' maps to '_', and a trailing '_' is
// appended if the result collides with a reserved Go identifier.
func Field(name string) string {
	out := strings.ReplaceAll(name, "-", "_")
	if _, bad := reserved[out]; bad {
		out += "_"
	}
	return out
}

// Variant normalizes an enum variant name to PascalCase, treating '-' as
// a word break.
func Variant(name string) string {
	parts := strings.Split(name, "-")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		r := []rune(p)
		b.WriteRune(toUpperRune(r[0]))
		b.WriteString(string(r[1:]))
	}
	return b.String()
}

func toUpperRune(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
