// Copyright 2024 The Dhall-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package adt

import (
	"unicode"
	"unicode/utf8"
)

// Label is an identifier-as-string. Two labels are equal iff their text
// matches; reserved words and builtin names carry no special equality,
// they are ordinary labels that happen to require quoting in surface
// syntax (a concern of the pretty-printer, not of this package).
type Label string

var reservedWords = map[string]bool{
	"let": true, "in": true, "if": true, "then": true, "else": true,
	"Type": true, "Kind": true, "Sort": true,
	"True": true, "False": true, "Some": true,
	"merge": true, "toMap": true, "assert": true, "as": true,
	"using": true, "with": true, "missing": true, "Infinity": true, "NaN": true,
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r >= utf8.RuneSelf && unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// IsQuoteRequired reports whether rendering this label in surface
// syntax requires backtick-quoting: it is empty, a reserved word or
// builtin name, or contains a character that isn't alphanumeric or
// underscore (matching the pretty-printing contract in spec.md §6.2).
func (l Label) IsQuoteRequired() bool {
	s := string(l)
	if s == "" {
		return true
	}
	if reservedWords[s] || LookupBuiltin(s) != BuiltinInvalid {
		return true
	}
	for i, r := range s {
		switch {
		case isLetter(r) || r == '_':
		case i > 0 && isDigit(r):
		default:
			return true
		}
	}
	return false
}

func (l Label) String() string { return string(l) }
