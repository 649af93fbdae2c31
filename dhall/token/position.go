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

// Package token defines source positions used to annotate terms for
// error reporting. Positions never influence typechecking semantics.
package token

import "fmt"

// Pos is a byte offset into a named source, or NoPos for terms with no
// source (synthetic desugarings, builtin schemas, decoded-from-binary
// terms).
type Pos struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// NoPos is the zero value of Pos; it is never a valid source location.
var NoPos = Pos{}

// IsValid reports whether p represents an actual source location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

func (p Pos) String() string {
	if !p.IsValid() {
		return "-"
	}
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
