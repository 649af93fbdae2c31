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

// Package errors defines the error-reporting types shared by every
// layer of the core: a position-carrying Error interface and a
// deferred-formatting Message, so that argument values are only
// rendered into text at print time (never baked into a string at the
// point an error is raised).
package errors

import (
	"bytes"
	"fmt"

	"dhall.org/go/dhall/token"
)

// Error is satisfied by every error this module returns from the
// typechecker and its collaborators.
type Error interface {
	error
	Position() token.Pos
	InputPositions() []token.Pos
	Path() []string
}

// Message holds a deferred-format error message: the format string and
// its arguments are kept apart so that a caller rendering the error for
// a different locale, or as structured data, never has to re-parse a
// pre-rendered string.
type Message struct {
	format string
	args   []interface{}
}

// NewMessage constructs a Message from a format string and arguments.
func NewMessage(format string, args []interface{}) Message {
	return Message{format: format, args: args}
}

// Msg returns the format string and arguments unexpanded.
func (m Message) Msg() (string, []interface{}) {
	return m.format, m.args
}

func (m Message) Error() string {
	return fmt.Sprintf(m.format, m.args...)
}

// String renders an Error's message the way the CLI and test fixtures
// print it: "<message> (<path>)" when a non-empty Path is present.
func String(e Error) string {
	var buf bytes.Buffer
	buf.WriteString(e.Error())
	if p := e.Path(); len(p) > 0 {
		fmt.Fprintf(&buf, " (%v)", p)
	}
	return buf.String()
}

// List is an ordered collection of Errors. The core typechecker itself
// never accumulates more than one error (spec: it stops at the first
// ill-typed subterm), but collaborators that batch multiple closed
// terms can use List to report every failure in one pass.
type List []Error

// Position returns the first error's position, or token.NoPos for an
// empty List.
func (l List) Position() token.Pos {
	if len(l) == 0 {
		return token.NoPos
	}
	return l[0].Position()
}

// InputPositions returns every element's input positions, in order.
func (l List) InputPositions() []token.Pos {
	var out []token.Pos
	for _, e := range l {
		out = append(out, e.InputPositions()...)
	}
	return out
}

// Path returns the first error's path, or nil for an empty List.
func (l List) Path() []string {
	if len(l) == 0 {
		return nil
	}
	return l[0].Path()
}

func (l List) Error() string {
	var buf bytes.Buffer
	for i, e := range l {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(String(e))
	}
	return buf.String()
}

// Append adds err to l, flattening err itself when it is already a
// List (mirrors the teacher's errors.Append combinator).
func Append(l List, err Error) List {
	if err == nil {
		return l
	}
	if sub, ok := err.(List); ok {
		return append(l, sub...)
	}
	return append(l, err)
}

// Newf constructs a simple positional error with no extra path/input
// positions, for collaborators (the CLI, the debug printer) that don't
// need the full TypeError taxonomy.
func Newf(pos token.Pos, format string, args ...interface{}) Error {
	return &simple{pos: pos, Message: NewMessage(format, args)}
}

type simple struct {
	pos token.Pos
	Message
}

func (s *simple) Position() token.Pos        { return s.pos }
func (s *simple) InputPositions() []token.Pos { return nil }
func (s *simple) Path() []string              { return nil }
