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

import "dhall.org/go/dhall/token"

// SpanKind discriminates the provenance of a Span. Spans never affect
// typechecking semantics; they propagate only into error messages.
type SpanKind int8

const (
	// SpanRange is a byte range inside the original input.
	SpanRange SpanKind = iota
	// SpanArtificial marks a node synthesised by a desugaring pass
	// (e.g. a Completion's expansion into a BinOp) with no direct
	// source counterpart.
	SpanArtificial
	// SpanDesugared marks a node produced by desugaring another
	// surface construct (e.g. UnionLit's implied UnionType).
	SpanDesugared
	// SpanDecoded marks a node that was decoded from a binary (CBOR)
	// representation and never had textual source positions.
	SpanDecoded
)

// Span is a provenance tag attached to a Term for error reporting.
type Span struct {
	Kind  SpanKind
	Start token.Pos
	End   token.Pos
}

// NoSpan is the span used for internally constructed terms (builtin
// type schemas, desugarings with no user-facing origin).
var NoSpan = Span{Kind: SpanArtificial}

// Pos returns the span's starting position, or token.NoPos if the span
// carries no textual location.
func (s Span) Pos() token.Pos {
	if s.Kind != SpanRange {
		return token.NoPos
	}
	return s.Start
}
