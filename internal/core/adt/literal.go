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

import "github.com/cockroachdb/apd/v2"

// BoolLit is a literal True/False.
type BoolLit struct {
	base
	Value bool
}

func NewBoolLit(span Span, v bool) *BoolLit { return &BoolLit{base{span}, v} }

// NaturalLit is an arbitrary-precision non-negative integer literal.
// Stored as apd.Decimal (the teacher's own numeric-literal type, see
// internal/core/adt's Num.X) so arithmetic in the normaliser reuses
// the same precise decimal context rather than a second number type.
type NaturalLit struct {
	base
	Value apd.Decimal
}

func NewNaturalLit(span Span, v apd.Decimal) *NaturalLit { return &NaturalLit{base{span}, v} }

// NaturalFromUint64 is a convenience constructor used by the
// normaliser and by tests.
func NaturalFromUint64(span Span, n uint64) *NaturalLit {
	var d apd.Decimal
	d.SetFinite(int64(n), 0)
	return NewNaturalLit(span, d)
}

// IntegerLit is an arbitrary-precision signed integer literal.
type IntegerLit struct {
	base
	Value apd.Decimal
}

func NewIntegerLit(span Span, v apd.Decimal) *IntegerLit { return &IntegerLit{base{span}, v} }

// DoubleLit is an IEEE754 double-precision literal. Only the numeric
// Value is stored (infinities and NaN included), plus a Negative flag
// so that -0.0 stays distinct from 0.0 in equivalence and through the
// pretty-printer; the literal's original source text is not kept.
type DoubleLit struct {
	base
	Value    float64
	Negative bool // true for an explicit "-0.0" literal when Value == 0
}

func NewDoubleLit(span Span, v float64) *DoubleLit {
	return &DoubleLit{base{span}, v, false}
}

// TextPiece is one element of a TextLit: either a literal run of text
// or an interpolated subterm (must type as Text itself).
type TextPiece struct {
	Chunk string // valid when Expr == nil
	Expr  Term   // valid when non-nil; overrides Chunk
}

// TextLit is a (possibly interpolated) string literal.
type TextLit struct {
	base
	Pieces []TextPiece
}

func NewTextLit(span Span, pieces []TextPiece) *TextLit { return &TextLit{base{span}, pieces} }

// IsLiteral reports whether this TextLit has no interpolations, i.e.
// it denotes a single closed Text value.
func (t *TextLit) IsLiteral() bool {
	for _, p := range t.Pieces {
		if p.Expr != nil {
			return false
		}
	}
	return true
}

// Literal concatenates the chunks of a literal (non-interpolated)
// TextLit. Callers must check IsLiteral first.
func (t *TextLit) Literal() string {
	var s string
	for _, p := range t.Pieces {
		s += p.Chunk
	}
	return s
}
