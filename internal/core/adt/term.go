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

// Package adt is the term representation (L0): an immutable, shareable
// AST with de-Bruijn-indexed variables and embedded resolved import
// values. One file per family of constructors, one struct per
// constructor, mirroring the teacher's internal/core/adt/expr.go.
package adt

import "dhall.org/go/dhall/token"

// Term is the tagged variant over every Dhall term constructor. The
// unexported term() method seals the interface to this package: every
// Term is one of the concrete types declared here.
type Term interface {
	// Span reports the provenance of this node for error rendering.
	Span() Span
	term()
}

// base is embedded by every concrete Term to provide its Span.
type base struct {
	span Span
}

func (b base) Span() Span { return b.span }
func (base) term()        {}

// V is a named de Bruijn index: the n-th enclosing binder whose bound
// label equals Label, counting outward from 0.
type V struct {
	Label Label
	Index int
}

// Shift0 returns v with its index bumped by delta if v's label equals
// x — the "cutoff" adjustment applied when a shift or substitution
// crosses a binder named x.
func (v V) Shift0(delta int, x Label) V {
	if v.Label != x {
		return v
	}
	return V{Label: v.Label, Index: v.Index + delta}
}

func (v V) Equal(o V) bool {
	return v.Label == o.Label && v.Index == o.Index
}

// Var is a reference to a binder by name and de Bruijn index.
type Var struct {
	base
	V V
}

func NewVar(span Span, v V) *Var { return &Var{base{span}, v} }

// Constant is one of the three universe levels, plus the internal
// SuperType sentinel ("the type of Sort") which is never a legal
// top-level type.
type Constant int8

const (
	Type Constant = iota
	Kind
	Sort
	// SuperType is never observable by the user; attempting to type
	// Sort itself is the Untyped error.
	SuperType
)

func (c Constant) String() string {
	switch c {
	case Type:
		return "Type"
	case Kind:
		return "Kind"
	case Sort:
		return "Sort"
	default:
		return "<SuperType>"
	}
}

// Const wraps a Constant as a Term.
type Const struct {
	base
	K Constant
}

func NewConst(span Span, k Constant) *Const { return &Const{base{span}, k} }

// Lam is a dependent function abstraction: λ(label : typ) → body.
type Lam struct {
	base
	Label Label
	Type  Term
	Body  Term
}

func NewLam(span Span, label Label, typ, body Term) *Lam {
	return &Lam{base{span}, label, typ, body}
}

// Pi is a dependent function type: ∀(label : domain) → codomain.
type Pi struct {
	base
	Label     Label
	Domain    Term
	Codomain  Term
}

func NewPi(span Span, label Label, domain, codomain Term) *Pi {
	return &Pi{base{span}, label, domain, codomain}
}

// App is function application.
type App struct {
	base
	Fn  Term
	Arg Term
}

func NewApp(span Span, fn, arg Term) *App { return &App{base{span}, fn, arg} }

// AppN builds a left-associated chain of applications, a convenience
// used heavily by the builtin type schemas in internal/core/typecheck.
func AppN(span Span, fn Term, args ...Term) Term {
	e := fn
	for _, a := range args {
		e = NewApp(span, e, a)
	}
	return e
}

// Let is a let-binding: let label : optAnnot = value in body.
type Let struct {
	base
	Label Label
	Annot Term // nil if absent
	Value Term
	Body  Term
}

func NewLet(span Span, label Label, annot, value, body Term) *Let {
	return &Let{base{span}, label, annot, value, body}
}

// Annot is an explicit type annotation: term : typ.
type Annot struct {
	base
	Term Term
	Type Term
}

func NewAnnot(span Span, term, typ Term) *Annot { return &Annot{base{span}, term, typ} }

// Assert checks that its argument's type is an Equivalent (≡)
// judgement whose two sides are alpha-equivalent after normalisation.
type Assert struct {
	base
	Term Term
}

func NewAssert(span Span, term Term) *Assert { return &Assert{base{span}, term} }

// Import is an opaque reference to an already-resolved, already-typed
// embedded value. The typechecker treats it as an atom carrying both a
// value and a type supplied by the (out-of-scope) import resolver.
type Import struct {
	base
	Value Term // the resolved value
	Type  Term // the resolved value's type (normal form)
}

func NewImport(span Span, value, typ Term) *Import { return &Import{base{span}, value, typ} }

// posOf returns the start position of t's span (token.NoPos for a term
// with no textual source).
func posOf(t Term) token.Pos { return t.Span().Pos() }
