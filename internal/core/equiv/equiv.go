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

// Package equiv implements L4: alpha-equivalence of two terms already
// in beta-normal form. Grounded on
// original_source/dhall/src/typecheck.rs's `prop_equal`/`match_vars`
// pairing of bound labels, reworked as an explicit binder-pair stack
// rather than a temporary global rename as some other Dhall
// implementations use.
package equiv

import (
	"math"

	"dhall.org/go/internal/core/adt"
)

// pair tracks one binder correspondence: a Var named l (resp. r) on
// the left (resp. right) at this nesting depth is equivalent to the
// other side's Var of the same label-and-depth pair only if both
// resolve to the same entry here.
type pair struct {
	lLabel, rLabel adt.Label
}

type stack []pair

// push records that the next binder on the left (named l) corresponds
// to the next binder on the right (named r).
func (s stack) push(l, r adt.Label) stack {
	return append(stack{{l, r}}, s...)
}

// lookupLeft reports, for a left-side Var with label/index, which
// bound pair (if any) it refers to, and whether it is actually bound
// by a pair the stack is tracking (vs. a free variable, which must
// compare equal to the other side's same free variable directly).
func (s stack) lookupLeft(label adt.Label, index int) (int, bool) {
	n := 0
	for i, p := range s {
		if p.lLabel != label {
			continue
		}
		if n == index {
			return i, true
		}
		n++
	}
	return 0, false
}

func (s stack) lookupRight(label adt.Label, index int) (int, bool) {
	n := 0
	for i, p := range s {
		if p.rLabel != label {
			continue
		}
		if n == index {
			return i, true
		}
		n++
	}
	return 0, false
}

// AlphaEq reports whether a and b, both assumed already in
// beta-normal form, are equal up to renaming of bound variables.
func AlphaEq(a, b adt.Term) bool {
	return alphaEq(nil, a, b)
}

func alphaEq(s stack, a, b adt.Term) bool {
	if a == nil || b == nil {
		return a == b
	}
	switch x := a.(type) {
	case *adt.Var:
		y, ok := b.(*adt.Var)
		if !ok {
			return false
		}
		li, lok := s.lookupLeft(x.V.Label, x.V.Index)
		ri, rok := s.lookupRight(y.V.Label, y.V.Index)
		if lok != rok {
			return false
		}
		if lok {
			return li == ri
		}
		// both free: must name the same label and index directly.
		return x.V.Equal(y.V)

	case *adt.Const:
		y, ok := b.(*adt.Const)
		return ok && x.K == y.K

	case *adt.BuiltinT:
		y, ok := b.(*adt.BuiltinT)
		return ok && x.B == y.B

	case *adt.Lam:
		y, ok := b.(*adt.Lam)
		return ok && alphaEq(s, x.Type, y.Type) && alphaEq(s.push(x.Label, y.Label), x.Body, y.Body)

	case *adt.Pi:
		y, ok := b.(*adt.Pi)
		return ok && alphaEq(s, x.Domain, y.Domain) && alphaEq(s.push(x.Label, y.Label), x.Codomain, y.Codomain)

	case *adt.App:
		y, ok := b.(*adt.App)
		return ok && alphaEq(s, x.Fn, y.Fn) && alphaEq(s, x.Arg, y.Arg)

	case *adt.Let:
		y, ok := b.(*adt.Let)
		if !ok {
			return false
		}
		if !alphaEq(s, x.Value, y.Value) {
			return false
		}
		return alphaEq(s.push(x.Label, y.Label), x.Body, y.Body)

	case *adt.Annot:
		y, ok := b.(*adt.Annot)
		return ok && alphaEq(s, x.Term, y.Term) && alphaEq(s, x.Type, y.Type)

	case *adt.Assert:
		y, ok := b.(*adt.Assert)
		return ok && alphaEq(s, x.Term, y.Term)

	case *adt.Import:
		y, ok := b.(*adt.Import)
		return ok && alphaEq(s, x.Value, y.Value)

	case *adt.BoolLit:
		y, ok := b.(*adt.BoolLit)
		return ok && x.Value == y.Value

	case *adt.NaturalLit:
		y, ok := b.(*adt.NaturalLit)
		return ok && x.Value.Cmp(&y.Value) == 0

	case *adt.IntegerLit:
		y, ok := b.(*adt.IntegerLit)
		return ok && x.Value.Cmp(&y.Value) == 0

	case *adt.DoubleLit:
		y, ok := b.(*adt.DoubleLit)
		// Literal identity, not mathematical equality: -0.0 ≠ 0.0, and a
		// NaN literal equals another NaN literal.
		return ok && (x.Value == y.Value || math.IsNaN(x.Value) && math.IsNaN(y.Value)) &&
			x.Negative == y.Negative

	case *adt.TextLit:
		y, ok := b.(*adt.TextLit)
		if !ok || len(x.Pieces) != len(y.Pieces) {
			return false
		}
		for i := range x.Pieces {
			px, py := x.Pieces[i], y.Pieces[i]
			if (px.Expr == nil) != (py.Expr == nil) {
				return false
			}
			if px.Expr != nil {
				if !alphaEq(s, px.Expr, py.Expr) {
					return false
				}
				continue
			}
			if px.Chunk != py.Chunk {
				return false
			}
		}
		return true

	case *adt.EmptyListLit:
		y, ok := b.(*adt.EmptyListLit)
		return ok && alphaEq(s, x.ElemType, y.ElemType)

	case *adt.NEListLit:
		y, ok := b.(*adt.NEListLit)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !alphaEq(s, x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true

	case *adt.SomeLit:
		y, ok := b.(*adt.SomeLit)
		return ok && alphaEq(s, x.Value, y.Value)

	case *adt.OldOptionalLit:
		y, ok := b.(*adt.OldOptionalLit)
		if !ok {
			return false
		}
		if (x.Value == nil) != (y.Value == nil) {
			return false
		}
		if x.Value != nil && !alphaEq(s, x.Value, y.Value) {
			return false
		}
		return alphaEq(s, x.ElemType, y.ElemType)

	case *adt.RecordType:
		y, ok := b.(*adt.RecordType)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Label != y.Fields[i].Label {
				return false
			}
			if !alphaEq(s, x.Fields[i].Type, y.Fields[i].Type) {
				return false
			}
		}
		return true

	case *adt.RecordLit:
		y, ok := b.(*adt.RecordLit)
		if !ok || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if x.Fields[i].Label != y.Fields[i].Label {
				return false
			}
			if !alphaEq(s, x.Fields[i].Value, y.Fields[i].Value) {
				return false
			}
		}
		return true

	case *adt.UnionType:
		y, ok := b.(*adt.UnionType)
		if !ok || len(x.Alts) != len(y.Alts) {
			return false
		}
		for i := range x.Alts {
			if !alphaEqAlt(s, x.Alts[i], y.Alts[i]) {
				return false
			}
		}
		return true

	case *adt.UnionLit:
		y, ok := b.(*adt.UnionLit)
		if !ok || x.Label != y.Label || len(x.Rest) != len(y.Rest) {
			return false
		}
		if (x.Value == nil) != (y.Value == nil) {
			return false
		}
		if x.Value != nil && !alphaEq(s, x.Value, y.Value) {
			return false
		}
		for i := range x.Rest {
			if !alphaEqAlt(s, x.Rest[i], y.Rest[i]) {
				return false
			}
		}
		return true

	case *adt.BinOp:
		y, ok := b.(*adt.BinOp)
		return ok && x.Op == y.Op && alphaEq(s, x.L, y.L) && alphaEq(s, x.R, y.R)

	case *adt.BoolIf:
		y, ok := b.(*adt.BoolIf)
		return ok && alphaEq(s, x.Cond, y.Cond) && alphaEq(s, x.Then, y.Then) && alphaEq(s, x.Else, y.Else)

	case *adt.Merge:
		y, ok := b.(*adt.Merge)
		if !ok || len(x.Handlers) != len(y.Handlers) {
			return false
		}
		for i := range x.Handlers {
			if x.Handlers[i].Label != y.Handlers[i].Label {
				return false
			}
			if !alphaEq(s, x.Handlers[i].Handler, y.Handlers[i].Handler) {
				return false
			}
		}
		if !alphaEq(s, x.Scrutinee, y.Scrutinee) {
			return false
		}
		return optAlphaEq(s, x.Annot, y.Annot)

	case *adt.ToMap:
		y, ok := b.(*adt.ToMap)
		return ok && alphaEq(s, x.Record, y.Record) && optAlphaEq(s, x.Annot, y.Annot)

	case *adt.Field:
		y, ok := b.(*adt.Field)
		return ok && x.Label == y.Label && alphaEq(s, x.Record, y.Record)

	case *adt.Projection:
		y, ok := b.(*adt.Projection)
		if !ok || len(x.Labels) != len(y.Labels) {
			return false
		}
		for i := range x.Labels {
			if x.Labels[i] != y.Labels[i] {
				return false
			}
		}
		return alphaEq(s, x.Record, y.Record)

	case *adt.ProjectionByExpr:
		y, ok := b.(*adt.ProjectionByExpr)
		return ok && alphaEq(s, x.Record, y.Record) && alphaEq(s, x.Type, y.Type)

	case *adt.Completion:
		y, ok := b.(*adt.Completion)
		return ok && alphaEq(s, x.Base, y.Base) && alphaEq(s, x.Rhs, y.Rhs)

	case *adt.With:
		y, ok := b.(*adt.With)
		if !ok || len(x.Path) != len(y.Path) {
			return false
		}
		for i := range x.Path {
			if x.Path[i].Label != y.Path[i].Label {
				return false
			}
		}
		return alphaEq(s, x.Record, y.Record) && alphaEq(s, x.Value, y.Value)

	default:
		panic("equiv: unhandled term kind")
	}
}

func alphaEqAlt(s stack, a, b adt.UnionAlt) bool {
	if a.Label != b.Label {
		return false
	}
	if (a.Type == nil) != (b.Type == nil) {
		return false
	}
	if a.Type == nil {
		return true
	}
	return alphaEq(s, a.Type, b.Type)
}

func optAlphaEq(s stack, a, b adt.Term) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return alphaEq(s, a, b)
}
