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

package shift

import "dhall.org/go/internal/core/adt"

// Subst replaces each free occurrence of v inside t with replacement,
// pre-shifting replacement by +1 on each binder's own label every time
// the recursion crosses a binder, so replacement's own free variables
// keep referring to the right binders once spliced under new ones.
// Subst itself does not shift the result back; SubstVar0 does.
func Subst(v adt.V, replacement adt.Term, t adt.Term) adt.Term {
	if t == nil {
		return nil
	}
	switch x := t.(type) {
	case *adt.Var:
		if x.V.Equal(v) {
			return replacement
		}
		return x

	case *adt.Const, *adt.BuiltinT:
		return x

	case *adt.Lam:
		return adt.NewLam(x.Span(), x.Label,
			Subst(v, replacement, x.Type),
			substUnder(v, replacement, x.Label, x.Body))

	case *adt.Pi:
		return adt.NewPi(x.Span(), x.Label,
			Subst(v, replacement, x.Domain),
			substUnder(v, replacement, x.Label, x.Codomain))

	case *adt.App:
		return adt.NewApp(x.Span(), Subst(v, replacement, x.Fn), Subst(v, replacement, x.Arg))

	case *adt.Let:
		var annot adt.Term
		if x.Annot != nil {
			annot = Subst(v, replacement, x.Annot)
		}
		return adt.NewLet(x.Span(), x.Label, annot,
			Subst(v, replacement, x.Value),
			substUnder(v, replacement, x.Label, x.Body))

	case *adt.Annot:
		return adt.NewAnnot(x.Span(), Subst(v, replacement, x.Term), Subst(v, replacement, x.Type))

	case *adt.Assert:
		return adt.NewAssert(x.Span(), Subst(v, replacement, x.Term))

	case *adt.Import:
		return x

	case *adt.BoolLit, *adt.NaturalLit, *adt.IntegerLit, *adt.DoubleLit:
		return x

	case *adt.TextLit:
		pieces := make([]adt.TextPiece, len(x.Pieces))
		for i, p := range x.Pieces {
			if p.Expr != nil {
				pieces[i] = adt.TextPiece{Expr: Subst(v, replacement, p.Expr)}
			} else {
				pieces[i] = p
			}
		}
		return adt.NewTextLit(x.Span(), pieces)

	case *adt.EmptyListLit:
		return adt.NewEmptyListLit(x.Span(), Subst(v, replacement, x.ElemType))

	case *adt.NEListLit:
		elems := make([]adt.Term, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Subst(v, replacement, e)
		}
		return adt.NewNEListLit(x.Span(), elems)

	case *adt.SomeLit:
		return adt.NewSomeLit(x.Span(), Subst(v, replacement, x.Value))

	case *adt.OldOptionalLit:
		var val adt.Term
		if x.Value != nil {
			val = Subst(v, replacement, x.Value)
		}
		return adt.NewOldOptionalLit(x.Span(), val, Subst(v, replacement, x.ElemType))

	case *adt.RecordType:
		fields := make([]adt.RecordField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.RecordField{Label: f.Label, Type: Subst(v, replacement, f.Type)}
		}
		return adt.NewRecordType(x.Span(), fields)

	case *adt.RecordLit:
		fields := make([]adt.RecordLitField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.RecordLitField{Label: f.Label, Value: Subst(v, replacement, f.Value)}
		}
		return adt.NewRecordLit(x.Span(), fields)

	case *adt.UnionType:
		return adt.NewUnionType(x.Span(), substAlts(v, replacement, x.Alts))

	case *adt.UnionLit:
		return adt.NewUnionLit(x.Span(), x.Label, Subst(v, replacement, x.Value), substAlts(v, replacement, x.Rest))

	case *adt.BinOp:
		return adt.NewBinOp(x.Span(), x.Op, Subst(v, replacement, x.L), Subst(v, replacement, x.R))

	case *adt.BoolIf:
		return adt.NewBoolIf(x.Span(), Subst(v, replacement, x.Cond), Subst(v, replacement, x.Then), Subst(v, replacement, x.Else))

	case *adt.Merge:
		handlers := make([]adt.MergeHandler, len(x.Handlers))
		for i, h := range x.Handlers {
			handlers[i] = adt.MergeHandler{Label: h.Label, Handler: Subst(v, replacement, h.Handler)}
		}
		var annot adt.Term
		if x.Annot != nil {
			annot = Subst(v, replacement, x.Annot)
		}
		return adt.NewMerge(x.Span(), handlers, Subst(v, replacement, x.Scrutinee), annot)

	case *adt.ToMap:
		var annot adt.Term
		if x.Annot != nil {
			annot = Subst(v, replacement, x.Annot)
		}
		return adt.NewToMap(x.Span(), Subst(v, replacement, x.Record), annot)

	case *adt.Field:
		return adt.NewField(x.Span(), Subst(v, replacement, x.Record), x.Label)

	case *adt.Projection:
		return adt.NewProjection(x.Span(), Subst(v, replacement, x.Record), x.Labels)

	case *adt.ProjectionByExpr:
		return adt.NewProjectionByExpr(x.Span(), Subst(v, replacement, x.Record), Subst(v, replacement, x.Type))

	case *adt.Completion:
		return adt.NewCompletion(x.Span(), Subst(v, replacement, x.Base), Subst(v, replacement, x.Rhs))

	case *adt.With:
		return adt.NewWith(x.Span(), Subst(v, replacement, x.Record), x.Path, Subst(v, replacement, x.Value))

	default:
		panic("subst: unhandled term kind")
	}
}

// substUnder applies Subst beneath a binder named label, bumping the
// substitution's cutoff and pre-shifting replacement as spec.md §4.1
// requires.
func substUnder(v adt.V, replacement adt.Term, label adt.Label, body adt.Term) adt.Term {
	v2 := v.Shift0(1, label)
	r2 := Shift(1, adt.V{Label: label, Index: 0}, replacement)
	return Subst(v2, r2, body)
}

func substAlts(v adt.V, replacement adt.Term, alts []adt.UnionAlt) []adt.UnionAlt {
	out := make([]adt.UnionAlt, len(alts))
	for i, a := range alts {
		var t adt.Term
		if a.Type != nil {
			t = Subst(v, replacement, a.Type)
		}
		out[i] = adt.UnionAlt{Label: a.Label, Type: t}
	}
	return out
}

// SubstVar0 is the common case: substitute V(x,0) with replacement in
// body and shift the result back by -1 on x, removing the binder that
// body was under (used by β-reduction and let-unfolding). replacement
// is shifted +1 on x first so its own free x's survive the shift back.
func SubstVar0(label adt.Label, replacement, body adt.Term) adt.Term {
	v := adt.V{Label: label, Index: 0}
	return Shift(-1, v, Subst(v, Shift(1, v, replacement), body))
}
