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

// Package shift implements L1: capture-avoiding de Bruijn index
// shifting and substitution. Both operations are total — see
// spec.md §4.1.
package shift

import "dhall.org/go/internal/core/adt"

// Shift rewrites each free occurrence of v inside t to have its index
// adjusted by delta (delta is typically +1 or -1), crossing binders by
// bumping the cutoff per spec.md §4.1.
func Shift(delta int, v adt.V, t adt.Term) adt.Term {
	if t == nil {
		return nil
	}
	switch x := t.(type) {
	case *adt.Var:
		if x.V.Label == v.Label && x.V.Index >= v.Index {
			return adt.NewVar(x.Span(), adt.V{Label: x.V.Label, Index: x.V.Index + delta})
		}
		return x

	case *adt.Const:
		return x

	case *adt.BuiltinT:
		return x

	case *adt.Lam:
		return adt.NewLam(x.Span(), x.Label,
			Shift(delta, v, x.Type),
			Shift(delta, v.Shift0(1, x.Label), x.Body))

	case *adt.Pi:
		return adt.NewPi(x.Span(), x.Label,
			Shift(delta, v, x.Domain),
			Shift(delta, v.Shift0(1, x.Label), x.Codomain))

	case *adt.App:
		return adt.NewApp(x.Span(), Shift(delta, v, x.Fn), Shift(delta, v, x.Arg))

	case *adt.Let:
		var annot adt.Term
		if x.Annot != nil {
			annot = Shift(delta, v, x.Annot)
		}
		return adt.NewLet(x.Span(), x.Label, annot,
			Shift(delta, v, x.Value),
			Shift(delta, v.Shift0(1, x.Label), x.Body))

	case *adt.Annot:
		return adt.NewAnnot(x.Span(), Shift(delta, v, x.Term), Shift(delta, v, x.Type))

	case *adt.Assert:
		return adt.NewAssert(x.Span(), Shift(delta, v, x.Term))

	case *adt.Import:
		return x // embedded values are closed; never shifted

	case *adt.BoolLit, *adt.NaturalLit, *adt.IntegerLit, *adt.DoubleLit:
		return x

	case *adt.TextLit:
		pieces := make([]adt.TextPiece, len(x.Pieces))
		for i, p := range x.Pieces {
			if p.Expr != nil {
				pieces[i] = adt.TextPiece{Expr: Shift(delta, v, p.Expr)}
			} else {
				pieces[i] = p
			}
		}
		return adt.NewTextLit(x.Span(), pieces)

	case *adt.EmptyListLit:
		return adt.NewEmptyListLit(x.Span(), Shift(delta, v, x.ElemType))

	case *adt.NEListLit:
		elems := make([]adt.Term, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Shift(delta, v, e)
		}
		return adt.NewNEListLit(x.Span(), elems)

	case *adt.SomeLit:
		return adt.NewSomeLit(x.Span(), Shift(delta, v, x.Value))

	case *adt.OldOptionalLit:
		var val adt.Term
		if x.Value != nil {
			val = Shift(delta, v, x.Value)
		}
		return adt.NewOldOptionalLit(x.Span(), val, Shift(delta, v, x.ElemType))

	case *adt.RecordType:
		fields := make([]adt.RecordField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.RecordField{Label: f.Label, Type: Shift(delta, v, f.Type)}
		}
		return adt.NewRecordType(x.Span(), fields)

	case *adt.RecordLit:
		fields := make([]adt.RecordLitField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.RecordLitField{Label: f.Label, Value: Shift(delta, v, f.Value)}
		}
		return adt.NewRecordLit(x.Span(), fields)

	case *adt.UnionType:
		return adt.NewUnionType(x.Span(), shiftAlts(delta, v, x.Alts))

	case *adt.UnionLit:
		return adt.NewUnionLit(x.Span(), x.Label, Shift(delta, v, x.Value), shiftAlts(delta, v, x.Rest))

	case *adt.BinOp:
		return adt.NewBinOp(x.Span(), x.Op, Shift(delta, v, x.L), Shift(delta, v, x.R))

	case *adt.BoolIf:
		return adt.NewBoolIf(x.Span(), Shift(delta, v, x.Cond), Shift(delta, v, x.Then), Shift(delta, v, x.Else))

	case *adt.Merge:
		handlers := make([]adt.MergeHandler, len(x.Handlers))
		for i, h := range x.Handlers {
			handlers[i] = adt.MergeHandler{Label: h.Label, Handler: Shift(delta, v, h.Handler)}
		}
		var annot adt.Term
		if x.Annot != nil {
			annot = Shift(delta, v, x.Annot)
		}
		return adt.NewMerge(x.Span(), handlers, Shift(delta, v, x.Scrutinee), annot)

	case *adt.ToMap:
		var annot adt.Term
		if x.Annot != nil {
			annot = Shift(delta, v, x.Annot)
		}
		return adt.NewToMap(x.Span(), Shift(delta, v, x.Record), annot)

	case *adt.Field:
		return adt.NewField(x.Span(), Shift(delta, v, x.Record), x.Label)

	case *adt.Projection:
		return adt.NewProjection(x.Span(), Shift(delta, v, x.Record), x.Labels)

	case *adt.ProjectionByExpr:
		return adt.NewProjectionByExpr(x.Span(), Shift(delta, v, x.Record), Shift(delta, v, x.Type))

	case *adt.Completion:
		return adt.NewCompletion(x.Span(), Shift(delta, v, x.Base), Shift(delta, v, x.Rhs))

	case *adt.With:
		return adt.NewWith(x.Span(), Shift(delta, v, x.Record), x.Path, Shift(delta, v, x.Value))

	default:
		panic("shift: unhandled term kind")
	}
}

func shiftAlts(delta int, v adt.V, alts []adt.UnionAlt) []adt.UnionAlt {
	out := make([]adt.UnionAlt, len(alts))
	for i, a := range alts {
		var t adt.Term
		if a.Type != nil {
			t = Shift(delta, v, a.Type)
		}
		out[i] = adt.UnionAlt{Label: a.Label, Type: t}
	}
	return out
}
