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

// Package norm implements L2: reduction of a term to beta-normal form,
// sufficient for type equality (spec.md §4.2). Subterms are normalised
// before their parent, so reduction is deterministic. The normaliser
// accepts the typechecking Context (internal/core/ctx) purely so that
// a free Var naming a let-bound value (a ValueBinding, spec.md §3.1)
// can unfold in place — mirroring the teacher's Environment-threaded
// evaluation in internal/core/eval, but specialised to Dhall's eager,
// non-lazy reduction (no Vertex/Conjunct laziness is needed here).
package norm

import (
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/shift"
)

// Normalize reduces t to beta-normal form under context c (pass
// ctx.Empty() for a term known to be closed).
func Normalize(c *ctx.Context, t adt.Term) adt.Term {
	if t == nil {
		return nil
	}
	switch x := t.(type) {
	case *adt.Var:
		if e, ok := c.Lookup(x.V); ok && e.Kind == ctx.ValueBinding {
			return e.Value
		}
		return x

	case *adt.Const, *adt.BuiltinT:
		return x

	case *adt.Lam:
		nt := Normalize(c, x.Type)
		c2 := c.InsertType(x.Label, nt)
		nb := Normalize(c2, x.Body)
		return adt.NewLam(x.Span(), x.Label, nt, nb)

	case *adt.Pi:
		nd := Normalize(c, x.Domain)
		c2 := c.InsertType(x.Label, nd)
		ncod := Normalize(c2, x.Codomain)
		return adt.NewPi(x.Span(), x.Label, nd, ncod)

	case *adt.App:
		nf := Normalize(c, x.Fn)
		na := Normalize(c, x.Arg)
		return applyNF(c, nf, na, x.Span())

	case *adt.Let:
		nv := Normalize(c, x.Value)
		body := shift.SubstVar0(x.Label, nv, x.Body)
		return Normalize(c, body)

	case *adt.Annot:
		return Normalize(c, x.Term)

	case *adt.Assert:
		return normalizeAssert(c, x)

	case *adt.Import:
		return Normalize(c, x.Value)

	case *adt.BoolLit, *adt.NaturalLit, *adt.IntegerLit, *adt.DoubleLit:
		return x

	case *adt.TextLit:
		return normalizeTextLit(c, x)

	case *adt.EmptyListLit:
		return adt.NewEmptyListLit(x.Span(), Normalize(c, x.ElemType))

	case *adt.NEListLit:
		elems := make([]adt.Term, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Normalize(c, e)
		}
		return adt.NewNEListLit(x.Span(), elems)

	case *adt.SomeLit:
		return adt.NewSomeLit(x.Span(), Normalize(c, x.Value))

	case *adt.OldOptionalLit:
		if x.Value != nil {
			return adt.NewSomeLit(x.Span(), Normalize(c, x.Value))
		}
		return noneOf(x.Span(), Normalize(c, x.ElemType))

	case *adt.RecordType:
		fields := make([]adt.RecordField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.RecordField{Label: f.Label, Type: Normalize(c, f.Type)}
		}
		return adt.NewRecordType(x.Span(), fields)

	case *adt.RecordLit:
		fields := make([]adt.RecordLitField, len(x.Fields))
		for i, f := range x.Fields {
			fields[i] = adt.RecordLitField{Label: f.Label, Value: Normalize(c, f.Value)}
		}
		return adt.NewRecordLit(x.Span(), fields)

	case *adt.UnionType:
		return adt.NewUnionType(x.Span(), normalizeAlts(c, x.Alts))

	case *adt.UnionLit:
		return adt.NewUnionLit(x.Span(), x.Label, Normalize(c, x.Value), normalizeAlts(c, x.Rest))

	case *adt.BinOp:
		return normalizeBinOp(c, x)

	case *adt.BoolIf:
		return normalizeBoolIf(c, x)

	case *adt.Merge:
		return normalizeMerge(c, x)

	case *adt.ToMap:
		return normalizeToMap(c, x)

	case *adt.Field:
		return normalizeField(c, x)

	case *adt.Projection:
		return normalizeProjection(c, x)

	case *adt.ProjectionByExpr:
		return normalizeProjectionByExpr(c, x)

	case *adt.Completion:
		return normalizeCompletion(c, x)

	case *adt.With:
		return normalizeWith(c, x)

	default:
		panic("norm: unhandled term kind")
	}
}

func normalizeAlts(c *ctx.Context, alts []adt.UnionAlt) []adt.UnionAlt {
	out := make([]adt.UnionAlt, len(alts))
	for i, a := range alts {
		var t adt.Term
		if a.Type != nil {
			t = Normalize(c, a.Type)
		}
		out[i] = adt.UnionAlt{Label: a.Label, Type: t}
	}
	return out
}

func normalizeTextLit(c *ctx.Context, t *adt.TextLit) adt.Term {
	pieces := make([]adt.TextPiece, 0, len(t.Pieces))
	for _, p := range t.Pieces {
		if p.Expr == nil {
			pieces = append(pieces, p)
			continue
		}
		ne := Normalize(c, p.Expr)
		if lit, ok := ne.(*adt.TextLit); ok {
			pieces = append(pieces, lit.Pieces...)
			continue
		}
		pieces = append(pieces, adt.TextPiece{Expr: ne})
	}
	// Merge adjacent literal chunks produced by the inlining above.
	merged := make([]adt.TextPiece, 0, len(pieces))
	for _, p := range pieces {
		if p.Expr == nil && len(merged) > 0 && merged[len(merged)-1].Expr == nil {
			merged[len(merged)-1].Chunk += p.Chunk
			continue
		}
		merged = append(merged, p)
	}
	return adt.NewTextLit(t.Span(), merged)
}

// noneOf builds the normal form of `None A`: a stuck application of
// the None builtin to the element type. None never reduces further on
// its own; it is eliminated by Optional/fold or by Field/Merge.
func noneOf(span adt.Span, elemType adt.Term) adt.Term {
	return adt.NewApp(span, adt.NewBuiltin(span, adt.OptionalNone), elemType)
}

// asNone reports whether t is the normal form of `None A`, returning A.
func asNone(t adt.Term) (adt.Term, bool) {
	app, ok := t.(*adt.App)
	if !ok {
		return nil, false
	}
	b, ok := app.Fn.(*adt.BuiltinT)
	if !ok || b.B != adt.OptionalNone {
		return nil, false
	}
	return app.Arg, true
}
