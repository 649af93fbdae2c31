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

package norm

import (
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
)

// reduceRecordMerge implements `l ∧ r`: deep merge of two record
// literals, recursing into a field present on both sides only when
// both values are themselves record literals (spec.md's recursive
// merge rule; a non-record clash is a typecheck-time FieldCollision,
// never reached once a term is known well-typed).
func reduceRecordMerge(span adt.Span, l, r adt.Term) adt.Term {
	lr, lok := l.(*adt.RecordLit)
	rr, rok := r.(*adt.RecordLit)
	if !lok || !rok {
		return adt.NewBinOp(span, adt.RecursiveRecordMerge, l, r)
	}
	out := make([]adt.RecordLitField, 0, len(lr.Fields)+len(rr.Fields))
	out = append(out, lr.Fields...)
	for _, rf := range rr.Fields {
		merged := false
		for i, of := range out {
			if of.Label != rf.Label {
				continue
			}
			lsub, lok := of.Value.(*adt.RecordLit)
			rsub, rok := rf.Value.(*adt.RecordLit)
			if lok && rok {
				out[i].Value = reduceRecordMerge(span, lsub, rsub)
			} else {
				out[i].Value = rf.Value
			}
			merged = true
			break
		}
		if !merged {
			out = append(out, rf)
		}
	}
	return adt.NewRecordLit(span, out)
}

// reduceRecordTypeMerge implements `l ⩓ r`, the type-level analogue of
// reduceRecordMerge, used when normalising a `⩓` expression.
func reduceRecordTypeMerge(span adt.Span, l, r adt.Term) adt.Term {
	lr, lok := l.(*adt.RecordType)
	rr, rok := r.(*adt.RecordType)
	if !lok || !rok {
		return adt.NewBinOp(span, adt.RecursiveRecordTypeMerge, l, r)
	}
	out := make([]adt.RecordField, 0, len(lr.Fields)+len(rr.Fields))
	out = append(out, lr.Fields...)
	for _, rf := range rr.Fields {
		merged := false
		for i, of := range out {
			if of.Label != rf.Label {
				continue
			}
			lsub, lok := of.Type.(*adt.RecordType)
			rsub, rok := rf.Type.(*adt.RecordType)
			if lok && rok {
				out[i].Type = reduceRecordTypeMerge(span, lsub, rsub)
			} else {
				out[i].Type = rf.Type
			}
			merged = true
			break
		}
		if !merged {
			out = append(out, rf)
		}
	}
	return adt.NewRecordType(span, out)
}

// reduceRecordPrefer implements `l ⫽ r`: a shallow, right-biased merge
// over either two record literals or two record types (Completion
// desugars to this operator applied to a literal's default-field
// value, spec.md §4.6).
func reduceRecordPrefer(span adt.Span, l, r adt.Term) adt.Term {
	if lr, ok := l.(*adt.RecordLit); ok {
		if rr, ok := r.(*adt.RecordLit); ok {
			out := append([]adt.RecordLitField{}, lr.Fields...)
			for _, rf := range rr.Fields {
				replaced := false
				for i, of := range out {
					if of.Label == rf.Label {
						out[i].Value = rf.Value
						replaced = true
						break
					}
				}
				if !replaced {
					out = append(out, rf)
				}
			}
			return adt.NewRecordLit(span, out)
		}
	}
	if lr, ok := l.(*adt.RecordType); ok {
		if rr, ok := r.(*adt.RecordType); ok {
			out := append([]adt.RecordField{}, lr.Fields...)
			for _, rf := range rr.Fields {
				replaced := false
				for i, of := range out {
					if of.Label == rf.Label {
						out[i].Type = rf.Type
						replaced = true
						break
					}
				}
				if !replaced {
					out = append(out, rf)
				}
			}
			return adt.NewRecordType(span, out)
		}
	}
	return adt.NewBinOp(span, adt.RightBiasedRecordMerge, l, r)
}

func normalizeField(c *ctx.Context, x *adt.Field) adt.Term {
	record := Normalize(c, x.Record)
	if rl, ok := record.(*adt.RecordLit); ok {
		if v, ok := rl.Lookup(x.Label); ok {
			return v
		}
	}
	// Union constructor selection: `U.Ctor` where U is a UnionType.
	if ut, ok := record.(*adt.UnionType); ok {
		if alt, ok := ut.Lookup(x.Label); ok {
			rest := make([]adt.UnionAlt, 0, len(ut.Alts)-1)
			for _, a := range ut.Alts {
				if a.Label != x.Label {
					rest = append(rest, a)
				}
			}
			if alt.Type == nil {
				return adt.NewUnionLit(x.Span(), x.Label, nil, rest)
			}
			// A constructor for an alternative with a payload type is
			// a function value; left as a stuck Field since adt has no
			// dedicated "union constructor closure" term — the
			// typechecker never normalises it without full application.
		}
	}
	return adt.NewField(x.Span(), record, x.Label)
}

func normalizeProjection(c *ctx.Context, x *adt.Projection) adt.Term {
	record := Normalize(c, x.Record)
	if rl, ok := record.(*adt.RecordLit); ok {
		out := make([]adt.RecordLitField, 0, len(x.Labels))
		allFound := true
		for _, l := range x.Labels {
			v, ok := rl.Lookup(l)
			if !ok {
				allFound = false
				break
			}
			out = append(out, adt.RecordLitField{Label: l, Value: v})
		}
		if allFound {
			return adt.NewRecordLit(x.Span(), out)
		}
	}
	return adt.NewProjection(x.Span(), record, x.Labels)
}

func normalizeProjectionByExpr(c *ctx.Context, x *adt.ProjectionByExpr) adt.Term {
	record := Normalize(c, x.Record)
	typ := Normalize(c, x.Type)
	if rt, ok := typ.(*adt.RecordType); ok {
		labels := make([]adt.Label, len(rt.Fields))
		for i, f := range rt.Fields {
			labels[i] = f.Label
		}
		return normalizeProjection(c, adt.NewProjection(x.Span(), record, labels))
	}
	return adt.NewProjectionByExpr(x.Span(), record, typ)
}

func normalizeCompletion(c *ctx.Context, x *adt.Completion) adt.Term {
	// `a::b` desugars to `(a.default ⫽ b) : a.Type` (spec.md §4.6).
	defaultVal := adt.NewField(x.Span(), x.Base, "default")
	typeVal := adt.NewField(x.Span(), x.Base, "Type")
	merged := adt.NewBinOp(x.Span(), adt.RightBiasedRecordMerge, defaultVal, x.Rhs)
	return Normalize(c, adt.NewAnnot(x.Span(), merged, typeVal))
}

func normalizeWith(c *ctx.Context, x *adt.With) adt.Term {
	record := Normalize(c, x.Record)
	value := Normalize(c, x.Value)
	return withAt(x.Span(), record, x.Path, value)
}

func withAt(span adt.Span, record adt.Term, path []adt.WithPathComponent, value adt.Term) adt.Term {
	if len(path) == 0 {
		return value
	}
	step := path[0]
	rl, ok := record.(*adt.RecordLit)
	if !ok {
		return adt.NewWith(span, record, path, value)
	}
	out := append([]adt.RecordLitField{}, rl.Fields...)
	updated := false
	for i, f := range out {
		if f.Label == step.Label {
			out[i].Value = withAt(span, f.Value, path[1:], value)
			updated = true
			break
		}
	}
	if !updated {
		var nested adt.Term
		if len(path) == 1 {
			nested = value
		} else {
			nested = withAt(span, adt.NewRecordLit(span, nil), path[1:], value)
		}
		out = append(out, adt.RecordLitField{Label: step.Label, Value: nested})
	}
	return adt.NewRecordLit(span, out)
}

func normalizeMerge(c *ctx.Context, x *adt.Merge) adt.Term {
	scrutinee := Normalize(c, x.Scrutinee)
	handlers := make([]adt.MergeHandler, len(x.Handlers))
	for i, h := range x.Handlers {
		handlers[i] = adt.MergeHandler{Label: h.Label, Handler: Normalize(c, h.Handler)}
	}
	var annot adt.Term
	if x.Annot != nil {
		annot = Normalize(c, x.Annot)
	}
	if ul, ok := scrutinee.(*adt.UnionLit); ok {
		for _, h := range handlers {
			if h.Label != ul.Label {
				continue
			}
			if ul.Value == nil {
				return h.Handler
			}
			return Normalize(c, adt.NewApp(x.Span(), h.Handler, ul.Value))
		}
	}
	if some, ok := scrutinee.(*adt.SomeLit); ok {
		for _, h := range handlers {
			if h.Label == "Some" {
				return Normalize(c, adt.NewApp(x.Span(), h.Handler, some.Value))
			}
		}
	}
	if _, ok := asNone(scrutinee); ok {
		for _, h := range handlers {
			if h.Label == "None" {
				return h.Handler
			}
		}
	}
	return adt.NewMerge(x.Span(), handlers, scrutinee, annot)
}

func normalizeToMap(c *ctx.Context, x *adt.ToMap) adt.Term {
	record := Normalize(c, x.Record)
	var annot adt.Term
	if x.Annot != nil {
		annot = Normalize(c, x.Annot)
	}
	rl, ok := record.(*adt.RecordLit)
	if !ok {
		return adt.NewToMap(x.Span(), record, annot)
	}
	if len(rl.Fields) == 0 {
		if annot != nil {
			return annot
		}
		return adt.NewToMap(x.Span(), record, annot)
	}
	entries := make([]adt.Term, len(rl.Fields))
	for i, f := range rl.Fields {
		entries[i] = adt.NewRecordLit(x.Span(), []adt.RecordLitField{
			{Label: "mapKey", Value: textLitOf(string(f.Label))},
			{Label: "mapValue", Value: f.Value},
		})
	}
	return adt.NewNEListLit(x.Span(), entries)
}
