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

package typecheck

import (
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/equiv"
	"dhall.org/go/internal/core/norm"
)

func inferBinOp(c *ctx.Context, x *adt.BinOp) (adt.Term, *TypeError) {
	lT, err := Infer(c, x.L)
	if err != nil {
		return nil, err
	}
	rT, err := Infer(c, x.R)
	if err != nil {
		return nil, err
	}
	nl, nr := norm.Normalize(c, lT), norm.Normalize(c, rT)

	switch x.Op {
	case adt.BoolOr, adt.BoolAnd, adt.BoolEQ, adt.BoolNE:
		boolT := adt.NewBuiltin(x.Span(), adt.BoolType)
		if !equiv.AlphaEq(nl, boolT) {
			return nil, newErr(TypeMismatch, x.L.Span(), boolT, lT)
		}
		if !equiv.AlphaEq(nr, boolT) {
			return nil, newErr(TypeMismatch, x.R.Span(), boolT, rT)
		}
		return boolT, nil

	case adt.NaturalPlus, adt.NaturalTimes:
		natT := adt.NewBuiltin(x.Span(), adt.NaturalType)
		if !equiv.AlphaEq(nl, natT) {
			return nil, newErr(TypeMismatch, x.L.Span(), natT, lT)
		}
		if !equiv.AlphaEq(nr, natT) {
			return nil, newErr(TypeMismatch, x.R.Span(), natT, rT)
		}
		return natT, nil

	case adt.TextAppend:
		textT := adt.NewBuiltin(x.Span(), adt.TextType)
		if !equiv.AlphaEq(nl, textT) {
			return nil, newErr(TypeMismatch, x.L.Span(), textT, lT)
		}
		if !equiv.AlphaEq(nr, textT) {
			return nil, newErr(TypeMismatch, x.R.Span(), textT, rT)
		}
		return textT, nil

	case adt.ListAppend:
		if !isListType(nl) {
			return nil, newErr(TypeMismatch, x.L.Span(), nil, lT)
		}
		if !equiv.AlphaEq(nl, nr) {
			return nil, newErr(TypeMismatch, x.Span(), nl, nr)
		}
		return nl, nil

	case adt.RecursiveRecordMerge:
		lrt, ok := nl.(*adt.RecordType)
		if !ok {
			return nil, newErr(CantAndNonRecord, x.Span())
		}
		rrt, ok := nr.(*adt.RecordType)
		if !ok {
			return nil, newErr(CantAndNonRecord, x.Span())
		}
		combined, cerr := combineRecordTypes(x.Span(), lrt, rrt)
		if cerr != nil {
			return nil, cerr
		}
		return combined, nil

	case adt.RightBiasedRecordMerge:
		if lrt, ok := nl.(*adt.RecordType); ok {
			if rrt, ok := nr.(*adt.RecordType); ok {
				return preferRecordTypes(x.Span(), lrt, rrt), nil
			}
		}
		return nil, newErr(MustCombineRecord, x.Span())

	case adt.RecursiveRecordTypeMerge:
		kl, lok := asConst(nl)
		kr, rok := asConst(nr)
		if !lok || !rok {
			return nil, newErr(MustCombineRecordType, x.Span())
		}
		lrt, ok := norm.Normalize(c, x.L).(*adt.RecordType)
		if !ok {
			return nil, newErr(MustCombineRecordType, x.Span())
		}
		rrt, ok := norm.Normalize(c, x.R).(*adt.RecordType)
		if !ok {
			return nil, newErr(MustCombineRecordType, x.Span())
		}
		if _, cerr := combineRecordTypes(x.Span(), lrt, rrt); cerr != nil {
			return nil, cerr
		}
		return adt.NewConst(x.Span(), maxConstant(kl, kr)), nil

	case adt.Equivalent:
		if !equiv.AlphaEq(nl, nr) {
			return nil, newErr(TypeMismatch, x.Span(), nl, nr)
		}
		return adt.NewConst(x.Span(), adt.Type), nil

	case adt.ImportAltOp:
		return lT, nil

	default:
		return nil, newErr(TypeMismatch, x.Span(), nil, nil)
	}
}

// combineRecordTypes performs the recursive ∧/⩓ field merge at the
// type level, raising FieldCollision when two sides share a label that
// isn't itself mergeable (both record types).
func combineRecordTypes(span adt.Span, l, r *adt.RecordType) (*adt.RecordType, *TypeError) {
	out := append([]adt.RecordField{}, l.Fields...)
	for _, rf := range r.Fields {
		merged := false
		for i, of := range out {
			if of.Label != rf.Label {
				continue
			}
			lsub, lok := of.Type.(*adt.RecordType)
			rsub, rok := rf.Type.(*adt.RecordType)
			if !lok || !rok {
				return nil, newErr(FieldCollision, span, rf.Label)
			}
			combined, err := combineRecordTypes(span, lsub, rsub)
			if err != nil {
				return nil, err
			}
			out[i].Type = combined
			merged = true
			break
		}
		if !merged {
			out = append(out, rf)
		}
	}
	return adt.NewRecordType(span, out), nil
}

// isListType reports whether t is `List A` for some A.
func isListType(t adt.Term) bool {
	app, ok := t.(*adt.App)
	if !ok {
		return false
	}
	b, ok := app.Fn.(*adt.BuiltinT)
	return ok && b.B == adt.ListType
}

func preferRecordTypes(span adt.Span, l, r *adt.RecordType) *adt.RecordType {
	out := append([]adt.RecordField{}, l.Fields...)
	for _, rf := range r.Fields {
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

func inferBoolIf(c *ctx.Context, x *adt.BoolIf) (adt.Term, *TypeError) {
	condT, err := Infer(c, x.Cond)
	if err != nil {
		return nil, err
	}
	boolT := adt.NewBuiltin(x.Span(), adt.BoolType)
	if !equiv.AlphaEq(norm.Normalize(c, condT), boolT) {
		return nil, newErr(InvalidPredicate, x.Cond.Span(), condT)
	}
	thenT, err := Infer(c, x.Then)
	if err != nil {
		return nil, err
	}
	elseT, err := Infer(c, x.Else)
	if err != nil {
		return nil, err
	}
	nThenT, nElseT := norm.Normalize(c, thenT), norm.Normalize(c, elseT)
	if !equiv.AlphaEq(nThenT, nElseT) {
		return nil, newErr(IfBranchMismatch, x.Span(), nThenT, nElseT)
	}
	thenK, err := Infer(c, nThenT)
	if err != nil {
		return nil, err
	}
	if k, ok := asConst(norm.Normalize(c, thenK)); !ok || k != adt.Type {
		return nil, newErr(IfBranchMustBeTerm, x.Span(), thenK)
	}
	return nThenT, nil
}

func inferMerge(c *ctx.Context, x *adt.Merge) (adt.Term, *TypeError) {
	scrutT, err := Infer(c, x.Scrutinee)
	if err != nil {
		return nil, err
	}
	ut, ok := norm.Normalize(c, scrutT).(*adt.UnionType)
	if !ok {
		return nil, newErr(NotAUnion, x.Scrutinee.Span(), scrutT)
	}

	var annot adt.Term
	if x.Annot != nil {
		annot = norm.Normalize(c, x.Annot)
	}

	if len(x.Handlers) == 0 {
		if annot == nil {
			return nil, newErr(MergeRequiresRecordOfHandlers, x.Span())
		}
		return annot, nil
	}

	handled := map[adt.Label]bool{}
	var result adt.Term
	for _, h := range x.Handlers {
		alt, ok := ut.Lookup(h.Label)
		if !ok {
			return nil, newErr(UnusedMergeHandler, x.Span(), h.Label)
		}
		handled[h.Label] = true

		hT, err := Infer(c, h.Handler)
		if err != nil {
			return nil, err
		}
		nhT := norm.Normalize(c, hT)

		var resultT adt.Term
		if alt.Type == nil {
			resultT = nhT
		} else {
			pi, ok := nhT.(*adt.Pi)
			if !ok {
				return nil, newErr(MergeHandlerNotFunction, h.Handler.Span(), h.Label)
			}
			if !equiv.AlphaEq(pi.Domain, alt.Type) {
				return nil, newErr(MergeAlternativeTypeMismatch, h.Handler.Span(), h.Label, alt.Label)
			}
			resultT = pi.Codomain
		}

		if result == nil {
			result = resultT
		} else if !equiv.AlphaEq(result, resultT) {
			return nil, newErr(MergeHandlerTypeMismatch, x.Span(), result, resultT)
		}
	}
	for _, alt := range ut.Alts {
		if !handled[alt.Label] {
			return nil, newErr(MissingMergeHandler, x.Span(), alt.Label)
		}
	}
	if annot != nil && !equiv.AlphaEq(result, annot) {
		return nil, newErr(MergeAnnotMismatch, x.Span(), result, annot)
	}
	return result, nil
}

func inferToMap(c *ctx.Context, x *adt.ToMap) (adt.Term, *TypeError) {
	recT, err := Infer(c, x.Record)
	if err != nil {
		return nil, err
	}
	rt, ok := norm.Normalize(c, recT).(*adt.RecordType)
	if !ok {
		return nil, newErr(InvalidToMapRecordKind, x.Record.Span(), recT)
	}

	entryType := func(v adt.Term) adt.Term {
		return adt.NewRecordType(x.Span(), []adt.RecordField{
			{Label: "mapKey", Type: adt.NewBuiltin(x.Span(), adt.TextType)},
			{Label: "mapValue", Type: v},
		})
	}
	listOf := func(v adt.Term) adt.Term {
		return adt.AppN(x.Span(), adt.NewBuiltin(x.Span(), adt.ListType), entryType(v))
	}

	if len(rt.Fields) == 0 {
		if x.Annot == nil {
			return nil, newErr(MissingToMapAnnotation, x.Span())
		}
		return norm.Normalize(c, x.Annot), nil
	}

	valueType := rt.Fields[0].Type
	for _, f := range rt.Fields[1:] {
		if !equiv.AlphaEq(f.Type, valueType) {
			return nil, newErr(HeterogenousRecordToMap, x.Span())
		}
	}
	return listOf(valueType), nil
}

func inferField(c *ctx.Context, x *adt.Field) (adt.Term, *TypeError) {
	recT, err := Infer(c, x.Record)
	if err != nil {
		return nil, err
	}
	nrec := norm.Normalize(c, recT)
	switch rt := nrec.(type) {
	case *adt.RecordType:
		ft, ok := rt.Lookup(x.Label)
		if !ok {
			return nil, newErr(MissingField, x.Span(), x.Label)
		}
		return ft, nil
	case *adt.UnionType:
		alt, ok := rt.Lookup(x.Label)
		if !ok {
			return nil, newErr(MissingField, x.Span(), x.Label)
		}
		if alt.Type == nil {
			return rt, nil
		}
		return adt.NewPi(x.Span(), "_", alt.Type, rt), nil
	default:
		return nil, newErr(NotARecord, x.Record.Span(), recT)
	}
}

func inferProjection(c *ctx.Context, x *adt.Projection) (adt.Term, *TypeError) {
	recT, err := Infer(c, x.Record)
	if err != nil {
		return nil, err
	}
	rt, ok := norm.Normalize(c, recT).(*adt.RecordType)
	if !ok {
		return nil, newErr(NotARecord, x.Record.Span(), recT)
	}
	fields := make([]adt.RecordField, len(x.Labels))
	for i, l := range x.Labels {
		ft, ok := rt.Lookup(l)
		if !ok {
			return nil, newErr(ProjectionMissingLabel, x.Span(), l)
		}
		fields[i] = adt.RecordField{Label: l, Type: ft}
	}
	return adt.NewRecordType(x.Span(), fields), nil
}

func inferProjectionByExpr(c *ctx.Context, x *adt.ProjectionByExpr) (adt.Term, *TypeError) {
	recT, err := Infer(c, x.Record)
	if err != nil {
		return nil, err
	}
	rt, ok := norm.Normalize(c, recT).(*adt.RecordType)
	if !ok {
		return nil, newErr(NotARecord, x.Record.Span(), recT)
	}
	typK, err := Infer(c, x.Type)
	if err != nil {
		return nil, err
	}
	if _, ok := asConst(norm.Normalize(c, typK)); !ok {
		return nil, newErr(ProjectionByExprNotRecordType, x.Type.Span(), typK)
	}
	target, ok := norm.Normalize(c, x.Type).(*adt.RecordType)
	if !ok {
		return nil, newErr(ProjectionByExprNotRecordType, x.Type.Span(), x.Type)
	}
	for _, f := range target.Fields {
		ft, ok := rt.Lookup(f.Label)
		if !ok {
			return nil, newErr(ProjectionMissingLabel, x.Span(), f.Label)
		}
		if !equiv.AlphaEq(ft, f.Type) {
			return nil, newErr(TypeMismatch, x.Span(), f.Type, ft)
		}
	}
	return target, nil
}

func inferCompletion(c *ctx.Context, x *adt.Completion) (adt.Term, *TypeError) {
	desugared := adt.NewAnnot(x.Span(),
		adt.NewBinOp(x.Span(), adt.RightBiasedRecordMerge,
			adt.NewField(x.Span(), x.Base, "default"), x.Rhs),
		adt.NewField(x.Span(), x.Base, "Type"))
	return Infer(c, desugared)
}

func inferWith(c *ctx.Context, x *adt.With) (adt.Term, *TypeError) {
	recT, err := Infer(c, x.Record)
	if err != nil {
		return nil, err
	}
	rt, ok := norm.Normalize(c, recT).(*adt.RecordType)
	if !ok {
		return nil, newErr(WithMustBeRecord, x.Record.Span(), recT)
	}
	return withType(c, x.Span(), rt, x.Path, x.Value)
}

func withType(c *ctx.Context, span adt.Span, rt *adt.RecordType, path []adt.WithPathComponent, value adt.Term) (adt.Term, *TypeError) {
	step := path[0]
	if len(path) == 1 {
		valueT, err := Infer(c, value)
		if err != nil {
			return nil, err
		}
		nValueT := norm.Normalize(c, valueT)
		out := append([]adt.RecordField{}, rt.Fields...)
		replaced := false
		for i, f := range out {
			if f.Label == step.Label {
				out[i].Type = nValueT
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, adt.RecordField{Label: step.Label, Type: nValueT})
		}
		return adt.NewRecordType(span, out), nil
	}

	existing, found := rt.Lookup(step.Label)
	var subRT *adt.RecordType
	if found {
		sub, ok := existing.(*adt.RecordType)
		if !ok {
			return nil, newErr(WithMustBeRecord, span, existing)
		}
		subRT = sub
	} else {
		subRT = adt.NewRecordType(span, nil)
	}
	updatedSub, err := withType(c, span, subRT, path[1:], value)
	if err != nil {
		return nil, err
	}
	out := append([]adt.RecordField{}, rt.Fields...)
	replaced := false
	for i, f := range out {
		if f.Label == step.Label {
			out[i].Type = updatedSub
			replaced = true
			break
		}
	}
	if !replaced {
		out = append(out, adt.RecordField{Label: step.Label, Type: updatedSub})
	}
	return adt.NewRecordType(span, out), nil
}
