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

// Package typecheck implements L5 (the bidirectional typing judgement)
// and, alongside errors.go, L6 (the structured error model). One case
// per adt.Term constructor, grounded throughout on
// original_source/dhall/src/typecheck.rs's type_with match, generalised
// from its two-snapshot sketch to the full term language.
package typecheck

import (
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/equiv"
	"dhall.org/go/internal/core/norm"
	"dhall.org/go/internal/core/shift"
)

// Infer synthesizes t's type under context c, returning it already in
// beta-normal form (spec.md §5.1: "every type this module returns is
// normalised").
func Infer(c *ctx.Context, t adt.Term) (adt.Term, *TypeError) {
	switch x := t.(type) {
	case *adt.Var:
		e, ok := c.Lookup(x.V)
		if !ok {
			return nil, newErr(UnboundVariable, x.Span(), x.V.Label)
		}
		return e.Type, nil

	case *adt.Const:
		k, ok := axiom(x.K)
		if !ok {
			return nil, newErr(Untyped, x.Span())
		}
		return adt.NewConst(x.Span(), k), nil

	case *adt.BuiltinT:
		return norm.Normalize(ctx.Empty(), typeOfBuiltin(x.B)), nil

	case *adt.Lam:
		return inferLam(c, x)

	case *adt.Pi:
		return inferPi(c, x)

	case *adt.App:
		return inferApp(c, x)

	case *adt.Let:
		return inferLet(c, x)

	case *adt.Annot:
		return inferAnnot(c, x)

	case *adt.Assert:
		return inferAssert(c, x)

	case *adt.Import:
		return norm.Normalize(c, x.Type), nil

	case *adt.BoolLit:
		return adt.NewBuiltin(x.Span(), adt.BoolType), nil
	case *adt.NaturalLit:
		return adt.NewBuiltin(x.Span(), adt.NaturalType), nil
	case *adt.IntegerLit:
		return adt.NewBuiltin(x.Span(), adt.IntegerType), nil
	case *adt.DoubleLit:
		return adt.NewBuiltin(x.Span(), adt.DoubleType), nil

	case *adt.TextLit:
		return inferTextLit(c, x)

	case *adt.EmptyListLit:
		return inferEmptyList(c, x)
	case *adt.NEListLit:
		return inferNEList(c, x)
	case *adt.SomeLit:
		return inferSome(c, x)
	case *adt.OldOptionalLit:
		return inferOldOptional(c, x)

	case *adt.RecordType:
		return inferRecordType(c, x)
	case *adt.RecordLit:
		return inferRecordLit(c, x)
	case *adt.UnionType:
		return inferUnionType(c, x)
	case *adt.UnionLit:
		return inferUnionLit(c, x)

	case *adt.BinOp:
		return inferBinOp(c, x)
	case *adt.BoolIf:
		return inferBoolIf(c, x)

	case *adt.Merge:
		return inferMerge(c, x)
	case *adt.ToMap:
		return inferToMap(c, x)
	case *adt.Field:
		return inferField(c, x)
	case *adt.Projection:
		return inferProjection(c, x)
	case *adt.ProjectionByExpr:
		return inferProjectionByExpr(c, x)
	case *adt.Completion:
		return inferCompletion(c, x)
	case *adt.With:
		return inferWith(c, x)

	default:
		panic("typecheck: unhandled term kind")
	}
}

// Check verifies that t has type expected (already normal form),
// wrapping Infer with the single alpha-equivalence comparison the
// public TypecheckWith entry point needs.
func Check(c *ctx.Context, t adt.Term, expected adt.Term) (adt.Term, *TypeError) {
	got, err := Infer(c, t)
	if err != nil {
		return nil, err
	}
	ngot := norm.Normalize(c, got)
	nexp := norm.Normalize(c, expected)
	if !equiv.AlphaEq(ngot, nexp) {
		return nil, newErr(AnnotMismatch, t.Span(), nexp, ngot)
	}
	return ngot, nil
}

func asConst(t adt.Term) (adt.Constant, bool) {
	k, ok := t.(*adt.Const)
	if !ok {
		return 0, false
	}
	return k.K, true
}

// maxConstant is still used by the ⩓ (RecursiveRecordTypeMerge) rule in
// ops_infer.go, which computes the universe of the merged record *type*
// from its two operands' own universes — unlike a single record
// literal's fields, which inferRecordType/inferUnionType now require to
// share one universe exactly.
func maxConstant(a, b adt.Constant) adt.Constant {
	if a > b {
		return a
	}
	return b
}

func inferLam(c *ctx.Context, x *adt.Lam) (adt.Term, *TypeError) {
	domainT, err := Infer(c, x.Type)
	if err != nil {
		return nil, err
	}
	if _, ok := asConst(norm.Normalize(c, domainT)); !ok {
		return nil, newErr(InvalidInputType, x.Span(), domainT)
	}
	ndomain := norm.Normalize(c, x.Type)
	c2 := c.InsertType(x.Label, ndomain)
	bodyT, err := Infer(c2, x.Body)
	if err != nil {
		return nil, err
	}
	return adt.NewPi(x.Span(), x.Label, ndomain, bodyT), nil
}

func inferPi(c *ctx.Context, x *adt.Pi) (adt.Term, *TypeError) {
	ka, err := domainKind(c, x.Domain)
	if err != nil {
		return nil, err
	}
	ndomain := norm.Normalize(c, x.Domain)
	c2 := c.InsertType(x.Label, ndomain)
	codomainT, err := Infer(c2, x.Codomain)
	if err != nil {
		return nil, err
	}
	kb, ok := asConst(norm.Normalize(c2, codomainT))
	if !ok {
		return nil, newErr(InvalidOutputType, x.Span(), codomainT)
	}
	k, ok := rule(ka, kb)
	if !ok {
		return nil, newErr(NoDependentTypes, x.Span(), ka, kb)
	}
	return adt.NewConst(x.Span(), k), nil
}

// domainKind computes the universe a Pi's domain type tA itself
// inhabits (kA in spec.md §4.5's Pi rule). A domain that is literally
// the constant Sort has no legitimate classifying universe — Sort is
// never itself the type of anything a user can observe — so rather
// than bubbling up the generic Untyped error that typechecking Sort
// directly raises (the standalone-Sort case in Infer's *adt.Const
// branch), that specific situation is reported as InvalidInputType,
// spec.md's designated code for "Pi domain does not have a constant
// type".
func domainKind(c *ctx.Context, domain adt.Term) (adt.Constant, *TypeError) {
	if cst, ok := domain.(*adt.Const); ok {
		k, ok := axiom(cst.K)
		if !ok {
			return 0, newErr(InvalidInputType, domain.Span(), domain)
		}
		return k, nil
	}
	domainT, err := Infer(c, domain)
	if err != nil {
		return 0, err
	}
	k, ok := asConst(norm.Normalize(c, domainT))
	if !ok {
		return 0, newErr(InvalidInputType, domain.Span(), domainT)
	}
	return k, nil
}

func inferApp(c *ctx.Context, x *adt.App) (adt.Term, *TypeError) {
	fnT, err := Infer(c, x.Fn)
	if err != nil {
		return nil, err
	}
	pi, ok := norm.Normalize(c, fnT).(*adt.Pi)
	if !ok {
		return nil, newErr(NotAFunction, x.Span(), fnT)
	}
	argT, err := Infer(c, x.Arg)
	if err != nil {
		return nil, err
	}
	if !equiv.AlphaEq(norm.Normalize(c, argT), pi.Domain) {
		return nil, newErr(TypeMismatch, x.Span(), pi.Domain, argT)
	}
	result := shift.SubstVar0(pi.Label, x.Arg, pi.Codomain)
	return norm.Normalize(c, result), nil
}

func inferLet(c *ctx.Context, x *adt.Let) (adt.Term, *TypeError) {
	valueT, err := Infer(c, x.Value)
	if err != nil {
		return nil, err
	}
	nvalueT := norm.Normalize(c, valueT)
	if x.Annot != nil {
		nannot := norm.Normalize(c, x.Annot)
		if !equiv.AlphaEq(nannot, nvalueT) {
			return nil, newErr(AnnotMismatch, x.Span(), nannot, nvalueT)
		}
	}
	nvalue := norm.Normalize(c, x.Value)
	c2 := c.InsertValue(x.Label, nvalue, nvalueT)
	bodyT, err := Infer(c2, x.Body)
	if err != nil {
		return nil, err
	}
	return norm.Normalize(c, shift.SubstVar0(x.Label, nvalue, bodyT)), nil
}

func inferAnnot(c *ctx.Context, x *adt.Annot) (adt.Term, *TypeError) {
	termT, err := Infer(c, x.Term)
	if err != nil {
		return nil, err
	}
	nTermT := norm.Normalize(c, termT)
	nAnnot := norm.Normalize(c, x.Type)
	if !equiv.AlphaEq(nTermT, nAnnot) {
		return nil, newErr(AnnotMismatch, x.Span(), nAnnot, nTermT)
	}
	return nAnnot, nil
}

func inferAssert(c *ctx.Context, x *adt.Assert) (adt.Term, *TypeError) {
	binop, ok := x.Term.(*adt.BinOp)
	if !ok || binop.Op != adt.Equivalent {
		return nil, newErr(NotAnEquivalence, x.Span())
	}
	lT, err := Infer(c, binop.L)
	if err != nil {
		return nil, err
	}
	rT, err := Infer(c, binop.R)
	if err != nil {
		return nil, err
	}
	if !equiv.AlphaEq(norm.Normalize(c, lT), norm.Normalize(c, rT)) {
		return nil, newErr(TypeMismatch, x.Span(), lT, rT)
	}
	nl := norm.Normalize(c, binop.L)
	nr := norm.Normalize(c, binop.R)
	if !equiv.AlphaEq(nl, nr) {
		return nil, newErr(AssertionFailed, x.Span(), nl, nr)
	}
	return adt.NewBinOp(x.Span(), adt.Equivalent, nl, nr), nil
}

func inferTextLit(c *ctx.Context, x *adt.TextLit) (adt.Term, *TypeError) {
	textT := adt.NewBuiltin(x.Span(), adt.TextType)
	for _, p := range x.Pieces {
		if p.Expr == nil {
			continue
		}
		pt, err := Infer(c, p.Expr)
		if err != nil {
			return nil, err
		}
		if !equiv.AlphaEq(norm.Normalize(c, pt), textT) {
			return nil, newErr(TypeMismatch, p.Expr.Span(), textT, pt)
		}
	}
	return textT, nil
}

func inferEmptyList(c *ctx.Context, x *adt.EmptyListLit) (adt.Term, *TypeError) {
	elemK, err := Infer(c, x.ElemType)
	if err != nil {
		return nil, err
	}
	if k, ok := asConst(norm.Normalize(c, elemK)); !ok || k != adt.Type {
		return nil, newErr(InvalidListType, x.Span(), elemK)
	}
	nElem := norm.Normalize(c, x.ElemType)
	return adt.AppN(x.Span(), adt.NewBuiltin(x.Span(), adt.ListType), nElem), nil
}

func inferNEList(c *ctx.Context, x *adt.NEListLit) (adt.Term, *TypeError) {
	first, err := Infer(c, x.Elems[0])
	if err != nil {
		return nil, err
	}
	nfirst := norm.Normalize(c, first)
	firstK, err := Infer(c, nfirst)
	if err != nil {
		return nil, err
	}
	if k, ok := asConst(norm.Normalize(c, firstK)); !ok || k != adt.Type {
		return nil, newErr(InvalidListType, x.Span(), firstK)
	}
	for _, e := range x.Elems[1:] {
		et, err := Infer(c, e)
		if err != nil {
			return nil, err
		}
		if !equiv.AlphaEq(norm.Normalize(c, et), nfirst) {
			return nil, newErr(MismatchedListElements, e.Span(), nfirst, et)
		}
	}
	return adt.AppN(x.Span(), adt.NewBuiltin(x.Span(), adt.ListType), nfirst), nil
}

func inferSome(c *ctx.Context, x *adt.SomeLit) (adt.Term, *TypeError) {
	valueT, err := Infer(c, x.Value)
	if err != nil {
		return nil, err
	}
	nValueT := norm.Normalize(c, valueT)
	valueK, err := Infer(c, nValueT)
	if err != nil {
		return nil, err
	}
	if k, ok := asConst(norm.Normalize(c, valueK)); !ok || k != adt.Type {
		return nil, newErr(InvalidSome, x.Span(), valueK)
	}
	return adt.AppN(x.Span(), adt.NewBuiltin(x.Span(), adt.OptionalType), nValueT), nil
}

func inferOldOptional(c *ctx.Context, x *adt.OldOptionalLit) (adt.Term, *TypeError) {
	elemK, err := Infer(c, x.ElemType)
	if err != nil {
		return nil, err
	}
	if k, ok := asConst(norm.Normalize(c, elemK)); !ok || k != adt.Type {
		return nil, newErr(InvalidOptionalType, x.Span(), elemK)
	}
	nElem := norm.Normalize(c, x.ElemType)
	if x.Value != nil {
		valueT, err := Infer(c, x.Value)
		if err != nil {
			return nil, err
		}
		if !equiv.AlphaEq(norm.Normalize(c, valueT), nElem) {
			return nil, newErr(TypeMismatch, x.Span(), nElem, valueT)
		}
	}
	return adt.AppN(x.Span(), adt.NewBuiltin(x.Span(), adt.OptionalType), nElem), nil
}

func inferRecordType(c *ctx.Context, x *adt.RecordType) (adt.Term, *TypeError) {
	labels := make([]adt.Label, len(x.Fields))
	for i, f := range x.Fields {
		labels[i] = f.Label
	}
	if dup, ok := adt.DuplicateLabel(labels); ok {
		return nil, newErr(FieldCollision, x.Span(), dup)
	}
	var result adt.Constant
	haveResult := false
	for _, f := range x.Fields {
		ft, err := Infer(c, f.Type)
		if err != nil {
			return nil, err
		}
		k, ok := asConst(norm.Normalize(c, ft))
		if !ok {
			return nil, newErr(InvalidFieldType, f.Type.Span(), f.Label)
		}
		if !haveResult {
			result, haveResult = k, true
		} else if k != result {
			return nil, newErr(InvalidFieldType, f.Type.Span(), f.Label)
		}
	}
	if !haveResult {
		result = adt.Type
	}
	return adt.NewConst(x.Span(), result), nil
}

func inferRecordLit(c *ctx.Context, x *adt.RecordLit) (adt.Term, *TypeError) {
	labels := make([]adt.Label, len(x.Fields))
	for i, f := range x.Fields {
		labels[i] = f.Label
	}
	if dup, ok := adt.DuplicateLabel(labels); ok {
		return nil, newErr(FieldCollision, x.Span(), dup)
	}
	fields := make([]adt.RecordField, len(x.Fields))
	for i, f := range x.Fields {
		ft, err := Infer(c, f.Value)
		if err != nil {
			return nil, err
		}
		fields[i] = adt.RecordField{Label: f.Label, Type: norm.Normalize(c, ft)}
	}
	return adt.NewRecordType(x.Span(), fields), nil
}

func inferUnionType(c *ctx.Context, x *adt.UnionType) (adt.Term, *TypeError) {
	labels := make([]adt.Label, len(x.Alts))
	for i, a := range x.Alts {
		labels[i] = a.Label
	}
	if dup, ok := adt.DuplicateLabel(labels); ok {
		return nil, newErr(DuplicateAlternative, x.Span(), dup)
	}
	var result adt.Constant
	haveResult := false
	for _, a := range x.Alts {
		if a.Type == nil {
			continue
		}
		at, err := Infer(c, a.Type)
		if err != nil {
			return nil, err
		}
		k, ok := asConst(norm.Normalize(c, at))
		if !ok {
			return nil, newErr(InvalidFieldType, a.Type.Span(), a.Label)
		}
		if !haveResult {
			result, haveResult = k, true
		} else if k != result {
			return nil, newErr(InvalidFieldType, a.Type.Span(), a.Label)
		}
	}
	if !haveResult {
		result = adt.Type
	}
	return adt.NewConst(x.Span(), result), nil
}

func inferUnionLit(c *ctx.Context, x *adt.UnionLit) (adt.Term, *TypeError) {
	var valueType adt.Term
	if x.Value != nil {
		vt, err := Infer(c, x.Value)
		if err != nil {
			return nil, err
		}
		valueType = norm.Normalize(c, vt)
	}
	alts, dup, ok := adt.MergeUnionAlts(x.Label, valueType, x.Rest)
	if !ok {
		return nil, newErr(DuplicateAlternative, x.Span(), dup)
	}
	return adt.NewUnionType(x.Span(), alts), nil
}
