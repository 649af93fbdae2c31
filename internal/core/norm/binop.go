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
	"github.com/cockroachdb/apd/v2"

	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
)

// arithCtx is used for the two arbitrary-precision Natural operators;
// Dhall naturals are unbounded so the working precision is generous
// rather than the apd default of 16 significant digits.
var arithCtx = apd.BaseContext.WithPrecision(4000)

func normalizeBoolIf(c *ctx.Context, x *adt.BoolIf) adt.Term {
	cond := Normalize(c, x.Cond)
	then := Normalize(c, x.Then)
	els := Normalize(c, x.Else)
	if b, ok := cond.(*adt.BoolLit); ok {
		if b.Value {
			return then
		}
		return els
	}
	// `if c then True else False` ≡ c (spec-mandated eta-style
	// simplification used by the reference implementation).
	if tb, ok := then.(*adt.BoolLit); ok && tb.Value {
		if eb, ok := els.(*adt.BoolLit); ok && !eb.Value {
			return cond
		}
	}
	return adt.NewBoolIf(x.Span(), cond, then, els)
}

func normalizeAssert(c *ctx.Context, x *adt.Assert) adt.Term {
	return adt.NewAssert(x.Span(), Normalize(c, x.Term))
}

func normalizeBinOp(c *ctx.Context, x *adt.BinOp) adt.Term {
	l := Normalize(c, x.L)
	r := Normalize(c, x.R)
	switch x.Op {
	case adt.BoolOr:
		return reduceBoolOp(x.Span(), l, r, true)
	case adt.BoolAnd:
		return reduceBoolOp(x.Span(), l, r, false)
	case adt.BoolEQ:
		return reduceBoolEq(x.Span(), l, r, true)
	case adt.BoolNE:
		return reduceBoolEq(x.Span(), l, r, false)
	case adt.NaturalPlus:
		return reduceNaturalArith(x.Span(), l, r, true)
	case adt.NaturalTimes:
		return reduceNaturalArith(x.Span(), l, r, false)
	case adt.TextAppend:
		return reduceTextAppend(x.Span(), l, r)
	case adt.ListAppend:
		return reduceListAppend(x.Span(), l, r)
	case adt.RecursiveRecordMerge:
		return reduceRecordMerge(x.Span(), l, r)
	case adt.RightBiasedRecordMerge:
		return reduceRecordPrefer(x.Span(), l, r)
	case adt.RecursiveRecordTypeMerge:
		return reduceRecordTypeMerge(x.Span(), l, r)
	case adt.Equivalent, adt.ImportAltOp:
		return adt.NewBinOp(x.Span(), x.Op, l, r)
	default:
		return adt.NewBinOp(x.Span(), x.Op, l, r)
	}
}

func reduceBoolOp(span adt.Span, l, r adt.Term, isOr bool) adt.Term {
	lb, lok := l.(*adt.BoolLit)
	rb, rok := r.(*adt.BoolLit)
	if lok && rok {
		if isOr {
			return adt.NewBoolLit(span, lb.Value || rb.Value)
		}
		return adt.NewBoolLit(span, lb.Value && rb.Value)
	}
	// identity/absorbing simplifications on one literal operand
	if lok {
		if lb.Value == isOr {
			return l // True || x ≡ True ; False && x ≡ False
		}
		return r // False || x ≡ x ; True && x ≡ x
	}
	if rok {
		if rb.Value == isOr {
			return r
		}
		return l
	}
	op := adt.BoolAnd
	if isOr {
		op = adt.BoolOr
	}
	return adt.NewBinOp(span, op, l, r)
}

func reduceBoolEq(span adt.Span, l, r adt.Term, wantEQ bool) adt.Term {
	if lb, ok := l.(*adt.BoolLit); ok {
		if rb, ok := r.(*adt.BoolLit); ok {
			eq := lb.Value == rb.Value
			return adt.NewBoolLit(span, eq == wantEQ)
		}
	}
	op := adt.BoolNE
	if wantEQ {
		op = adt.BoolEQ
	}
	return adt.NewBinOp(span, op, l, r)
}

func reduceNaturalArith(span adt.Span, l, r adt.Term, isPlus bool) adt.Term {
	ln, lok := l.(*adt.NaturalLit)
	rn, rok := r.(*adt.NaturalLit)
	if lok && rok {
		var out apd.Decimal
		if isPlus {
			arithCtx.Add(&out, &ln.Value, &rn.Value)
		} else {
			arithCtx.Mul(&out, &ln.Value, &rn.Value)
		}
		return adt.NewNaturalLit(span, out)
	}
	if isPlus {
		if lok && ln.Value.Sign() == 0 {
			return r
		}
		if rok && rn.Value.Sign() == 0 {
			return l
		}
		return adt.NewBinOp(span, adt.NaturalPlus, l, r)
	}
	if lok {
		switch ln.Value.Sign() {
		case 0:
			return adt.NaturalFromUint64(span, 0)
		default:
			var one apd.Decimal
			one.SetFinite(1, 0)
			if ln.Value.Cmp(&one) == 0 {
				return r
			}
		}
	}
	if rok {
		switch rn.Value.Sign() {
		case 0:
			return adt.NaturalFromUint64(span, 0)
		default:
			var one apd.Decimal
			one.SetFinite(1, 0)
			if rn.Value.Cmp(&one) == 0 {
				return l
			}
		}
	}
	return adt.NewBinOp(span, adt.NaturalTimes, l, r)
}

func reduceTextAppend(span adt.Span, l, r adt.Term) adt.Term {
	lt, lok := l.(*adt.TextLit)
	rt, rok := r.(*adt.TextLit)
	if lok && len(lt.Pieces) == 0 {
		return r
	}
	if rok && len(rt.Pieces) == 0 {
		return l
	}
	if lok && rok {
		pieces := append(append([]adt.TextPiece{}, lt.Pieces...), rt.Pieces...)
		return normalizeTextLit(ctx.Empty(), adt.NewTextLit(span, pieces))
	}
	return adt.NewBinOp(span, adt.TextAppend, l, r)
}

func reduceListAppend(span adt.Span, l, r adt.Term) adt.Term {
	if _, ok := l.(*adt.EmptyListLit); ok {
		return r
	}
	if _, ok := r.(*adt.EmptyListLit); ok {
		return l
	}
	ln, lok := l.(*adt.NEListLit)
	rn, rok := r.(*adt.NEListLit)
	if lok && rok {
		elems := append(append([]adt.Term{}, ln.Elems...), rn.Elems...)
		return adt.NewNEListLit(span, elems)
	}
	return adt.NewBinOp(span, adt.ListAppend, l, r)
}
