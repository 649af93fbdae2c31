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

// reduceBuiltin dispatches a fully- (or over-) applied builtin spine to
// its reduction rule, grounded on
// original_source/dhall/src/typecheck.rs's normalize match arms for
// each builtin. ok is false when args is short of the builtin's arity
// or the arguments aren't concrete enough to reduce (e.g. a bound
// variable where a literal is required), in which case the spine is
// left stuck.
func reduceBuiltin(c *ctx.Context, b adt.Builtin, args []adt.Term) (adt.Term, bool) {
	need := builtinArity[b]
	if need == 0 || len(args) < need {
		return nil, false
	}
	head := args[:need]
	rest := args[need:]

	result, ok := reduceBuiltinExact(c, b, head)
	if !ok {
		return nil, false
	}
	if len(rest) > 0 {
		result = adt.AppN(adt.NoSpan, result, rest...)
	}
	return result, true
}

var builtinArity = map[adt.Builtin]int{
	adt.NaturalIsZero:    1,
	adt.NaturalEven:      1,
	adt.NaturalOdd:       1,
	adt.NaturalShow:      1,
	adt.NaturalToInteger: 1,
	adt.NaturalFold:      4,
	adt.NaturalBuild:     1,

	adt.IntegerShow:     1,
	adt.IntegerToDouble: 1,
	adt.IntegerNegate:   1,
	adt.IntegerClamp:    1,

	adt.DoubleShow: 1,

	adt.ListBuild:   2,
	adt.ListFold:    5,
	adt.ListLength:  2,
	adt.ListHead:    2,
	adt.ListLast:    2,
	adt.ListIndexed: 2,
	adt.ListReverse: 2,

	adt.OptionalFold:  5,
	adt.OptionalBuild: 2,

	adt.TextShow: 1,
}

func reduceBuiltinExact(c *ctx.Context, b adt.Builtin, a []adt.Term) (adt.Term, bool) {
	switch b {
	case adt.NaturalIsZero:
		n, ok := a[0].(*adt.NaturalLit)
		if !ok {
			return nil, false
		}
		return adt.NewBoolLit(adt.NoSpan, n.Value.Sign() == 0), true

	case adt.NaturalEven:
		n, ok := a[0].(*adt.NaturalLit)
		if !ok {
			return nil, false
		}
		return adt.NewBoolLit(adt.NoSpan, isEven(&n.Value)), true

	case adt.NaturalOdd:
		n, ok := a[0].(*adt.NaturalLit)
		if !ok {
			return nil, false
		}
		return adt.NewBoolLit(adt.NoSpan, !isEven(&n.Value)), true

	case adt.NaturalShow:
		n, ok := a[0].(*adt.NaturalLit)
		if !ok {
			return nil, false
		}
		return textLitOf(n.Value.String()), true

	case adt.NaturalToInteger:
		n, ok := a[0].(*adt.NaturalLit)
		if !ok {
			return nil, false
		}
		return adt.NewIntegerLit(adt.NoSpan, n.Value), true

	case adt.NaturalFold:
		return reduceNaturalFold(c, a[0], a[1], a[2], a[3])

	case adt.NaturalBuild:
		return reduceNaturalBuild(a[0]), true

	case adt.IntegerShow:
		n, ok := a[0].(*adt.IntegerLit)
		if !ok {
			return nil, false
		}
		s := n.Value.String()
		if n.Value.Sign() >= 0 {
			s = "+" + s
		}
		return textLitOf(s), true

	case adt.IntegerToDouble:
		n, ok := a[0].(*adt.IntegerLit)
		if !ok {
			return nil, false
		}
		f, err := n.Value.Float64()
		if err != nil {
			return nil, false
		}
		return adt.NewDoubleLit(adt.NoSpan, f), true

	case adt.IntegerNegate:
		n, ok := a[0].(*adt.IntegerLit)
		if !ok {
			return nil, false
		}
		var out apd.Decimal
		if _, err := apd.BaseContext.Neg(&out, &n.Value); err != nil {
			return nil, false
		}
		return adt.NewIntegerLit(adt.NoSpan, out), true

	case adt.IntegerClamp:
		n, ok := a[0].(*adt.IntegerLit)
		if !ok {
			return nil, false
		}
		if n.Value.Sign() < 0 {
			return adt.NaturalFromUint64(adt.NoSpan, 0), true
		}
		return adt.NewNaturalLit(adt.NoSpan, n.Value), true

	case adt.DoubleShow:
		d, ok := a[0].(*adt.DoubleLit)
		if !ok {
			return nil, false
		}
		return textLitOf(formatDouble(d)), true

	case adt.TextShow:
		t, ok := a[0].(*adt.TextLit)
		if !ok || !t.IsLiteral() {
			return nil, false
		}
		return textLitOf(quoteDhallText(t.Literal())), true

	case adt.ListBuild:
		return reduceListBuild(a[0], a[1]), true

	case adt.ListFold:
		return reduceListFold(c, a[0], a[1], a[3], a[4])

	case adt.ListLength:
		elems, ok := listElems(a[1])
		if !ok {
			return nil, false
		}
		return adt.NaturalFromUint64(adt.NoSpan, uint64(len(elems))), true

	case adt.ListHead:
		elems, ok := listElems(a[1])
		if !ok {
			return nil, false
		}
		if len(elems) == 0 {
			return noneOf(adt.NoSpan, a[0]), true
		}
		return adt.NewSomeLit(adt.NoSpan, elems[0]), true

	case adt.ListLast:
		elems, ok := listElems(a[1])
		if !ok {
			return nil, false
		}
		if len(elems) == 0 {
			return noneOf(adt.NoSpan, a[0]), true
		}
		return adt.NewSomeLit(adt.NoSpan, elems[len(elems)-1]), true

	case adt.ListReverse:
		elems, ok := listElems(a[1])
		if !ok {
			return nil, false
		}
		if len(elems) == 0 {
			return a[1], true
		}
		out := make([]adt.Term, len(elems))
		for i, e := range elems {
			out[len(elems)-1-i] = e
		}
		return adt.NewNEListLit(adt.NoSpan, out), true

	case adt.ListIndexed:
		return reduceListIndexed(a[0], a[1])

	case adt.OptionalFold:
		return reduceOptionalFold(a[1], a[3], a[4])

	case adt.OptionalBuild:
		return reduceOptionalBuild(a[0], a[1]), true
	}
	return nil, false
}

// isEven reports whether d (always a non-negative integer for a
// NaturalLit) is even, working from its decimal string so that
// naturals too large for Int64 still compare correctly.
func isEven(d *apd.Decimal) bool {
	if n, err := d.Int64(); err == nil {
		if n < 0 {
			n = -n
		}
		return n%2 == 0
	}
	s := d.String()
	last := s[len(s)-1]
	return (last-'0')%2 == 0
}

func textLitOf(s string) *adt.TextLit {
	return adt.NewTextLit(adt.NoSpan, []adt.TextPiece{{Chunk: s}})
}

// listElems returns a concrete list literal's elements, or ok==false if
// the term isn't (yet) a concrete EmptyListLit/NEListLit.
func listElems(t adt.Term) ([]adt.Term, bool) {
	switch x := t.(type) {
	case *adt.EmptyListLit:
		return nil, true
	case *adt.NEListLit:
		return x.Elems, true
	}
	return nil, false
}

func reduceNaturalFold(c *ctx.Context, n, typ, succ, zero adt.Term) (adt.Term, bool) {
	lit, ok := n.(*adt.NaturalLit)
	if !ok {
		return nil, false
	}
	count, err := lit.Value.Int64()
	if err != nil || count < 0 {
		return nil, false
	}
	acc := zero
	for i := int64(0); i < count; i++ {
		acc = adt.NewApp(adt.NoSpan, succ, acc)
	}
	_ = typ
	return acc, true
}

func reduceNaturalBuild(g adt.Term) adt.Term {
	natT := adt.NewBuiltin(adt.NoSpan, adt.NaturalType)
	succ := adt.NewLam(adt.NoSpan, "x", natT,
		adt.NewBinOp(adt.NoSpan, adt.NaturalPlus, adt.NewVar(adt.NoSpan, adt.V{Label: "x", Index: 0}), adt.NaturalFromUint64(adt.NoSpan, 1)))
	zero := adt.NaturalFromUint64(adt.NoSpan, 0)
	return adt.AppN(adt.NoSpan, g, natT, succ, zero)
}

func reduceListBuild(elemType, g adt.Term) adt.Term {
	listT := adt.AppN(adt.NoSpan, adt.NewBuiltin(adt.NoSpan, adt.ListType), elemType)
	a := adt.Label("a")
	as := adt.Label("as")
	cons := adt.NewLam(adt.NoSpan, a, elemType,
		adt.NewLam(adt.NoSpan, as, listT,
			adt.NewBinOp(adt.NoSpan, adt.ListAppend,
				adt.NewNEListLit(adt.NoSpan, []adt.Term{adt.NewVar(adt.NoSpan, adt.V{Label: a, Index: 0})}),
				adt.NewVar(adt.NoSpan, adt.V{Label: as, Index: 0}))))
	nilList := adt.NewEmptyListLit(adt.NoSpan, elemType)
	return adt.AppN(adt.NoSpan, g, listT, cons, nilList)
}

func reduceListFold(c *ctx.Context, elemType, xs, cons, nilv adt.Term) (adt.Term, bool) {
	elems, ok := listElems(xs)
	if !ok {
		return nil, false
	}
	acc := nilv
	for i := len(elems) - 1; i >= 0; i-- {
		acc = adt.AppN(adt.NoSpan, cons, elems[i], acc)
	}
	_ = elemType
	return acc, true
}

func reduceListIndexed(elemType, xs adt.Term) (adt.Term, bool) {
	elems, ok := listElems(xs)
	if !ok {
		return nil, false
	}
	fieldType := adt.NewRecordType(adt.NoSpan, []adt.RecordField{
		{Label: "index", Type: adt.NewBuiltin(adt.NoSpan, adt.NaturalType)},
		{Label: "value", Type: elemType},
	})
	if len(elems) == 0 {
		return adt.NewEmptyListLit(adt.NoSpan, fieldType), true
	}
	out := make([]adt.Term, len(elems))
	for i, e := range elems {
		out[i] = adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
			{Label: "index", Value: adt.NaturalFromUint64(adt.NoSpan, uint64(i))},
			{Label: "value", Value: e},
		})
	}
	return adt.NewNEListLit(adt.NoSpan, out), true
}

func reduceOptionalFold(opt, just, nothing adt.Term) (adt.Term, bool) {
	if some, ok := opt.(*adt.SomeLit); ok {
		return adt.NewApp(adt.NoSpan, just, some.Value), true
	}
	if _, ok := asNone(opt); ok {
		return nothing, true
	}
	return nil, false
}

func reduceOptionalBuild(elemType, g adt.Term) adt.Term {
	optT := adt.AppN(adt.NoSpan, adt.NewBuiltin(adt.NoSpan, adt.OptionalType), elemType)
	x := adt.Label("x")
	just := adt.NewLam(adt.NoSpan, x, elemType, adt.NewSomeLit(adt.NoSpan, adt.NewVar(adt.NoSpan, adt.V{Label: x, Index: 0})))
	nothing := noneOf(adt.NoSpan, elemType)
	return adt.AppN(adt.NoSpan, g, optT, just, nothing)
}
