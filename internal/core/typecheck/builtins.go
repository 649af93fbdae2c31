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

import "dhall.org/go/internal/core/adt"

// typeOfBuiltin returns the fixed Pi-type schema for b, literally
// spelled out as adt.Term trees — there is no parser in this module,
// so unlike original_source/dhall/src/typecheck.rs's type_of_builtin
// (which parses a string constant once at startup) every schema here
// is built directly from adt constructors.
func typeOfBuiltin(b adt.Builtin) adt.Term {
	typ := adt.NewConst(adt.NoSpan, adt.Type)
	boolT := adt.NewBuiltin(adt.NoSpan, adt.BoolType)
	natT := adt.NewBuiltin(adt.NoSpan, adt.NaturalType)
	intT := adt.NewBuiltin(adt.NoSpan, adt.IntegerType)
	dblT := adt.NewBuiltin(adt.NoSpan, adt.DoubleType)
	textT := adt.NewBuiltin(adt.NoSpan, adt.TextType)
	listOf := func(a adt.Term) adt.Term { return adt.AppN(adt.NoSpan, adt.NewBuiltin(adt.NoSpan, adt.ListType), a) }
	optOf := func(a adt.Term) adt.Term {
		return adt.AppN(adt.NoSpan, adt.NewBuiltin(adt.NoSpan, adt.OptionalType), a)
	}
	pi := func(label adt.Label, domain, codomain adt.Term) adt.Term {
		return adt.NewPi(adt.NoSpan, label, domain, codomain)
	}
	fn := func(domain, codomain adt.Term) adt.Term { return pi("_", domain, codomain) }
	v := func(label adt.Label) adt.Term { return adt.NewVar(adt.NoSpan, adt.V{Label: label, Index: 0}) }

	switch b {
	case adt.BoolType, adt.NaturalType, adt.IntegerType, adt.DoubleType, adt.TextType:
		return typ
	case adt.ListType, adt.OptionalType:
		return fn(typ, typ)

	case adt.OptionalNone:
		return pi("A", typ, optOf(v("A")))

	case adt.NaturalIsZero, adt.NaturalEven, adt.NaturalOdd:
		return fn(natT, boolT)
	case adt.NaturalShow:
		return fn(natT, textT)
	case adt.NaturalToInteger:
		return fn(natT, intT)
	case adt.NaturalFold:
		return fn(natT,
			pi("natural", typ,
				fn(fn(v("natural"), v("natural")),
					fn(v("natural"), v("natural")))))
	case adt.NaturalBuild:
		return fn(
			pi("natural", typ,
				fn(fn(v("natural"), v("natural")),
					fn(v("natural"), v("natural")))),
			natT)

	case adt.IntegerShow:
		return fn(intT, textT)
	case adt.IntegerToDouble:
		return fn(intT, dblT)
	case adt.IntegerNegate:
		return fn(intT, intT)
	case adt.IntegerClamp:
		return fn(intT, natT)

	case adt.DoubleShow:
		return fn(dblT, textT)

	case adt.TextShow:
		return fn(textT, textT)

	case adt.ListBuild:
		return pi("a", typ,
			fn(
				pi("list", typ,
					fn(fn(v("a"), fn(v("list"), v("list"))),
						fn(v("list"), v("list")))),
				listOf(v("a"))))
	case adt.ListFold:
		return pi("a", typ,
			fn(listOf(v("a")),
				pi("list", typ,
					fn(fn(v("a"), fn(v("list"), v("list"))),
						fn(v("list"), v("list"))))))
	case adt.ListLength:
		return pi("a", typ, fn(listOf(v("a")), natT))
	case adt.ListHead, adt.ListLast:
		return pi("a", typ, fn(listOf(v("a")), optOf(v("a"))))
	case adt.ListIndexed:
		indexedElem := adt.NewRecordType(adt.NoSpan, []adt.RecordField{
			{Label: "index", Type: natT},
			{Label: "value", Type: v("a")},
		})
		return pi("a", typ, fn(listOf(v("a")), listOf(indexedElem)))
	case adt.ListReverse:
		return pi("a", typ, fn(listOf(v("a")), listOf(v("a"))))

	case adt.OptionalFold:
		return pi("a", typ,
			fn(optOf(v("a")),
				pi("optional", typ,
					fn(fn(v("a"), v("optional")),
						fn(v("optional"), v("optional"))))))
	case adt.OptionalBuild:
		return pi("a", typ,
			fn(
				pi("optional", typ,
					fn(fn(v("a"), v("optional")),
						fn(v("optional"), v("optional")))),
				optOf(v("a"))))
	}
	panic("typecheck: no schema for builtin " + b.String())
}

// axiom implements the three Universe typing axioms: Type : Kind,
// Kind : Sort, and Sort is untyped (the Untyped error).
func axiom(k adt.Constant) (adt.Constant, bool) {
	switch k {
	case adt.Type:
		return adt.Kind, true
	case adt.Kind:
		return adt.Sort, true
	default:
		return 0, false
	}
}

// rule implements function_formation (spec.md §4.5): the universe a
// Pi type itself inhabits, given its domain's and codomain's
// universes. Term-level codomains (kB = Type) are always permitted
// regardless of the domain — Dhall allows ordinary functions into
// Type at any universe — but a Kind codomain requires a Kind or Sort
// domain, and a Sort codomain requires a Sort domain: (Type, Kind) has
// no rule and is rejected as NoDependentTypes, since the language
// admits no dependent types at that level.
func rule(domain, codomain adt.Constant) (adt.Constant, bool) {
	switch {
	case codomain == adt.Type:
		return adt.Type, true
	case domain == adt.Kind && codomain == adt.Kind:
		return adt.Kind, true
	case domain == adt.Sort && (codomain == adt.Kind || codomain == adt.Sort):
		return adt.Sort, true
	default:
		return 0, false
	}
}
