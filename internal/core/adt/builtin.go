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

package adt

// Builtin enumerates the primitive names whose types are hard-wired
// (internal/core/typecheck/builtins.go carries the actual schemas;
// this file only fixes the enumeration and its surface names, mirrored
// from original_source/dhall/src/typecheck.rs's type_of_builtin match).
type Builtin int8

const (
	BuiltinInvalid Builtin = iota

	BoolType
	NaturalType
	IntegerType
	DoubleType
	TextType
	ListType
	OptionalType

	NaturalFold
	NaturalBuild
	NaturalIsZero
	NaturalEven
	NaturalOdd
	NaturalShow
	NaturalToInteger

	IntegerShow
	IntegerToDouble
	IntegerNegate
	IntegerClamp

	DoubleShow

	ListBuild
	ListFold
	ListLength
	ListHead
	ListLast
	ListIndexed
	ListReverse

	OptionalFold
	OptionalBuild
	OptionalNone

	TextShow
)

var builtinNames = map[Builtin]string{
	BoolType:     "Bool",
	NaturalType:  "Natural",
	IntegerType:  "Integer",
	DoubleType:   "Double",
	TextType:     "Text",
	ListType:     "List",
	OptionalType: "Optional",

	NaturalFold:      "Natural/fold",
	NaturalBuild:     "Natural/build",
	NaturalIsZero:    "Natural/isZero",
	NaturalEven:      "Natural/even",
	NaturalOdd:       "Natural/odd",
	NaturalShow:      "Natural/show",
	NaturalToInteger: "Natural/toInteger",

	IntegerShow:     "Integer/show",
	IntegerToDouble: "Integer/toDouble",
	IntegerNegate:   "Integer/negate",
	IntegerClamp:    "Integer/clamp",

	DoubleShow: "Double/show",

	ListBuild:   "List/build",
	ListFold:    "List/fold",
	ListLength:  "List/length",
	ListHead:    "List/head",
	ListLast:    "List/last",
	ListIndexed: "List/indexed",
	ListReverse: "List/reverse",

	OptionalFold:  "Optional/fold",
	OptionalBuild: "Optional/build",
	OptionalNone:  "None",

	TextShow: "Text/show",
}

var builtinsByName map[string]Builtin

func init() {
	builtinsByName = make(map[string]Builtin, len(builtinNames))
	for b, name := range builtinNames {
		builtinsByName[name] = b
	}
}

func (b Builtin) String() string {
	if s, ok := builtinNames[b]; ok {
		return s
	}
	return "<invalid builtin>"
}

// LookupBuiltin returns the Builtin named by name, or BuiltinInvalid if
// name does not name one.
func LookupBuiltin(name string) Builtin {
	return builtinsByName[name]
}

// BuiltinT wraps a Builtin as a Term.
type BuiltinT struct {
	base
	B Builtin
}

func NewBuiltin(span Span, b Builtin) *BuiltinT { return &BuiltinT{base{span}, b} }
