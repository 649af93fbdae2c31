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

// EmptyListLit is `[] : List elemType`; Dhall requires the element
// type annotation on an empty list since there is nothing to infer it
// from.
type EmptyListLit struct {
	base
	ElemType Term
}

func NewEmptyListLit(span Span, elemType Term) *EmptyListLit {
	return &EmptyListLit{base{span}, elemType}
}

// NEListLit is a non-empty list literal `[x, y, z]`.
type NEListLit struct {
	base
	Elems []Term
}

func NewNEListLit(span Span, elems []Term) *NEListLit { return &NEListLit{base{span}, elems} }

// SomeLit is `Some x`, the modern Optional introducer.
type SomeLit struct {
	base
	Value Term
}

func NewSomeLit(span Span, v Term) *SomeLit { return &SomeLit{base{span}, v} }

// OldOptionalLit is the legacy `[] : Optional T` / `[x] : Optional T`
// encoding kept alive for CBOR decode compatibility (original_source
// keeps this constructor so that terms decoded from older binaries
// still typecheck); it is desugared to SomeLit/an annotated None by
// the typechecker, never by the parser (out of scope here).
type OldOptionalLit struct {
	base
	Value    Term // nil for the "absent" form
	ElemType Term
}

func NewOldOptionalLit(span Span, value, elemType Term) *OldOptionalLit {
	return &OldOptionalLit{base{span}, value, elemType}
}
