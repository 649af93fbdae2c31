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
	"dhall.org/go/dhall/errors"
	"dhall.org/go/dhall/token"
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/debug"
)

// Code names one taxonomy entry of the structured error model (L6,
// spec.md §6), grounded on original_source/dhall/src/typecheck.rs's
// TypeMessage enum — one variant per way a term can fail to typecheck.
type Code int

const (
	Untyped Code = iota
	UnboundVariable
	InvalidInputType
	InvalidOutputType
	NoDependentTypes
	NotAFunction
	TypeMismatch
	AnnotMismatch
	InvalidPredicate
	IfBranchMismatch
	IfBranchMustBeTerm
	FieldCollision
	NotARecord
	MissingField
	InvalidFieldType
	NotAUnion
	MissingMergeHandler
	UnusedMergeHandler
	MergeHandlerNotFunction
	MergeHandlerTypeMismatch
	MergeAlternativeTypeMismatch
	MergeRequiresRecordOfHandlers
	MergeAnnotMismatch
	CantAndNonRecord
	CantAccess
	InvalidListElement
	MismatchedListElements
	InvalidListType
	InvalidOptionalType
	InvalidSome
	NotAnEquivalence
	AssertionFailed
	InvalidToMapRecordKind
	HeterogenousRecordToMap
	MissingToMapAnnotation
	InvalidToMapType
	ProjectionMissingLabel
	ProjectionByExprNotRecordType
	CompletionMustBeRecordType
	WithMustBeRecord
	DuplicateAlternative
	MustCombineRecord
	MustCombineRecordType
	CombineTypeMismatch
)

var codeFormats = map[Code]string{
	Untyped:                       "%s has no type, it is the top universe",
	UnboundVariable:               "unbound variable %s",
	InvalidInputType:              "function input type %s must be a term of type Type, Kind, or Sort",
	InvalidOutputType:             "function output type %s must be a term of type Type, Kind, or Sort",
	NoDependentTypes:              "function types from %s to %s are not allowed (no dependent types)",
	NotAFunction:                  "function application argument to non-function of type %s",
	TypeMismatch:                  "expected argument of type %s, found %s",
	AnnotMismatch:                 "annotation %s does not match inferred type %s",
	InvalidPredicate:              "predicate of an if expression must be Bool, found %s",
	IfBranchMismatch:              "the two branches of an if expression must have the same type: %s vs %s",
	IfBranchMustBeTerm:            "the branches of an if expression must have type Type, found %s",
	FieldCollision:                "duplicate field %s in record merge",
	NotARecord:                    "expected a record, found %s",
	MissingField:                  "no field named %s",
	InvalidFieldType:              "the type of field %s must itself have type Type, Kind, or Sort",
	NotAUnion:                     "expected a union, found %s",
	MissingMergeHandler:           "no handler for alternative %s",
	UnusedMergeHandler:            "handler %s does not match any alternative",
	MergeHandlerNotFunction:       "handler %s for alternative with a payload must be a function",
	MergeHandlerTypeMismatch:      "handlers must all return the same type: %s vs %s",
	MergeAlternativeTypeMismatch:  "handler %s's argument type does not match alternative %s's payload type",
	MergeRequiresRecordOfHandlers: "merge requires a record of handlers, found %s",
	MergeAnnotMismatch:            "merge result type %s does not match annotation %s",
	CantAndNonRecord:              "the ∧ operator requires two record literals",
	CantAccess:                    "cannot access field %s of %s",
	InvalidListElement:            "list element has type %s, expected %s",
	MismatchedListElements:        "not all elements of a list literal have the same type",
	InvalidListType:               "the element type of a List must have type Type, found %s",
	InvalidOptionalType:           "the element type of an Optional must have type Type, found %s",
	InvalidSome:                   "the argument to Some must have type Type, found %s",
	NotAnEquivalence:              "assert requires an argument whose type is an equivalence a ≡ b",
	AssertionFailed:               "assertion failed: %s is not equivalent to %s",
	InvalidToMapRecordKind:        "toMap requires a record, found %s",
	HeterogenousRecordToMap:       "every field of a record passed to toMap must have the same type",
	MissingToMapAnnotation:        "toMap applied to an empty record requires a type annotation",
	InvalidToMapType:              "toMap's annotation must be a List of {mapKey:Text,mapValue:_} records",
	ProjectionMissingLabel:        "no field named %s to project",
	ProjectionByExprNotRecordType: "projection-by-expression requires a record type, found %s",
	CompletionMustBeRecordType:    "the left side of :: must be a record with a Type and default field",
	WithMustBeRecord:              "with requires a record, found %s",
	DuplicateAlternative:          "duplicate alternative %s",
	MustCombineRecord:             "the ⫽ operator requires two records of the same kind",
	MustCombineRecordType:         "the ⩓ operator requires two record types",
	CombineTypeMismatch:           "cannot merge field %s: %s is not compatible with %s",
}

var codeNames = map[Code]string{
	Untyped:                       "Untyped",
	UnboundVariable:               "UnboundVariable",
	InvalidInputType:              "InvalidInputType",
	InvalidOutputType:             "InvalidOutputType",
	NoDependentTypes:              "NoDependentTypes",
	NotAFunction:                  "NotAFunction",
	TypeMismatch:                  "TypeMismatch",
	AnnotMismatch:                 "AnnotMismatch",
	InvalidPredicate:              "InvalidPredicate",
	IfBranchMismatch:              "IfBranchMismatch",
	IfBranchMustBeTerm:            "IfBranchMustBeTerm",
	FieldCollision:                "FieldCollision",
	NotARecord:                    "NotARecord",
	MissingField:                  "MissingField",
	InvalidFieldType:              "InvalidFieldType",
	NotAUnion:                     "NotAUnion",
	MissingMergeHandler:           "MissingMergeHandler",
	UnusedMergeHandler:            "UnusedMergeHandler",
	MergeHandlerNotFunction:       "MergeHandlerNotFunction",
	MergeHandlerTypeMismatch:      "MergeHandlerTypeMismatch",
	MergeAlternativeTypeMismatch:  "MergeAlternativeTypeMismatch",
	MergeRequiresRecordOfHandlers: "MergeRequiresRecordOfHandlers",
	MergeAnnotMismatch:            "MergeAnnotMismatch",
	CantAndNonRecord:              "CantAndNonRecord",
	CantAccess:                    "CantAccess",
	InvalidListElement:            "InvalidListElement",
	MismatchedListElements:        "MismatchedListElements",
	InvalidListType:               "InvalidListType",
	InvalidOptionalType:           "InvalidOptionalType",
	InvalidSome:                   "InvalidSome",
	NotAnEquivalence:              "NotAnEquivalence",
	AssertionFailed:               "AssertionFailed",
	InvalidToMapRecordKind:        "InvalidToMapRecordKind",
	HeterogenousRecordToMap:       "HeterogenousRecordToMap",
	MissingToMapAnnotation:        "MissingToMapAnnotation",
	InvalidToMapType:              "InvalidToMapType",
	ProjectionMissingLabel:        "ProjectionMissingLabel",
	ProjectionByExprNotRecordType: "ProjectionByExprNotRecordType",
	CompletionMustBeRecordType:    "CompletionMustBeRecordType",
	WithMustBeRecord:              "WithMustBeRecord",
	DuplicateAlternative:          "DuplicateAlternative",
	MustCombineRecord:             "MustCombineRecord",
	MustCombineRecordType:         "MustCombineRecordType",
	CombineTypeMismatch:           "CombineTypeMismatch",
}

// String returns the Code's taxonomy name (e.g. "TypeMismatch"), used
// by the CLI's structured report and by tests that assert on which
// error variant was raised without string-matching the message.
func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "Unknown"
}

// TypeError is the structured error the typechecker returns: a Code
// plus the formatted arguments it was raised with, and the offending
// term's provenance.
type TypeError struct {
	Code     Code
	Span     adt.Span
	errors.Message
	path []string
}

// newErr builds a TypeError. Any adt.Term argument is rendered through
// debug.Print up front, since no concrete adt.Term implements
// fmt.Stringer and errors.Message.Error defers only the final
// fmt.Sprintf call, not argument preparation.
func newErr(code Code, span adt.Span, args ...interface{}) *TypeError {
	format, ok := codeFormats[code]
	if !ok {
		format = "type error"
	}
	rendered := make([]interface{}, len(args))
	for i, a := range args {
		if t, ok := a.(adt.Term); ok {
			rendered[i] = debug.Print(t)
		} else {
			rendered[i] = a
		}
	}
	return &TypeError{Code: code, Span: span, Message: errors.NewMessage(format, rendered)}
}

func (e *TypeError) Position() token.Pos        { return e.Span.Pos() }
func (e *TypeError) InputPositions() []token.Pos { return []token.Pos{e.Span.Pos()} }
func (e *TypeError) Path() []string              { return e.path }

// WithPath returns a copy of e with label prepended to its Path, used
// by callers that descend into a subterm (e.g. a record field) before
// propagating a child error.
func (e *TypeError) WithPath(label string) *TypeError {
	cp := *e
	cp.path = append([]string{label}, e.path...)
	return &cp
}

var _ errors.Error = (*TypeError)(nil)
