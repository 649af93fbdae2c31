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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"

	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/equiv"
)

func nat(n uint64) *adt.NaturalLit { return adt.NaturalFromUint64(adt.NoSpan, n) }

func bltn(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func v(label adt.Label) *adt.Var { return adt.NewVar(adt.NoSpan, adt.V{Label: label}) }

// scenario is one named (term, expected outcome) pair, in the spirit
// of the teacher's txtar-driven golden fixtures but expressed directly
// as Go literals since this module has no parser to load .dhall/.txtar
// source from.
type scenario struct {
	name     string
	term     adt.Term
	wantType adt.Term // nil if wantCode is set
	wantCode Code
	isErr    bool
}

func TestScenarios(t *testing.T) {
	recordLit := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "a", Value: nat(1)},
		{Label: "b", Value: adt.NewBoolLit(adt.NoSpan, true)},
	})
	recordType := adt.NewRecordType(adt.NoSpan, []adt.RecordField{
		{Label: "a", Type: bltn(adt.NaturalType)},
		{Label: "b", Type: bltn(adt.BoolType)},
	})

	unionType := adt.NewUnionType(adt.NoSpan, []adt.UnionAlt{
		{Label: "Left", Type: bltn(adt.NaturalType)},
		{Label: "Right", Type: nil},
	})

	scenarios := []scenario{
		{
			name:     "identity lambda",
			term:     adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), v("x")),
			wantType: adt.NewPi(adt.NoSpan, "x", bltn(adt.NaturalType), bltn(adt.NaturalType)),
		},
		{
			name:     "pi is a Type",
			term:     adt.NewPi(adt.NoSpan, "x", bltn(adt.NaturalType), bltn(adt.BoolType)),
			wantType: adt.NewConst(adt.NoSpan, adt.Type),
		},
		{
			name:     "record literal",
			term:     recordLit,
			wantType: recordType,
		},
		{
			name:     "record type is a Type",
			term:     recordType,
			wantType: adt.NewConst(adt.NoSpan, adt.Type),
		},
		{
			name:     "union type is a Type",
			term:     unionType,
			wantType: adt.NewConst(adt.NoSpan, adt.Type),
		},
		{
			name:     "field selection",
			term:     adt.NewField(adt.NoSpan, recordLit, "a"),
			wantType: bltn(adt.NaturalType),
		},
		{
			name:     "application",
			term:     adt.NewApp(adt.NoSpan, adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), v("x")), nat(1)),
			wantType: bltn(adt.NaturalType),
		},
		{
			name:     "natural plus",
			term:     adt.NewBinOp(adt.NoSpan, adt.NaturalPlus, nat(1), nat(2)),
			wantType: bltn(adt.NaturalType),
		},
		{
			name:     "unbound variable",
			term:     v("nope"),
			isErr:    true,
			wantCode: UnboundVariable,
		},
		{
			name:     "apply to non-function",
			term:     adt.NewApp(adt.NoSpan, nat(1), nat(2)),
			isErr:    true,
			wantCode: NotAFunction,
		},
		{
			name: "argument type mismatch",
			term: adt.NewApp(adt.NoSpan,
				adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), v("x")),
				adt.NewBoolLit(adt.NoSpan, true)),
			isErr:    true,
			wantCode: TypeMismatch,
		},
		{
			name:     "annotation mismatch",
			term:     adt.NewAnnot(adt.NoSpan, nat(1), bltn(adt.BoolType)),
			isErr:    true,
			wantCode: AnnotMismatch,
		},
		{
			name: "duplicate record field",
			term: adt.NewRecordType(adt.NoSpan, []adt.RecordField{
				{Label: "a", Type: bltn(adt.NaturalType)},
				{Label: "a", Type: bltn(adt.BoolType)},
			}),
			isErr:    true,
			wantCode: FieldCollision,
		},
		{
			name:     "missing field",
			term:     adt.NewField(adt.NoSpan, recordLit, "missing"),
			isErr:    true,
			wantCode: MissingField,
		},
		{
			name:     "field on non-record",
			term:     adt.NewField(adt.NoSpan, nat(1), "a"),
			isErr:    true,
			wantCode: NotARecord,
		},
		{
			name:     "forall over Kind is a Sort",
			term:     adt.NewPi(adt.NoSpan, "x", adt.NewConst(adt.NoSpan, adt.Kind), v("x")),
			wantType: adt.NewConst(adt.NoSpan, adt.Sort),
		},
		{
			name:     "forall over Sort has no legitimate input type",
			term:     adt.NewPi(adt.NoSpan, "x", adt.NewConst(adt.NoSpan, adt.Sort), v("x")),
			isErr:    true,
			wantCode: InvalidInputType,
		},
		{
			name:     "forall from Bool to Type has no dependent types",
			term:     adt.NewPi(adt.NoSpan, "x", bltn(adt.BoolType), adt.NewConst(adt.NoSpan, adt.Type)),
			isErr:    true,
			wantCode: NoDependentTypes,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			got, err := Infer(ctx.Empty(), s.term)
			if s.isErr {
				require.NotNil(t, err, "expected a type error")
				require.Equal(t, s.wantCode, err.Code)
				return
			}
			require.Nil(t, err, "unexpected type error: %v", err)
			if !equiv.AlphaEq(s.wantType, got) {
				t.Fatalf("type mismatch:\n%s", pretty.Compare(s.wantType, got))
			}
		})
	}
}

func TestMergeHandlers(t *testing.T) {
	unionType := adt.NewUnionType(adt.NoSpan, []adt.UnionAlt{
		{Label: "Left", Type: bltn(adt.NaturalType)},
		{Label: "Right", Type: nil},
	})
	scrutinee := adt.NewUnionLit(adt.NoSpan, "Left", nat(1), []adt.UnionAlt{{Label: "Right", Type: nil}})
	_ = unionType

	merge := adt.NewMerge(adt.NoSpan, []adt.MergeHandler{
		{Label: "Left", Handler: adt.NewLam(adt.NoSpan, "n", bltn(adt.NaturalType), adt.NewBoolLit(adt.NoSpan, true))},
		{Label: "Right", Handler: adt.NewBoolLit(adt.NoSpan, false)},
	}, scrutinee, nil)

	got, err := Infer(ctx.Empty(), merge)
	require.Nil(t, err, "unexpected type error: %v", err)
	require.True(t, equiv.AlphaEq(bltn(adt.BoolType), got))
}

func TestMergeMissingHandler(t *testing.T) {
	scrutinee := adt.NewUnionLit(adt.NoSpan, "Left", nat(1), []adt.UnionAlt{{Label: "Right", Type: nil}})
	merge := adt.NewMerge(adt.NoSpan, []adt.MergeHandler{
		{Label: "Left", Handler: adt.NewLam(adt.NoSpan, "n", bltn(adt.NaturalType), bltn(adt.BoolType))},
	}, scrutinee, nil)

	_, err := Infer(ctx.Empty(), merge)
	require.NotNil(t, err)
	require.Equal(t, MissingMergeHandler, err.Code)
}

// TestRecordTypeInferenceFields uses go-cmp, ignoring the unexported
// span embedded in every node, to diff the inferred record type's
// field list structurally rather than only by alpha-equivalence.
func TestRecordTypeInferenceFields(t *testing.T) {
	rec := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "a", Value: nat(1)},
		{Label: "b", Value: adt.NewBoolLit(adt.NoSpan, true)},
	})
	got, err := Infer(ctx.Empty(), rec)
	require.Nil(t, err, "unexpected type error: %v", err)

	rt, ok := got.(*adt.RecordType)
	require.True(t, ok, "expected *adt.RecordType, got %T", got)

	want := []adt.RecordField{
		{Label: "a", Type: bltn(adt.NaturalType)},
		{Label: "b", Type: bltn(adt.BoolType)},
	}
	opts := cmpopts.IgnoreUnexported(adt.BuiltinT{})
	if diff := cmp.Diff(want, rt.Fields, opts); diff != "" {
		t.Fatalf("record field mismatch (-want +got):\n%s", diff)
	}
}

func TestToMap(t *testing.T) {
	rec := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "a", Value: nat(1)},
		{Label: "b", Value: nat(2)},
	})
	toMap := adt.NewToMap(adt.NoSpan, rec, nil)
	got, err := Infer(ctx.Empty(), toMap)
	require.Nil(t, err, "unexpected type error: %v", err)

	entry := adt.NewRecordType(adt.NoSpan, []adt.RecordField{
		{Label: "mapKey", Type: bltn(adt.TextType)},
		{Label: "mapValue", Type: bltn(adt.NaturalType)},
	})
	want := adt.AppN(adt.NoSpan, bltn(adt.ListType), entry)
	require.True(t, equiv.AlphaEq(want, got), "got %#v", got)
}
