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

package norm_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/debug"
	"dhall.org/go/internal/core/equiv"
	"dhall.org/go/internal/core/norm"
)

func nat(n uint64) *adt.NaturalLit { return adt.NaturalFromUint64(adt.NoSpan, n) }

func bltn(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func v(label adt.Label) *adt.Var { return adt.NewVar(adt.NoSpan, adt.V{Label: label, Index: 0}) }

func TestNormalizeBetaReduction(t *testing.T) {
	// (\(x : Natural) -> x) 5  ~>  5
	id := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), v("x"))
	app := adt.NewApp(adt.NoSpan, id, nat(5))

	got := norm.Normalize(ctx.Empty(), app)
	require.True(t, equiv.AlphaEq(nat(5), got), "got %s", debug.Print(got))
}

func TestNormalizeNaturalArith(t *testing.T) {
	expr := adt.NewBinOp(adt.NoSpan, adt.NaturalPlus, nat(2), nat(3))
	got := norm.Normalize(ctx.Empty(), expr)
	require.True(t, equiv.AlphaEq(nat(5), got), "got %s", debug.Print(got))
}

func TestNormalizeNaturalIsZero(t *testing.T) {
	expr := adt.AppN(adt.NoSpan, bltn(adt.NaturalIsZero), nat(0))
	got := norm.Normalize(ctx.Empty(), expr)
	require.True(t, equiv.AlphaEq(adt.NewBoolLit(adt.NoSpan, true), got), "got %s", debug.Print(got))
}

func TestNormalizeBoolIf(t *testing.T) {
	expr := adt.NewBoolIf(adt.NoSpan, adt.NewBoolLit(adt.NoSpan, false), nat(1), nat(2))
	got := norm.Normalize(ctx.Empty(), expr)
	require.True(t, equiv.AlphaEq(nat(2), got), "got %s", debug.Print(got))
}

func TestNormalizeRecordField(t *testing.T) {
	rec := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "a", Value: nat(1)},
		{Label: "b", Value: nat(2)},
	})
	expr := adt.NewField(adt.NoSpan, rec, "b")
	got := norm.Normalize(ctx.Empty(), expr)
	require.True(t, equiv.AlphaEq(nat(2), got), "got %s", debug.Print(got))
}

func TestNormalizeRecordMerge(t *testing.T) {
	left := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{{Label: "a", Value: nat(1)}})
	right := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{{Label: "b", Value: nat(2)}})
	expr := adt.NewBinOp(adt.NoSpan, adt.RecursiveRecordMerge, left, right)

	got := norm.Normalize(ctx.Empty(), expr)
	want := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "a", Value: nat(1)},
		{Label: "b", Value: nat(2)},
	})
	require.True(t, equiv.AlphaEq(want, got), "got %s", debug.Print(got))
}

func TestNormalizeListLength(t *testing.T) {
	// List/length Natural [1, 2, 3] ~> 3
	list := adt.NewNEListLit(adt.NoSpan, []adt.Term{nat(1), nat(2), nat(3)})
	expr := adt.AppN(adt.NoSpan, bltn(adt.ListLength), bltn(adt.NaturalType), list)
	got := norm.Normalize(ctx.Empty(), expr)
	require.True(t, equiv.AlphaEq(nat(3), got), "got %s", debug.Print(got))
}
