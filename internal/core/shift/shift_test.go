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

package shift_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/equiv"
	"dhall.org/go/internal/core/shift"
)

func bltn(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func varOf(label adt.Label, idx int) *adt.Var {
	return adt.NewVar(adt.NoSpan, adt.V{Label: label, Index: idx})
}

func TestShiftFreeVariable(t *testing.T) {
	// shift +1 x@0 in "x" (a free occurrence, since the cutoff is 0) ~> x@1
	got := shift.Shift(1, adt.V{Label: "x", Index: 0}, varOf("x", 0))
	require.True(t, equiv.AlphaEq(varOf("x", 1), got))
}

func TestShiftLeavesOtherLabelsAlone(t *testing.T) {
	got := shift.Shift(1, adt.V{Label: "x", Index: 0}, varOf("y", 0))
	require.True(t, equiv.AlphaEq(varOf("y", 0), got))
}

func TestShiftCrossesBinderOfSameLabel(t *testing.T) {
	// shift +1 x@0 in \(x : Natural) -> x@0  ~>  \(x : Natural) -> x@0
	// (the inner x@0 refers to the lambda's own binder, which the
	// cutoff bump protects from the outer shift)
	body := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), varOf("x", 0))
	got := shift.Shift(1, adt.V{Label: "x", Index: 0}, body)
	require.True(t, equiv.AlphaEq(body, got))
}

func TestShiftCrossesBinderReachesOuterFree(t *testing.T) {
	// shift +1 x@0 in \(y : Natural) -> x@0 ~> \(y : Natural) -> x@1
	body := adt.NewLam(adt.NoSpan, "y", bltn(adt.NaturalType), varOf("x", 0))
	want := adt.NewLam(adt.NoSpan, "y", bltn(adt.NaturalType), varOf("x", 1))
	got := shift.Shift(1, adt.V{Label: "x", Index: 0}, body)
	require.True(t, equiv.AlphaEq(want, got))
}

func TestSubstReplacesMatchingIndex(t *testing.T) {
	// (\(x : Natural) -> x@0)'s body, substituting x@0 with 5
	got := shift.SubstVar0("x", adt.NaturalFromUint64(adt.NoSpan, 5), varOf("x", 0))
	require.True(t, equiv.AlphaEq(adt.NaturalFromUint64(adt.NoSpan, 5), got))
}

func TestSubstLeavesOuterIndexAlone(t *testing.T) {
	// substituting x@0 must not touch x@1
	got := shift.Subst(adt.V{Label: "x", Index: 0}, adt.NaturalFromUint64(adt.NoSpan, 5), varOf("x", 1))
	require.True(t, equiv.AlphaEq(varOf("x", 1), got))
}

func TestSubstAvoidsCaptureAcrossBinder(t *testing.T) {
	// substituting free x@0 with the free variable y@0 inside
	// \(y : Natural) -> x@0 must shift the replacement so it still
	// refers to the outer y, giving \(y : Natural) -> y@1, not the
	// captured \(y : Natural) -> y@0.
	replacement := varOf("y", 0)
	body := adt.NewLam(adt.NoSpan, "y", bltn(adt.NaturalType), varOf("x", 0))
	got := shift.SubstVar0("x", replacement, body)

	want := adt.NewLam(adt.NoSpan, "y", bltn(adt.NaturalType), varOf("y", 1))
	require.True(t, equiv.AlphaEq(want, got))
}

func TestSubstUnderOwnBinderIsNoop(t *testing.T) {
	// substituting x@0 inside \(x : Natural) -> x@0 must not touch the
	// lambda's own bound occurrence (it refers to index 0 under one
	// more binder, i.e. effectively x@1 from the substitution's view).
	body := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), varOf("x", 0))
	got := shift.SubstVar0("x", adt.NaturalFromUint64(adt.NoSpan, 5), body)
	require.True(t, equiv.AlphaEq(body, got))
}
