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

package equiv_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/equiv"
)

func bltn(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func TestAlphaEqRenamedBinders(t *testing.T) {
	// \(x : Natural) -> x  is alpha-equivalent to  \(y : Natural) -> y
	a := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "x"}))
	b := adt.NewLam(adt.NoSpan, "y", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "y"}))
	require.True(t, equiv.AlphaEq(a, b))
}

func TestAlphaEqDistinctBodiesDiffer(t *testing.T) {
	a := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "x"}))
	b := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), bltn(adt.NaturalType))
	require.False(t, equiv.AlphaEq(a, b))
}

func TestAlphaEqFreeVariablesCompareByIdentity(t *testing.T) {
	a := adt.NewVar(adt.NoSpan, adt.V{Label: "free", Index: 0})
	b := adt.NewVar(adt.NoSpan, adt.V{Label: "free", Index: 0})
	c := adt.NewVar(adt.NoSpan, adt.V{Label: "other", Index: 0})
	require.True(t, equiv.AlphaEq(a, b))
	require.False(t, equiv.AlphaEq(a, c))
}

func TestAlphaEqPiShadowing(t *testing.T) {
	a := adt.NewPi(adt.NoSpan, "x", bltn(adt.NaturalType), bltn(adt.BoolType))
	b := adt.NewPi(adt.NoSpan, "z", bltn(adt.NaturalType), bltn(adt.BoolType))
	require.True(t, equiv.AlphaEq(a, b))
}
