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

package dhall_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dhall.org/go/dhall"
	"dhall.org/go/internal/core/adt"
)

func bltn(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func TestTypecheckIdentity(t *testing.T) {
	id := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "x"}))
	typed, err := dhall.Typecheck(id)
	require.NoError(t, err)

	want := adt.NewPi(adt.NoSpan, "x", bltn(adt.NaturalType), bltn(adt.NaturalType))
	require.True(t, dhall.AlphaEquivalent(want, typed.Type()))
}

func TestTypecheckUnboundVariableFails(t *testing.T) {
	_, err := dhall.Typecheck(adt.NewVar(adt.NoSpan, adt.V{Label: "nope"}))
	require.Error(t, err)

	var typeErr *dhall.Error
	require.ErrorAs(t, err, &typeErr)
}

func TestTypecheckWithMatchingAnnotation(t *testing.T) {
	five := adt.NaturalFromUint64(adt.NoSpan, 5)
	typed, err := dhall.TypecheckWith(five, bltn(adt.NaturalType))
	require.NoError(t, err)
	require.True(t, dhall.AlphaEquivalent(bltn(adt.NaturalType), typed.Type()))
}

func TestTypecheckWithMismatchedAnnotationFails(t *testing.T) {
	five := adt.NaturalFromUint64(adt.NoSpan, 5)
	_, err := dhall.TypecheckWith(five, bltn(adt.BoolType))
	require.Error(t, err)
}

func TestTypedNormalize(t *testing.T) {
	// (\(x : Natural) -> x) 5  typechecks at Natural and normalizes to 5.
	id := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "x"}))
	app := adt.NewApp(adt.NoSpan, id, adt.NaturalFromUint64(adt.NoSpan, 5))

	typed, err := dhall.Typecheck(app)
	require.NoError(t, err)
	require.True(t, dhall.AlphaEquivalent(bltn(adt.NaturalType), typed.Type()))

	got := typed.Normalize()
	require.True(t, dhall.AlphaEquivalent(adt.NaturalFromUint64(adt.NoSpan, 5), got))
}

func TestAlphaEquivalentIgnoresBoundNames(t *testing.T) {
	a := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "x"}))
	b := adt.NewLam(adt.NoSpan, "y", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "y"}))
	require.True(t, dhall.AlphaEquivalent(a, b))
}
