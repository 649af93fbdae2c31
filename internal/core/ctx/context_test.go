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

package ctx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/equiv"
)

func bltn(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func TestEmptyContextLookupFails(t *testing.T) {
	c := ctx.Empty()
	require.Equal(t, 0, c.Len())
	_, ok := c.Lookup(adt.V{Label: "x", Index: 0})
	require.False(t, ok)
}

func TestInsertTypeThenLookup(t *testing.T) {
	c := ctx.Empty().InsertType("x", bltn(adt.NaturalType))
	require.Equal(t, 1, c.Len())

	e, ok := c.Lookup(adt.V{Label: "x", Index: 0})
	require.True(t, ok)
	require.Equal(t, ctx.TypeBinding, e.Kind)
	require.True(t, equiv.AlphaEq(bltn(adt.NaturalType), e.Type))
}

func TestShadowingFindsInnermostFirst(t *testing.T) {
	c := ctx.Empty().
		InsertType("x", bltn(adt.NaturalType)).
		InsertType("x", bltn(adt.BoolType))

	inner, ok := c.Lookup(adt.V{Label: "x", Index: 0})
	require.True(t, ok)
	require.True(t, equiv.AlphaEq(bltn(adt.BoolType), inner.Type))

	outer, ok := c.Lookup(adt.V{Label: "x", Index: 1})
	require.True(t, ok)
	require.True(t, equiv.AlphaEq(bltn(adt.NaturalType), outer.Type))
}

func TestDistinctLabelsDoNotShareIndices(t *testing.T) {
	c := ctx.Empty().
		InsertType("x", bltn(adt.NaturalType)).
		InsertType("y", bltn(adt.BoolType))

	x, ok := c.Lookup(adt.V{Label: "x", Index: 0})
	require.True(t, ok)
	require.True(t, equiv.AlphaEq(bltn(adt.NaturalType), x.Type))

	y, ok := c.Lookup(adt.V{Label: "y", Index: 0})
	require.True(t, ok)
	require.True(t, equiv.AlphaEq(bltn(adt.BoolType), y.Type))
}

func TestInsertValueRecordsValueAndType(t *testing.T) {
	five := adt.NaturalFromUint64(adt.NoSpan, 5)
	c := ctx.Empty().InsertValue("x", five, bltn(adt.NaturalType))

	e, ok := c.Lookup(adt.V{Label: "x", Index: 0})
	require.True(t, ok)
	require.Equal(t, ctx.ValueBinding, e.Kind)
	require.True(t, equiv.AlphaEq(five, e.Value))
	require.True(t, equiv.AlphaEq(bltn(adt.NaturalType), e.Type))
}

func TestInsertShiftsExistingEntriesOfSameLabel(t *testing.T) {
	// Binding a fresh x must push any existing x@n to x@n+1 so that a
	// reference recorded against the old depth still resolves to the
	// same binding after the new one is in scope.
	c := ctx.Empty().InsertType("x", bltn(adt.NaturalType))
	c2 := c.InsertType("x", adt.NewApp(adt.NoSpan, bltn(adt.ListType), bltn(adt.TextType)))

	shiftedRef, ok := c2.Lookup(adt.V{Label: "x", Index: 1})
	require.True(t, ok)
	require.True(t, equiv.AlphaEq(bltn(adt.NaturalType), shiftedRef.Type))
}
