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

package debug_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/debug"
)

func bltn(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func TestPrintAtoms(t *testing.T) {
	require.Equal(t, "True", debug.Print(adt.NewBoolLit(adt.NoSpan, true)))
	require.Equal(t, "False", debug.Print(adt.NewBoolLit(adt.NoSpan, false)))
	require.Equal(t, "5", debug.Print(adt.NaturalFromUint64(adt.NoSpan, 5)))
	require.Equal(t, "Natural", debug.Print(bltn(adt.NaturalType)))
}

func TestPrintVariable(t *testing.T) {
	require.Equal(t, "x", debug.Print(adt.NewVar(adt.NoSpan, adt.V{Label: "x", Index: 0})))
	require.Equal(t, "x@2", debug.Print(adt.NewVar(adt.NoSpan, adt.V{Label: "x", Index: 2})))
}

func TestPrintLambdaAndPi(t *testing.T) {
	lam := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "x"}))
	require.Equal(t, `\(x : Natural) -> x`, debug.Print(lam))

	pi := adt.NewPi(adt.NoSpan, "x", bltn(adt.NaturalType), bltn(adt.BoolType))
	require.Equal(t, "forall (x : Natural) -> Bool", debug.Print(pi))

	arrow := adt.NewPi(adt.NoSpan, "_", bltn(adt.NaturalType), bltn(adt.BoolType))
	require.Equal(t, "Natural -> Bool", debug.Print(arrow))
}

func TestPrintApplicationOfBuiltin(t *testing.T) {
	app := adt.NewApp(adt.NoSpan, bltn(adt.NaturalEven), adt.NaturalFromUint64(adt.NoSpan, 2))
	require.Equal(t, "Natural/even 2", debug.Print(app))
}

func TestPrintRecordTypeAndLit(t *testing.T) {
	rt := adt.NewRecordType(adt.NoSpan, []adt.RecordField{
		{Label: "a", Type: bltn(adt.NaturalType)},
		{Label: "b", Type: bltn(adt.BoolType)},
	})
	require.Equal(t, "{ a : Natural, b : Bool }", debug.Print(rt))

	rl := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "a", Value: adt.NaturalFromUint64(adt.NoSpan, 1)},
	})
	require.Equal(t, "{ a = 1 }", debug.Print(rl))

	empty := adt.NewRecordType(adt.NoSpan, nil)
	require.Equal(t, "{}", debug.Print(empty))
}

func TestPrintFieldSelection(t *testing.T) {
	rl := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "a", Value: adt.NaturalFromUint64(adt.NoSpan, 1)},
	})
	field := adt.NewField(adt.NoSpan, rl, "a")
	require.Equal(t, "{ a = 1 }.a", debug.Print(field))
}

func TestPrintAnnotationParenthesizedInsideApp(t *testing.T) {
	annot := adt.NewAnnot(adt.NoSpan, adt.NaturalFromUint64(adt.NoSpan, 1), bltn(adt.NaturalType))
	lam := adt.NewLam(adt.NoSpan, "x", bltn(adt.NaturalType), adt.NewVar(adt.NoSpan, adt.V{Label: "x"}))
	app := adt.NewApp(adt.NoSpan, lam, annot)
	require.Equal(t, `(\(x : Natural) -> x) (1 : Natural)`, debug.Print(app))
}

func TestPrintBacktickQuotesReservedLabel(t *testing.T) {
	rt := adt.NewRecordType(adt.NoSpan, []adt.RecordField{
		{Label: "let", Type: bltn(adt.NaturalType)},
	})
	require.Equal(t, "{ `let` : Natural }", debug.Print(rt))
}

func TestPrintTextLitEscapesSpecials(t *testing.T) {
	lit := adt.NewTextLit(adt.NoSpan, []adt.TextPiece{{Chunk: "a\"b\\c\n"}})
	require.Equal(t, `"a\"b\\c\n"`, debug.Print(lit))
}

func TestPrintDistinctLiteralsPrintDifferently(t *testing.T) {
	a := adt.NaturalFromUint64(adt.NoSpan, 1)
	b := adt.NewBoolLit(adt.NoSpan, true)
	require.NotEqual(t, debug.Print(a), debug.Print(b))
}
