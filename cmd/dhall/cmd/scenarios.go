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

package cmd

import (
	"sort"

	"dhall.org/go/internal/core/adt"
)

// scenario is one named, already-constructed term in the CLI's
// built-in corpus (spec.md §1 places parsing out of scope, so the CLI
// never reads Dhall source text — it only drives terms built directly
// from the adt package, the same inputs internal/core/typecheck
// itself consumes, per SPEC_FULL.md §1).
type scenario struct {
	name string
	term adt.Term
}

func natural(n uint64) *adt.NaturalLit { return adt.NaturalFromUint64(adt.NoSpan, n) }

func builtin(b adt.Builtin) *adt.BuiltinT { return adt.NewBuiltin(adt.NoSpan, b) }

func variable(label adt.Label) *adt.Var {
	return adt.NewVar(adt.NoSpan, adt.V{Label: label, Index: 0})
}

var scenarios = buildScenarios()

func buildScenarios() map[string]scenario {
	identity := adt.NewLam(adt.NoSpan, "a", builtin(adt.NaturalType), variable("a"))

	natAdd := adt.NewBinOp(adt.NoSpan, adt.NaturalPlus, natural(2), natural(3))

	boolRec := adt.NewRecordLit(adt.NoSpan, []adt.RecordLitField{
		{Label: "enabled", Value: adt.NewBoolLit(adt.NoSpan, true)},
		{Label: "retries", Value: natural(5)},
	})

	applyNonFunction := adt.NewApp(adt.NoSpan, natural(1), natural(2))

	annotMismatch := adt.NewAnnot(adt.NoSpan, natural(1), builtin(adt.BoolType))

	ss := []scenario{
		{"identity", identity},
		{"natural-add", natAdd},
		{"record-literal", boolRec},
		{"apply-non-function", applyNonFunction},
		{"annotation-mismatch", annotMismatch},
	}
	m := make(map[string]scenario, len(ss))
	for _, s := range ss {
		m[s.name] = s
	}
	return m
}

func scenarioNames() []string {
	names := make([]string, 0, len(scenarios))
	for n := range scenarios {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
