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

// Package dhall is the public entry point: typecheck a resolved,
// import-free term (L0's adt.Term) and obtain its normal type, or
// check it against an expected type. Grounded on the teacher's
// top-level cue package (cue/instance.go, cue/value.go) for the shape
// of a thin public facade wrapping the internal/core machinery.
package dhall

import (
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/equiv"
	"dhall.org/go/internal/core/norm"
	"dhall.org/go/internal/core/typecheck"
)

// Term re-exports the L0 AST so callers outside internal/core never
// need to import it directly, mirroring cue.Value wrapping adt.Vertex.
type Term = adt.Term

// Error re-exports the L6 structured error so callers can type-switch
// on typecheck.Code without importing internal/core/typecheck.
type Error = typecheck.TypeError

// Typed pairs a term with its already-normalised type: the result of a
// successful Typecheck or TypecheckWith call.
type Typed struct {
	term Term
	typ  Term
}

// Type returns the (beta-normal) inferred or checked type.
func (t Typed) Type() Term { return t.typ }

// Term returns the original term that was typechecked.
func (t Typed) Term() Term { return t.term }

// Normalize returns t's term reduced to beta-normal form (L2),
// evaluated under the empty context since a successfully-typechecked
// closed term has no free variables left to resolve.
func (t Typed) Normalize() Term {
	return norm.Normalize(ctx.Empty(), t.term)
}

// Typecheck synthesizes term's type (the ⇒ judgement, spec.md §5.1)
// under the empty context. term must be closed and import-free — this
// module's Non-goals exclude parsing and import resolution, so callers
// are expected to have already produced a fully-resolved adt.Term
// (e.g. via an external parser/resolver feeding this module's AST).
func Typecheck(term Term) (Typed, error) {
	return TypecheckIn(ctx.Empty(), term)
}

// TypecheckIn is Typecheck generalized to an arbitrary context, for
// collaborators (tests, a REPL) that want to typecheck a term with
// free variables already bound to some ambient scope.
func TypecheckIn(c *ctx.Context, term Term) (Typed, error) {
	typ, err := typecheck.Infer(c, term)
	if err != nil {
		return Typed{}, err
	}
	return Typed{term: term, typ: typ}, nil
}

// TypecheckWith checks term against an expected type (the ⇐
// judgement, spec.md §5.1's bidirectional "Check" direction),
// requiring expected to be alpha-equivalent to term's normalised
// inferred type.
func TypecheckWith(term, expected Term) (Typed, error) {
	got, err := typecheck.Check(ctx.Empty(), term, norm.Normalize(ctx.Empty(), expected))
	if err != nil {
		return Typed{}, err
	}
	return Typed{term: term, typ: got}, nil
}

// AlphaEquivalent reports whether a and b are the same term up to
// bound-variable renaming (L4), the notion of equality the
// typechecker itself uses for annotation and merge-handler checks.
func AlphaEquivalent(a, b Term) bool {
	return equiv.AlphaEq(a, b)
}
