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

package norm

import (
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/ctx"
	"dhall.org/go/internal/core/shift"
)

// applyNF reduces the application of an already-normal function nf to
// an already-normal argument na: beta-reduction for a Lam, a builtin
// reduction rule when the full arity of a builtin application spine is
// present, or a stuck application otherwise.
func applyNF(c *ctx.Context, nf, na adt.Term, span adt.Span) adt.Term {
	if lam, ok := nf.(*adt.Lam); ok {
		body := shift.SubstVar0(lam.Label, na, lam.Body)
		return Normalize(c, body)
	}

	head, args := spine(adt.NewApp(span, nf, na))
	if bi, ok := head.(*adt.BuiltinT); ok {
		if reduced, ok := reduceBuiltin(c, bi.B, args); ok {
			return Normalize(c, reduced)
		}
	}
	return adt.NewApp(span, nf, na)
}

// spine decomposes an application chain into its head and, in
// application order, its arguments.
func spine(t adt.Term) (adt.Term, []adt.Term) {
	var args []adt.Term
	for {
		app, ok := t.(*adt.App)
		if !ok {
			break
		}
		args = append([]adt.Term{app.Arg}, args...)
		t = app.Fn
	}
	return t, args
}
