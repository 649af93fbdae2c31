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

// Package debug renders a Term back to Dhall-like surface syntax for
// embedding in error messages and test fixtures. It is not the
// parser's inverse (no round-trip guarantee; comments, multi-let
// chains and exact operator precedence grouping are not reconstructed).
// Distinct terms can print identically: nested binary operators are
// printed without grouping parentheses, a UnionLit's other alternatives
// print as "…", and Text content is NFC-normalised. Grounded on original_source/dhall/src/syntax/text/printer.rs's
// precedence ladder (annotation < operator < application < selector <
// atom) and escaping rules, reworked as a single recursive function
// rather than that file's trait-based Display impls.
package debug

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"dhall.org/go/internal/core/adt"
)

// precedence levels, loosest to tightest.
const (
	precExpr = iota // lambda, pi, let, if, merge/toMap/assert
	precAnnot
	precOp
	precApp
	precSelector
	precAtom
)

// Print renders t as Dhall surface syntax.
func Print(t adt.Term) string {
	var b strings.Builder
	print(&b, t, precExpr)
	return b.String()
}

func wrap(b *strings.Builder, need bool, f func()) {
	if need {
		b.WriteByte('(')
	}
	f()
	if need {
		b.WriteByte(')')
	}
}

func label(l adt.Label) string {
	if l.IsQuoteRequired() {
		return "`" + string(l) + "`"
	}
	return string(l)
}

func print(b *strings.Builder, t adt.Term, minPrec int) {
	if t == nil {
		b.WriteString("<nil>")
		return
	}
	switch x := t.(type) {
	case *adt.Var:
		b.WriteString(label(x.V.Label))
		if x.V.Index != 0 {
			fmt.Fprintf(b, "@%d", x.V.Index)
		}

	case *adt.Const:
		b.WriteString(x.K.String())

	case *adt.BuiltinT:
		b.WriteString(x.B.String())

	case *adt.Lam:
		wrap(b, minPrec > precExpr, func() {
			fmt.Fprintf(b, "\\(%s : ", label(x.Label))
			print(b, x.Type, precExpr)
			b.WriteString(") -> ")
			print(b, x.Body, precExpr)
		})

	case *adt.Pi:
		wrap(b, minPrec > precExpr, func() {
			if x.Label == "_" {
				print(b, x.Domain, precOp)
				b.WriteString(" -> ")
			} else {
				fmt.Fprintf(b, "forall (%s : ", label(x.Label))
				print(b, x.Domain, precExpr)
				b.WriteString(") -> ")
			}
			print(b, x.Codomain, precExpr)
		})

	case *adt.App:
		wrap(b, minPrec > precApp, func() {
			print(b, x.Fn, precApp)
			b.WriteByte(' ')
			print(b, x.Arg, precSelector)
		})

	case *adt.Let:
		wrap(b, minPrec > precExpr, func() {
			fmt.Fprintf(b, "let %s", label(x.Label))
			if x.Annot != nil {
				b.WriteString(" : ")
				print(b, x.Annot, precExpr)
			}
			b.WriteString(" = ")
			print(b, x.Value, precExpr)
			b.WriteString(" in ")
			print(b, x.Body, precExpr)
		})

	case *adt.Annot:
		wrap(b, minPrec > precAnnot, func() {
			print(b, x.Term, precOp)
			b.WriteString(" : ")
			print(b, x.Type, precExpr)
		})

	case *adt.Assert:
		b.WriteString("assert : ")
		print(b, x.Term, precExpr)

	case *adt.Import:
		print(b, x.Value, minPrec)

	case *adt.BoolLit:
		if x.Value {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}

	case *adt.NaturalLit:
		b.WriteString(x.Value.String())

	case *adt.IntegerLit:
		s := x.Value.String()
		if x.Value.Sign() >= 0 {
			s = "+" + s
		}
		b.WriteString(s)

	case *adt.DoubleLit:
		b.WriteString(formatDouble(x))

	case *adt.TextLit:
		printTextLit(b, x)

	case *adt.EmptyListLit:
		b.WriteString("[] : List ")
		print(b, x.ElemType, precSelector)

	case *adt.NEListLit:
		b.WriteByte('[')
		for i, e := range x.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			print(b, e, precExpr)
		}
		b.WriteByte(']')

	case *adt.SomeLit:
		wrap(b, minPrec > precApp, func() {
			b.WriteString("Some ")
			print(b, x.Value, precSelector)
		})

	case *adt.OldOptionalLit:
		if x.Value != nil {
			b.WriteByte('[')
			print(b, x.Value, precExpr)
			b.WriteString("] : Optional ")
		} else {
			b.WriteString("[] : Optional ")
		}
		print(b, x.ElemType, precSelector)

	case *adt.RecordType:
		printFieldList(b, "{", "}", len(x.Fields), func(i int) {
			fmt.Fprintf(b, "%s : ", label(x.Fields[i].Label))
			print(b, x.Fields[i].Type, precExpr)
		})

	case *adt.RecordLit:
		printFieldList(b, "{", "}", len(x.Fields), func(i int) {
			fmt.Fprintf(b, "%s = ", label(x.Fields[i].Label))
			print(b, x.Fields[i].Value, precExpr)
		})

	case *adt.UnionType:
		printFieldList(b, "<", ">", len(x.Alts), func(i int) {
			a := x.Alts[i]
			b.WriteString(label(a.Label))
			if a.Type != nil {
				b.WriteString(" : ")
				print(b, a.Type, precExpr)
			}
		})

	case *adt.UnionLit:
		fmt.Fprintf(b, "< %s", label(x.Label))
		if x.Value != nil {
			b.WriteString(" = ")
			print(b, x.Value, precExpr)
		}
		b.WriteString(" | … >")

	case *adt.BinOp:
		wrap(b, minPrec > precOp, func() {
			print(b, x.L, precOp)
			fmt.Fprintf(b, " %s ", x.Op.String())
			print(b, x.R, precOp)
		})

	case *adt.BoolIf:
		wrap(b, minPrec > precExpr, func() {
			b.WriteString("if ")
			print(b, x.Cond, precExpr)
			b.WriteString(" then ")
			print(b, x.Then, precExpr)
			b.WriteString(" else ")
			print(b, x.Else, precExpr)
		})

	case *adt.Merge:
		b.WriteString("merge ")
		printFieldList(b, "{", "}", len(x.Handlers), func(i int) {
			fmt.Fprintf(b, "%s = ", label(x.Handlers[i].Label))
			print(b, x.Handlers[i].Handler, precExpr)
		})
		b.WriteByte(' ')
		print(b, x.Scrutinee, precSelector)
		if x.Annot != nil {
			b.WriteString(" : ")
			print(b, x.Annot, precExpr)
		}

	case *adt.ToMap:
		b.WriteString("toMap ")
		print(b, x.Record, precSelector)
		if x.Annot != nil {
			b.WriteString(" : ")
			print(b, x.Annot, precExpr)
		}

	case *adt.Field:
		wrap(b, minPrec > precSelector, func() {
			print(b, x.Record, precSelector)
			b.WriteByte('.')
			b.WriteString(label(x.Label))
		})

	case *adt.Projection:
		wrap(b, minPrec > precSelector, func() {
			print(b, x.Record, precSelector)
			b.WriteString(".{")
			for i, l := range x.Labels {
				if i > 0 {
					b.WriteString(", ")
				}
				b.WriteString(label(l))
			}
			b.WriteByte('}')
		})

	case *adt.ProjectionByExpr:
		wrap(b, minPrec > precSelector, func() {
			print(b, x.Record, precSelector)
			b.WriteString(".(")
			print(b, x.Type, precExpr)
			b.WriteByte(')')
		})

	case *adt.Completion:
		wrap(b, minPrec > precOp, func() {
			print(b, x.Base, precSelector)
			b.WriteString("::")
			print(b, x.Rhs, precSelector)
		})

	case *adt.With:
		wrap(b, minPrec > precExpr, func() {
			print(b, x.Record, precSelector)
			b.WriteString(" with ")
			for i, p := range x.Path {
				if i > 0 {
					b.WriteByte('.')
				}
				if p.Label == "" {
					b.WriteByte('?')
				} else {
					b.WriteString(label(p.Label))
				}
			}
			b.WriteString(" = ")
			print(b, x.Value, precOp)
		})

	default:
		panic("debug: unhandled term kind")
	}
}

func printFieldList(b *strings.Builder, open, close string, n int, each func(i int)) {
	b.WriteString(open)
	if n == 0 {
		b.WriteString(close)
		return
	}
	b.WriteByte(' ')
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		each(i)
	}
	b.WriteByte(' ')
	b.WriteString(close)
}

func printTextLit(b *strings.Builder, t *adt.TextLit) {
	b.WriteByte('"')
	for _, p := range t.Pieces {
		if p.Expr == nil {
			b.WriteString(escapeText(p.Chunk))
			continue
		}
		b.WriteString("${")
		print(b, p.Expr, precExpr)
		b.WriteByte('}')
	}
	b.WriteByte('"')
}

// escapeText renders a text chunk's literal characters, NFC-normalising
// first so that two source documents spelling the same Text value with
// different combining-character sequences render identically in error
// messages (the Dhall standard requires NFC for text-literal content;
// see original_source/dhall/src/syntax/text/printer.rs).
func escapeText(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			fmt.Fprintf(&b, `\u%04X`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04X`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

func formatDouble(d *adt.DoubleLit) string {
	switch {
	case math.IsNaN(d.Value):
		return "NaN"
	case math.IsInf(d.Value, 1):
		return "Infinity"
	case math.IsInf(d.Value, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(d.Value, 'g', -1, 64)
	if d.Value == 0 && d.Negative {
		s = "-0.0"
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
