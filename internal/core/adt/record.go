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

package adt

import (
	"github.com/mpvl/unique"
	"golang.org/x/exp/slices"
)

// RecordField is one label:type entry of a RecordType, kept in
// declaration order (ordered mapping, per spec.md §3.1).
type RecordField struct {
	Label Label
	Type  Term
}

// RecordType is `{ k1 : T1, k2 : T2, ... }`.
type RecordType struct {
	base
	Fields []RecordField
}

func NewRecordType(span Span, fields []RecordField) *RecordType {
	return &RecordType{base{span}, fields}
}

// Lookup returns the type of label, if present.
func (r *RecordType) Lookup(label Label) (Term, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Type, true
		}
	}
	return nil, false
}

// RecordLitField is one label:value entry of a RecordLit.
type RecordLitField struct {
	Label Label
	Value Term
}

// RecordLit is `{ k1 = v1, k2 = v2, ... }`.
type RecordLit struct {
	base
	Fields []RecordLitField
}

func NewRecordLit(span Span, fields []RecordLitField) *RecordLit {
	return &RecordLit{base{span}, fields}
}

func (r *RecordLit) Lookup(label Label) (Term, bool) {
	for _, f := range r.Fields {
		if f.Label == label {
			return f.Value, true
		}
	}
	return nil, false
}

// UnionAlt is one label:type entry of a UnionType. Type is nil for a
// constructor-only alternative (`< Foo >` with no payload).
type UnionAlt struct {
	Label Label
	Type  Term // nil if this alternative carries no value
}

// UnionType is `< k1 : T1 | k2 | k3 : T3 >`.
type UnionType struct {
	base
	Alts []UnionAlt
}

func NewUnionType(span Span, alts []UnionAlt) *UnionType { return &UnionType{base{span}, alts} }

func (u *UnionType) Lookup(label Label) (UnionAlt, bool) {
	for _, a := range u.Alts {
		if a.Label == label {
			return a, true
		}
	}
	return UnionAlt{}, false
}

// UnionLit is `< Label = value | rest... >`: picking one alternative
// of a union, carrying the remaining alternatives' declared types so
// the typechecker can reconstruct the full UnionType (spec.md §4.5:
// "desugars to a UnionType whose x entry is the type of v, merged
// with rest").
type UnionLit struct {
	base
	Label Label
	Value Term
	Rest  []UnionAlt
}

func NewUnionLit(span Span, label Label, value Term, rest []UnionAlt) *UnionLit {
	return &UnionLit{base{span}, label, value, rest}
}

// labelSlice adapts []Label to github.com/mpvl/unique's Interface so
// that MergeUnionAlts can detect duplicate alternative labels with the
// same sort-then-collapse algorithm CUE itself uses for field sets.
type labelSlice []Label

func (s *labelSlice) Len() int           { return len(*s) }
func (s *labelSlice) Less(i, j int) bool { return (*s)[i] < (*s)[j] }
func (s *labelSlice) Swap(i, j int)      { (*s)[i], (*s)[j] = (*s)[j], (*s)[i] }
func (s *labelSlice) Truncate(n int)     { *s = (*s)[:n] }

// DuplicateLabel reports the first duplicate label among labels, if
// any duplicates exist.
func DuplicateLabel(labels []Label) (Label, bool) {
	cp := append(labelSlice(nil), labels...)
	before := len(cp)
	unique.Sort(&cp)
	if len(cp) == before {
		return "", false
	}
	seen := map[Label]int{}
	for _, l := range labels {
		seen[l]++
		if seen[l] > 1 {
			return l, true
		}
	}
	return "", false
}

// MergeUnionAlts builds the full alternative list for a UnionLit's
// desugared UnionType: the chosen label's type first, then rest in its
// given order (no sorting). It reports a duplicate label, if any,
// instead of returning the list.
func MergeUnionAlts(label Label, typ Term, rest []UnionAlt) ([]UnionAlt, Label, bool) {
	all := make([]UnionAlt, 0, len(rest)+1)
	all = append(all, UnionAlt{Label: label, Type: typ})
	all = append(all, rest...)

	labels := make([]Label, len(all))
	for i, a := range all {
		labels[i] = a.Label
	}
	if dup, ok := DuplicateLabel(labels); ok {
		return nil, dup, false
	}
	return all, "", true
}

// sortedAltLabels returns the labels of alts in sorted order.
func sortedAltLabels(alts []UnionAlt) []Label {
	out := make([]Label, len(alts))
	for i, a := range alts {
		out[i] = a.Label
	}
	slices.Sort(out)
	return out
}
