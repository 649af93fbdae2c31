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

// Package ctx implements L3: a persistent mapping from label to
// binding, respecting shadowing. Grounded on
// original_source/dhall/src/typecheck.rs's
// `ctx.insert(x, t).map(|e| shift(1, &V(x, 0), e))` idiom and on the
// teacher's internal/core/adt/composite.go Environment{Up, ...} shape.
package ctx

import (
	"dhall.org/go/internal/core/adt"
	"dhall.org/go/internal/core/shift"
)

// Kind discriminates the two binding flavors spec.md §3.1 names.
type Kind int8

const (
	// TypeBinding records a binder's type (e.g. a Lam/Pi argument).
	TypeBinding Kind = iota
	// ValueBinding additionally records a let-bound value, so that
	// types depending on it keep reducing through the binder.
	ValueBinding
)

// Entry is one (label, binding) pair.
type Entry struct {
	Label adt.Label
	Kind  Kind
	// Type is the binder's type (always set): for a TypeBinding, the
	// declared/inferred type; for a ValueBinding, the bound value's
	// own type (spec.md §4.3: "on a value binding, return the value's
	// own (already-computed) type").
	Type adt.Term
	// Value holds the bound value; only set when Kind == ValueBinding.
	Value adt.Term
}

// Context is an immutable list of Entry, most recently inserted first.
// A nil *Context is the empty context.
type Context struct {
	entries []Entry
}

// Empty returns the empty context.
func Empty() *Context { return &Context{} }

// insert shifts every existing entry (and the new one) by +1 on every
// free occurrence of label, then prepends the new entry — spec.md
// §4.3's insert_type/insert_value contract, applied uniformly.
func (c *Context) insert(e Entry) *Context {
	n := 0
	if c != nil {
		n = len(c.entries)
	}
	out := make([]Entry, n+1)
	out[0] = e
	if c != nil {
		copy(out[1:], c.entries)
	}
	v0 := adt.V{Label: e.Label, Index: 0}
	for i := range out {
		out[i] = shiftEntry(out[i], v0)
	}
	return &Context{entries: out}
}

func shiftEntry(e Entry, v adt.V) Entry {
	e.Type = shift.Shift(1, v, e.Type)
	if e.Value != nil {
		e.Value = shift.Shift(1, v, e.Value)
	}
	return e
}

// InsertType pushes a type binding for label.
func (c *Context) InsertType(label adt.Label, typ adt.Term) *Context {
	return c.insert(Entry{Label: label, Kind: TypeBinding, Type: typ})
}

// InsertValue pushes a value binding for label; valueType must be the
// (already normal-form) type of value.
func (c *Context) InsertValue(label adt.Label, value, valueType adt.Term) *Context {
	return c.insert(Entry{Label: label, Kind: ValueBinding, Type: valueType, Value: value})
}

// Lookup returns the n-th entry from the top whose label equals
// v.Label (n == v.Index), or ok == false if there is no such entry.
func (c *Context) Lookup(v adt.V) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	remaining := v.Index
	for _, e := range c.entries {
		if e.Label != v.Label {
			continue
		}
		if remaining == 0 {
			return e, true
		}
		remaining--
	}
	return Entry{}, false
}

// Len reports the number of entries (depth) in the context.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
