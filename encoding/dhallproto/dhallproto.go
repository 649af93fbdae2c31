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

// Package dhallproto renders a Dhall RecordType's normal form as a
// .proto message shape, for documentation/interop tooling. This is a
// best-effort, non-core export: it never participates in
// typechecking, and a field whose type has no scalar protobuf
// equivalent (a function type, a bare Kind/Sort-level type, …) is
// rendered as a comment rather than rejected, since this package has
// no error taxonomy of its own to raise.
//
// Grounded on cmd/cue/cmd/get_proto.go, which walks the emicklei/proto
// AST (*proto.Message, *proto.NormalField, *proto.Field) in the
// opposite direction (.proto source into a CUE AST). Since
// emicklei/proto is a parser with no corresponding "build and print a
// .proto file" API, this package builds the same AST types the
// teacher consumes and writes them out with a small hand-written
// printer, the same division of labour get_proto.go uses (parse with
// the library, shape the output by hand).
package dhallproto

import (
	"fmt"
	"io"
	"strings"

	"github.com/emicklei/proto"

	"dhall.org/go/internal/core/adt"
)

// FromRecordType builds a *proto.Message describing record's fields,
// numbering them in declaration order starting at 1 (protobuf field
// numbers are never zero).
func FromRecordType(name string, record *adt.RecordType) *proto.Message {
	msg := &proto.Message{Name: name}
	for i, f := range record.Fields {
		seq := i + 1
		scalar, ok := scalarType(f.Type)
		if !ok {
			msg.Elements = append(msg.Elements, &proto.Comment{
				Lines: []string{fmt.Sprintf("%s: no scalar protobuf equivalent", f.Label)},
			})
			continue
		}
		msg.Elements = append(msg.Elements, &proto.NormalField{
			Field: &proto.Field{
				Name:     string(f.Label),
				Type:     scalar,
				Sequence: seq,
			},
		})
	}
	return msg
}

// scalarType maps a Dhall builtin type to its closest protobuf scalar,
// the builtins with a natural protobuf analogue per the Dhall standard
// prelude's own Prelude/JSON and protobuf-interop conventions.
func scalarType(t adt.Term) (string, bool) {
	b, ok := t.(*adt.BuiltinT)
	if !ok {
		if app, ok := t.(*adt.App); ok {
			if fn, ok := app.Fn.(*adt.BuiltinT); ok && fn.B == adt.ListType {
				inner, ok := scalarType(app.Arg)
				if !ok {
					return "", false
				}
				return "repeated " + inner, true
			}
		}
		return "", false
	}
	switch b.B {
	case adt.BoolType:
		return "bool", true
	case adt.NaturalType:
		return "uint64", true
	case adt.IntegerType:
		return "int64", true
	case adt.DoubleType:
		return "double", true
	case adt.TextType:
		return "string", true
	default:
		return "", false
	}
}

// WriteMessage prints msg as .proto message syntax. This is
// deliberately minimal (no nested messages/enums/oneofs — the Dhall
// side of this bridge only ever produces flat scalar/repeated-scalar
// fields from a RecordType), matching the scope of FromRecordType.
func WriteMessage(w io.Writer, msg *proto.Message) error {
	if _, err := fmt.Fprintf(w, "message %s {\n", msg.Name); err != nil {
		return err
	}
	for _, el := range msg.Elements {
		switch x := el.(type) {
		case *proto.NormalField:
			typ := x.Type
			name := x.Name
			if strings.HasPrefix(typ, "repeated ") {
				if _, err := fmt.Fprintf(w, "  %s %s = %d;\n", typ, name, x.Sequence); err != nil {
					return err
				}
				continue
			}
			if _, err := fmt.Fprintf(w, "  %s %s = %d;\n", typ, name, x.Sequence); err != nil {
				return err
			}
		case *proto.Comment:
			for _, line := range x.Lines {
				if _, err := fmt.Fprintf(w, "  // %s\n", line); err != nil {
					return err
				}
			}
		}
	}
	_, err := io.WriteString(w, "}\n")
	return err
}
