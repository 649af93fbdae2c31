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

package dhallproto_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"dhall.org/go/encoding/dhallproto"
	"dhall.org/go/internal/core/adt"
)

func builtinT(b adt.Builtin) adt.Term { return adt.NewBuiltin(adt.NoSpan, b) }

func TestFromRecordType(t *testing.T) {
	rt := adt.NewRecordType(adt.NoSpan, []adt.RecordField{
		{Label: "name", Type: builtinT(adt.TextType)},
		{Label: "retries", Type: builtinT(adt.NaturalType)},
		{Label: "tags", Type: adt.NewApp(adt.NoSpan, builtinT(adt.ListType), builtinT(adt.TextType))},
		{Label: "handler", Type: adt.NewPi(adt.NoSpan, "_", builtinT(adt.TextType), builtinT(adt.TextType))},
	})

	msg := dhallproto.FromRecordType("Config", rt)
	require.Equal(t, "Config", msg.Name)
	require.Len(t, msg.Elements, 4)

	var buf strings.Builder
	require.NoError(t, dhallproto.WriteMessage(&buf, msg))
	out := buf.String()
	require.Contains(t, out, "message Config {")
	require.Contains(t, out, "string name = 1;")
	require.Contains(t, out, "uint64 retries = 2;")
	require.Contains(t, out, "repeated string tags = 3;")
	require.Contains(t, out, "no scalar protobuf equivalent")
}
