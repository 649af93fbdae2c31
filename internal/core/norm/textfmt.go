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
	"fmt"
	"math"
	"strconv"
	"strings"

	"dhall.org/go/internal/core/adt"
)

// formatDouble renders a DoubleLit the way Double/show does: always a
// decimal point, "Infinity"/"-Infinity"/"NaN" for the non-finite cases,
// and a leading "-" preserved for negative zero.
func formatDouble(d *adt.DoubleLit) string {
	v := d.Value
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if v == 0 && d.Negative {
		s = "-0.0"
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// quoteDhallText implements Text/show: render a Text literal back as
// Dhall double-quoted source syntax, escaping the same characters the
// surface syntax forbids literally.
func quoteDhallText(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '$':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
