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

package cmd_test

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	"dhall.org/go/cmd/dhall/cmd"
)

// TestMain lets testscript re-exec this test binary as the "dhall"
// command inside script fixtures, the same indirection
// cmd/cue/cmd/script_test.go relies on via goproxytest's sibling
// gotooltest helper — simplified here since this CLI has no module
// loader to bootstrap a fake proxy for.
func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"dhall": cmd.Main,
	}))
}
