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

import "github.com/spf13/pflag"

// Common flags, named the way the teacher's cmd/cue/cmd/flags.go names
// its own flagName constants.
const (
	flagReport flagName = "report"
)

// addGlobalFlags registers flags shared by every subcommand directly
// against the pflag.FlagSet cobra exposes, mirroring
// cmd/cue/cmd/flags.go's addGlobalFlags.
func addGlobalFlags(f *pflag.FlagSet) {
	f.String(string(flagReport), "text", `report format: "text" or "yaml"`)
}

type flagName string

func (f flagName) String(cmd *Command) string {
	v, err := cmd.Flags().GetString(string(f))
	if err != nil {
		return ""
	}
	return v
}
