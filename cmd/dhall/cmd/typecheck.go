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

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"dhall.org/go/dhall"
	"dhall.org/go/dhall/errors"
	"dhall.org/go/internal/core/debug"
	"dhall.org/go/internal/core/typecheck"
)

// report is the --report=yaml document shape: either a successful
// inferred type or a structured failure, never both.
type report struct {
	Scenario string `yaml:"scenario"`
	OK       bool   `yaml:"ok"`
	Type     string `yaml:"type,omitempty"`
	Code     string `yaml:"code,omitempty"`
	Message  string `yaml:"message,omitempty"`
	Path     []string `yaml:"path,omitempty"`
}

func newTypecheckCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typecheck <scenario>...",
		Short: "typecheck one or more built-in scenarios and report the result",
		Long: `typecheck runs this module's bidirectional typechecker (L5) over
one or more named terms from the CLI's built-in scenario corpus and
prints either the inferred type or the structured error.

Run with no arguments to list the available scenario names.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, n := range scenarioNames() {
					fmt.Fprintln(c.Stdout(), n)
				}
				return nil
			}
			format := flagReport.String(c)
			switch format {
			case "text", "yaml":
			default:
				return fmt.Errorf("unknown --report value %q, want text or yaml", format)
			}
			var reports []report
			for _, name := range args {
				s, ok := scenarios[name]
				if !ok {
					fmt.Fprintf(c.Stderr(), "unknown scenario %q (known: %s)\n", name, strings.Join(scenarioNames(), ", "))
					continue
				}
				reports = append(reports, runScenario(s))
			}
			switch format {
			case "yaml":
				enc := yaml.NewEncoder(c.Stdout())
				defer enc.Close()
				for _, r := range reports {
					if err := enc.Encode(r); err != nil {
						return err
					}
				}
			case "text":
				for _, r := range reports {
					printTextReport(c, r)
				}
			}
			for _, r := range reports {
				if !r.OK {
					c.hasErr = true
				}
			}
			return nil
		},
	}
	return cmd
}

func runScenario(s scenario) report {
	typed, err := dhall.Typecheck(s.term)
	if err == nil {
		return report{Scenario: s.name, OK: true, Type: debug.Print(typed.Type())}
	}
	te, ok := err.(*typecheck.TypeError)
	if !ok {
		return report{Scenario: s.name, OK: false, Message: err.Error()}
	}
	return report{
		Scenario: s.name,
		OK:       false,
		Code:     te.Code.String(),
		Message:  errors.String(te),
		Path:     te.Path(),
	}
}

func printTextReport(c *Command, r report) {
	if r.OK {
		fmt.Fprintf(c.Stdout(), "%s :: %s\n", r.Scenario, r.Type)
		return
	}
	fmt.Fprintf(c.Stderr(), "%s: %s: %s\n", r.Scenario, r.Code, r.Message)
}
