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

// Package cmd implements the dhall command line tool: a thin driver
// over the dhall package's Typecheck/TypecheckWith API. Grounded on
// cmd/cue/cmd/root.go's Command/mkRunE/exitOnErr shape, cut down to
// the one subcommand this module's scope calls for (spec.md §1 places
// parsing and a general CLI surface out of scope; only the
// typechecker's own diagnostics are in scope).
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	xerrors "golang.org/x/xerrors"
)

// Command wraps a cobra.Command the way the teacher's cmd.Command
// does, tracking whether any error was written to Stderr so Main can
// report a non-zero exit status even when cobra itself returns nil.
type Command struct {
	*cobra.Command
	root   *cobra.Command
	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.OutOrStderr().Write(b)
}

// Stderr returns a writer that marks the command as having failed.
func (c *Command) Stderr() io.Writer { return (*errWriter)(c) }

// Stdout returns the command's normal output writer.
func (c *Command) Stdout() io.Writer { return c.Command.OutOrStdout() }

// ErrPrintedError indicates diagnostics were already written to
// Stderr, so Main should exit(1) without printing err itself again.
var ErrPrintedError = xerrors.New("terminating because of errors")

func newRootCmd() *Command {
	root := &cobra.Command{
		Use:   "dhall",
		Short: "dhall typechecks Dhall terms built from this module's AST",
		Long: `dhall is a driver over this module's bidirectional typechecker.

It does not parse Dhall source text (parsing and import resolution are
out of scope for this module) — its subcommands operate on a small
built-in corpus of already-constructed terms, the same adt.Term values
the typechecker itself consumes, so the CLI can exercise every code
path without a parser collaborator.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c := &Command{Command: root, root: root}
	addGlobalFlags(root.PersistentFlags())
	root.AddCommand(newTypecheckCmd(c))
	return c
}

// Main runs the dhall tool and returns the code for passing to os.Exit.
func Main() int {
	if err := mainErr(context.Background(), os.Args[1:]); err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	c := newRootCmd()
	c.root.SetArgs(args)
	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}
