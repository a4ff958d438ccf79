//-----------------------------------------------------------------------------
// Copyright (c) 2022-present Detlef Stern
//
// This file is part of sx.
//
// sx is licensed under the latest version of the EUPL (European Union
// Public License). Please see file LICENSE.txt for your rights and obligations
// under this license.
//
// SPDX-License-Identifier: EUPL-1.2
// SPDX-FileCopyrightText: 2022-present Detlef Stern
//-----------------------------------------------------------------------------

// Package cmd implements the lisp command-line driver: a REPL when no
// file is given, a batch evaluator otherwise (§6.2).
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/sxlisp/golisp"
	"github.com/sxlisp/golisp/lispreader"
	"github.com/sxlisp/golisp/lispvm"
)

var (
	debug      bool
	debugUI    bool
	cpuProfile bool
)

var rootCmd = &cobra.Command{
	Use:     "lisp [file]",
	Short:   "A minimal Scheme-like Lisp interpreter",
	Args:    cobra.MaximumNArgs(1),
	Version: "0.1.0",
	RunE:    runLisp,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "trace machine state to stderr before each step")
	rootCmd.Flags().BoolVar(&debugUI, "debug-ui", false, "page through machine steps in an interactive viewer instead of stderr tracing")
	rootCmd.Flags().BoolVar(&cpuProfile, "cpuprofile", false, "write a CPU profile of this run to ./cpu.pprof")
}

func runLisp(cmd *cobra.Command, args []string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFor(debug),
	}))

	if cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()
		return runFile(f, args[0], logger)
	}
	return runREPL(cmd.OutOrStdout(), os.Stdin, logger)
}

func levelFor(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}

func newMachine(logger *slog.Logger) *lispvm.Machine {
	m := lispvm.NewMachine(lispvm.NewGlobalEnvironment())
	if debug {
		logger.Debug("machine structures", "stackEntrySize", "variable (sum type)")
		m.Debug = func(m *lispvm.Machine) {
			logger.Debug("step", "pp", lisp.Repr(m.PP), "sp", m.SP, "rr", lisp.Repr(m.RR), "depth", len(m.Stack))
		}
	}
	return m
}

// runFile implements §6.2's file mode: read-evaluate loop, results
// discarded, only errors reported. A read or evaluation error is printed
// and terminates the run; per §6.2 this is not a host I/O failure, so the
// process still exits 0.
func runFile(r io.Reader, name string, logger *slog.Logger) error {
	rd := lispreader.New(r, name)
	m := newMachine(logger)
	for {
		form, err := rd.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
			return nil
		}
		if _, err := m.Eval(form); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil
		}
	}
}

// runREPL implements §6.2's interactive mode: prompt, read, evaluate,
// print the debug form followed by a blank line. EOF terminates cleanly;
// evaluation errors are reported and the loop continues with the same
// (preserved) environment.
func runREPL(out io.Writer, in io.Reader, logger *slog.Logger) error {
	rd := lispreader.New(in, "<stdin>")
	m := newMachine(logger)
	w := bufio.NewWriter(out)
	for {
		fmt.Fprint(w, "> ")
		w.Flush()

		form, err := rd.Read()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			fmt.Fprintln(w, err)
			w.Flush()
			continue
		}

		if debugUI {
			if err := evalWithStepUI(m, func() (string, error) {
				result, err := m.Eval(form)
				if err != nil {
					return "", err
				}
				return lisp.Repr(result), nil
			}); err != nil {
				fmt.Fprintln(w, err)
				w.Flush()
			}
			continue
		}

		result, err := m.Eval(form)
		if err != nil {
			fmt.Fprintln(w, err)
			w.Flush()
			continue
		}
		fmt.Fprintln(w, lisp.Repr(result))
		fmt.Fprintln(w)
		w.Flush()
	}
}
