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

package lispvm

import (
	"fmt"
	"io"
	"os"

	"github.com/sxlisp/golisp"
)

func consSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	return lisp.Cons(args[0], args[1]), nil
}

func carSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	pair, ok := args[0].(*lisp.Pair)
	if !ok || pair == nil {
		return nil, &TypeMismatchError{Want: "pair", Got: args[0]}
	}
	return pair.Car(), nil
}

func cdrSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	pair, ok := args[0].(*lisp.Pair)
	if !ok || pair == nil {
		return nil, &TypeMismatchError{Want: "pair", Got: args[0]}
	}
	return pair.Cdr(), nil
}

// equalSubr backs both eqv? and =: true iff every argument is
// structurally equal to the first. True on a single argument.
func equalSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	first := args[0]
	for _, v := range args[1:] {
		if !first.IsEqual(v) {
			return lisp.False, nil
		}
	}
	return lisp.True, nil
}

func numArg(v lisp.Object) (float64, error) {
	n, ok := lisp.GetNum(v)
	if !ok {
		return 0, &TypeMismatchError{Want: "number", Got: v}
	}
	return float64(n), nil
}

func plusSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	acc := 0.0
	for _, v := range args {
		n, err := numArg(v)
		if err != nil {
			return nil, err
		}
		acc += n
	}
	return lisp.Num(acc), nil
}

func minusSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	acc, err := numArg(args[0])
	if err != nil {
		return nil, err
	}
	for _, v := range args[1:] {
		n, err := numArg(v)
		if err != nil {
			return nil, err
		}
		acc -= n
	}
	return lisp.Num(acc), nil
}

func multiplySubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	acc := 1.0
	for _, v := range args {
		n, err := numArg(v)
		if err != nil {
			return nil, err
		}
		acc *= n
	}
	return lisp.Num(acc), nil
}

func divideSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	acc, err := numArg(args[0])
	if err != nil {
		return nil, err
	}
	for _, v := range args[1:] {
		n, err := numArg(v)
		if err != nil {
			return nil, err
		}
		acc /= n
	}
	return lisp.Num(acc), nil
}

// stdout is where print and print-env write; overridden by tests.
var stdout io.Writer = os.Stdout

func printSubr(_ *Machine, args []lisp.Object) (lisp.Object, error) {
	for _, v := range args {
		if _, err := lisp.Print(stdout, v); err != nil {
			return nil, err
		}
		if _, err := io.WriteString(stdout, "\n"); err != nil {
			return nil, err
		}
	}
	return lisp.True, nil
}

// printEnvSubr dumps the innermost frame's identifier→value mapping for
// diagnostics, per §4.2; it needs the machine (not just its own
// arguments) to reach the current environment.
func printEnvSubr(m *Machine, _ []lisp.Object) (lisp.Object, error) {
	for name, val := range m.Env.vars {
		if _, err := fmt.Fprintf(stdout, "%s = %s\n", name, lisp.Repr(val)); err != nil {
			return nil, err
		}
	}
	return lisp.True, nil
}
