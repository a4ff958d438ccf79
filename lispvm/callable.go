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
	"io"
	"reflect"

	"github.com/sxlisp/golisp"
)

// SyntaxFn implements a special form. On entry, stack[sp] holds the
// Syntax value itself and m.PP is the unevaluated tail of the original
// list. The contract is described in §4.1.3: the form may peel items off
// m.PP, stage further phases, or call m.Return to hand back a value.
type SyntaxFn func(m *Machine) error

// Syntax is a special form: a callee whose arguments are not
// auto-evaluated. fn operates directly on the machine.
type Syntax struct {
	Name string
	Fn   SyntaxFn
}

// IsNil is always false.
func (s *Syntax) IsNil() bool { return s == nil }

// IsAtom is always true.
func (s *Syntax) IsAtom() bool { return true }

// IsEqual compares by (name, function-pointer) identity, per §3.1.
func (s *Syntax) IsEqual(other lisp.Object) bool {
	o, ok := other.(*Syntax)
	if !ok {
		return false
	}
	return s.Name == o.Name && reflect.ValueOf(s.Fn).Pointer() == reflect.ValueOf(o.Fn).Pointer()
}

// String returns the debug representation.
func (s *Syntax) String() string { return lisp.Repr(s) }

// Print writes "#<syntax NAME>".
func (s *Syntax) Print(w io.Writer) (int, error) {
	return io.WriteString(w, "#<syntax "+s.Name+">")
}

// SubrFn implements a primitive procedure. Unlike SyntaxFn it receives
// already-evaluated argument values rather than the raw machine, but it
// is also passed the machine so that the rare primitive that needs
// machine state (print-env, which dumps the current environment) can
// reach it; the argument slots are what drive ordinary primitives.
type SubrFn func(m *Machine, args []lisp.Object) (lisp.Object, error)

// Subr is a primitive procedure: a callee whose arguments are evaluated
// automatically before fn runs.
type Subr struct {
	Name     string
	MinArity int
	MaxArity int // -1 means unbounded
	Fn       SubrFn
}

// IsNil is always false.
func (s *Subr) IsNil() bool { return s == nil }

// IsAtom is always true.
func (s *Subr) IsAtom() bool { return true }

// IsEqual compares by (name, function-pointer) identity, per §3.1.
func (s *Subr) IsEqual(other lisp.Object) bool {
	o, ok := other.(*Subr)
	if !ok {
		return false
	}
	return s.Name == o.Name && reflect.ValueOf(s.Fn).Pointer() == reflect.ValueOf(o.Fn).Pointer()
}

// String returns the debug representation.
func (s *Subr) String() string { return lisp.Repr(s) }

// Print writes "#<subr NAME>".
func (s *Subr) Print(w io.Writer) (int, error) {
	return io.WriteString(w, "#<subr "+s.Name+">")
}

// Call checks arity, then invokes Fn.
func (s *Subr) Call(m *Machine, args []lisp.Object) (lisp.Object, error) {
	n := len(args)
	if n < s.MinArity || (s.MaxArity >= 0 && n > s.MaxArity) {
		return nil, &SyntaxError{Msg: "wrong number of arguments to " + s.Name}
	}
	return s.Fn(m, args)
}

// Closure is a user-defined procedure: params and body, plus the
// environment captured at the point the lambda form ran. params is a
// lisp list of Idents (possibly empty); body is a single expression.
type Closure struct {
	Params lisp.Object
	Body   lisp.Object
	Env    *Environment
}

// IsNil is always false.
func (c *Closure) IsNil() bool { return c == nil }

// IsAtom is always true.
func (c *Closure) IsAtom() bool { return true }

// IsEqual compares closures by params, body, and captured environment
// identity, per §3.1.
func (c *Closure) IsEqual(other lisp.Object) bool {
	o, ok := other.(*Closure)
	if !ok {
		return false
	}
	return c.Params.IsEqual(o.Params) && c.Body.IsEqual(o.Body) && c.Env == o.Env
}

// String returns the debug representation.
func (c *Closure) String() string { return lisp.Repr(c) }

// Print writes "#<closure PARAMS BODY>".
func (c *Closure) Print(w io.Writer) (int, error) {
	total, err := io.WriteString(w, "#<closure ")
	if err != nil {
		return total, err
	}
	n, err := lisp.Print(w, c.Params)
	total += n
	if err != nil {
		return total, err
	}
	n, err = io.WriteString(w, " ")
	total += n
	if err != nil {
		return total, err
	}
	n, err = lisp.Print(w, c.Body)
	total += n
	if err != nil {
		return total, err
	}
	n, err = io.WriteString(w, ">")
	total += n
	return total, err
}

// Cont is a reified, first-class continuation: a deep snapshot of the
// machine at the point call/cc captured it. Applying a Cont to one
// argument replaces the whole machine with the snapshot and substitutes
// the argument for the call/cc expression's value.
type Cont struct {
	snapshot *snapshot
}

// IsNil is always false.
func (c *Cont) IsNil() bool { return c == nil }

// IsAtom is always true.
func (c *Cont) IsAtom() bool { return true }

// IsEqual compares by pointer identity: two captures are never the same
// continuation unless they are literally the same value.
func (c *Cont) IsEqual(other lisp.Object) bool {
	o, ok := other.(*Cont)
	return ok && c == o
}

// String returns the debug representation.
func (c *Cont) String() string { return lisp.Repr(c) }

// Print writes "#<subr continuation>", matching the source's printed form
// (§9): a Cont prints like a subr, not like a distinct kind.
func (c *Cont) Print(w io.Writer) (int, error) {
	return io.WriteString(w, "#<subr continuation>")
}
