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
	"github.com/sxlisp/golisp"
)

// stackEntry is the sum type described in §3.3: a StackEntry is one of
// stackVal, stackFrame, or stackEnv.
type stackEntry interface{ isStackEntry() }

// stackVal holds an evaluated sub-result, or the callee in slot sp.
type stackVal struct{ v lisp.Object }

// stackFrame is a return record pushed when descending into a compound
// expression: saved_sp and saved_pp, restored on completion.
type stackFrame struct {
	savedSP int
	savedPP lisp.Object
}

// stackEnv is a saved environment, restored when a non-tail procedure
// call returns.
type stackEnv struct{ env *Environment }

func (stackVal) isStackEntry()   {}
func (stackFrame) isStackEntry() {}
func (stackEnv) isStackEntry()   {}

// Machine is the evaluator's state, per §3.3: a program pointer, a frame
// pointer into the data stack, a result register, the data stack itself,
// and the current environment. A single Machine is reused across
// top-level forms within one REPL session so that top-level defines
// remain visible, and so continuations captured in one form can be
// invoked from a later one.
type Machine struct {
	PP    lisp.Object
	SP    int
	RR    lisp.Object
	Stack []stackEntry
	Env   *Environment

	// Debug, when set, is called with the machine before each trampoline
	// iteration, so a driver can trace its state (the --debug/-d flag).
	Debug func(m *Machine)
}

// NewMachine creates an evaluator whose top-level environment is env.
func NewMachine(env *Environment) *Machine {
	return &Machine{Env: env}
}

// snapshot is a deep-enough copy of the machine for a reified
// continuation: the stack slice is copied so that later machine mutation
// cannot alias it, but the lisp.Objects it references — and the
// environment — remain shared, per §9: "shared sub-structure remains
// shared in the copy," which is safe because evaluation never mutates
// cons cells once published.
type snapshot struct {
	pp    lisp.Object
	sp    int
	rr    lisp.Object
	stack []stackEntry
	env   *Environment
}

func (m *Machine) snapshotNow() *snapshot {
	st := make([]stackEntry, len(m.Stack))
	copy(st, m.Stack)
	return &snapshot{pp: m.PP, sp: m.SP, rr: m.RR, stack: st, env: m.Env}
}

// Eval reduces form to a value, driving the trampoline to completion.
// The machine's environment persists across calls; its pp/sp/rr/stack are
// reset for each new top-level form.
func (m *Machine) Eval(form lisp.Object) (lisp.Object, error) {
	m.PP = lisp.Cons(form, lisp.Nil())
	m.SP = -1
	m.Stack = m.Stack[:0]
	m.RR = lisp.Nil()
	env := m.Env
	for {
		if m.Debug != nil {
			m.Debug(m)
		}
		done, err := m.step()
		if err != nil {
			m.Env = env
			return nil, err
		}
		if done {
			return m.RR, nil
		}
	}
}

// step performs exactly one descend-or-complete iteration of the
// trampoline (§4.1). done is true once the outermost expression has been
// fully reduced.
func (m *Machine) step() (done bool, err error) {
	if lisp.IsNil(m.PP) {
		return m.complete()
	}
	return false, m.descend()
}

// descend implements §4.1.1.
func (m *Machine) descend() error {
	switch v := m.PP.(type) {
	case *lisp.Pair:
		m.Stack = append(m.Stack, stackFrame{savedSP: m.SP, savedPP: v.Cdr()})
		m.SP = len(m.Stack)
		m.PP = v.Car()
		return nil
	case lisp.Ident:
		val, ok := m.Env.Lookup(string(v))
		if !ok {
			return &UnboundVariableError{Name: string(v), Suggestion: m.suggest(string(v))}
		}
		m.RR = val
		m.PP = lisp.Nil()
		m.SP--
		return nil
	default:
		// Bool, Num, and any value re-fed as pp (e.g. an already-evaluated
		// Closure/Subr/Syntax/Cont) self-evaluate.
		m.RR = v
		m.PP = lisp.Nil()
		m.SP--
		return nil
	}
}

// complete implements §4.1.2.
func (m *Machine) complete() (bool, error) {
	if m.SP == len(m.Stack) {
		// Zero-argument application: no argument was collected under the
		// current frame.
		m.RR = lisp.Nil()
		m.SP--
		return false, nil
	}
	if m.SP < 0 {
		return true, nil
	}
	entry := m.Stack[m.SP]
	switch e := entry.(type) {
	case stackFrame:
		m.Stack = m.Stack[:m.SP]
		m.PP = e.savedPP
		m.SP = e.savedSP
		m.Stack = append(m.Stack, stackVal{v: m.RR})
		if m.SP >= 0 && m.SP < len(m.Stack) {
			if sv, ok := m.Stack[m.SP].(stackVal); ok {
				if syn, ok := sv.v.(*Syntax); ok {
					return false, syn.Fn(m)
				}
			}
		}
		return false, nil
	case stackVal:
		return false, m.dispatch(e.v)
	case stackEnv:
		m.Env = e.env
		m.SP--
		return false, nil
	}
	return false, &InternalError{Msg: "unrecognized stack entry"}
}

// dispatch applies callee, the value sitting in the callee slot, to the
// already-evaluated arguments above it.
func (m *Machine) dispatch(callee lisp.Object) error {
	switch c := callee.(type) {
	case *Syntax:
		return c.Fn(m)
	case *Subr:
		v, err := c.Call(m, m.argsAbove(m.SP))
		if err != nil {
			return err
		}
		m.Return(v)
		return nil
	case *Closure:
		return m.applyClosure(c)
	case *Cont:
		return m.applyCont(c)
	default:
		return &InvalidApplicationError{Value: callee}
	}
}

// argsAbove reads the already-evaluated argument slots above index sp.
func (m *Machine) argsAbove(sp int) []lisp.Object {
	tail := m.Stack[sp+1:]
	args := make([]lisp.Object, len(tail))
	for i, entry := range tail {
		v, ok := entry.(stackVal)
		if !ok {
			// An internal-error condition: non-Val entries never appear
			// above a resolved callee slot.
			args[i] = lisp.Nil()
			continue
		}
		args[i] = v.v
	}
	return args
}

// Return delivers v as the result of the current call: ret(v) of §4.1.3.
func (m *Machine) Return(v lisp.Object) {
	m.RR = v
	m.Stack = m.Stack[:m.SP]
	m.SP--
}

// applyClosure implements the Closure row of §4.1.2, including the
// tail-call-optimization check.
func (m *Machine) applyClosure(c *Closure) error {
	args := m.argsAbove(m.SP)
	extended := NewEnvironment(c.Env)
	i, params := 0, c.Params
	for !lisp.IsNil(params) {
		pair, ok := params.(*lisp.Pair)
		if !ok {
			return &SyntaxError{Msg: "closure parameter list is improper"}
		}
		name, ok := pair.Car().(lisp.Ident)
		if !ok {
			return &SyntaxError{Msg: "closure parameter is not an identifier"}
		}
		if i >= len(args) {
			return &SyntaxError{Msg: "too few arguments to closure"}
		}
		extended.Define(string(name), args[i])
		i++
		params = pair.Cdr()
	}
	if i != len(args) {
		return &SyntaxError{Msg: "too many arguments to closure"}
	}

	m.Stack = m.Stack[:m.SP]
	m.PP = c.Body

	if m.SP-1 >= 0 {
		if _, isEnv := m.Stack[m.SP-1].(stackEnv); isEnv {
			m.Env = extended
			return nil
		}
	}
	m.Stack = append(m.Stack, stackEnv{env: m.Env})
	m.Env = extended
	m.SP++
	return nil
}

// applyCont implements the Cont row of §4.1.2: invoking a first-class
// continuation discards the current machine and resumes the captured
// one, with the call's single argument substituted as the result of the
// call/cc expression that produced it.
func (m *Machine) applyCont(c *Cont) error {
	args := m.argsAbove(m.SP)
	if len(args) != 1 {
		return &SyntaxError{Msg: "continuation expects exactly one argument"}
	}
	arg := args[0]
	snap := c.snapshot
	m.PP = snap.pp
	m.SP = snap.sp
	m.Stack = append([]stackEntry(nil), snap.stack...)
	m.Env = snap.env
	m.RR = arg
	m.Stack = m.Stack[:m.SP]
	m.SP--
	return nil
}
