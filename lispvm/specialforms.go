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

// takeArg peels the head off m.PP, reseating m.PP to the rest. It fails
// if m.PP is not a pair, i.e. a special form was given too few tail
// items.
func (m *Machine) takeArg() (lisp.Object, error) {
	pair, ok := m.PP.(*lisp.Pair)
	if !ok {
		return nil, &SyntaxError{Msg: "expected an argument"}
	}
	head := pair.Car()
	m.PP = pair.Cdr()
	return head, nil
}

func (m *Machine) atEnd() bool { return lisp.IsNil(m.PP) }

// quoteSyntax implements §4.1.4 quote: exactly one tail item, returned
// verbatim.
func quoteSyntax(m *Machine) error {
	v, err := m.takeArg()
	if err != nil {
		return err
	}
	if !m.atEnd() {
		return &SyntaxError{Msg: "quote: too many arguments"}
	}
	m.Return(v)
	return nil
}

// lambdaSyntax implements §4.1.4 lambda: two tail items, params and
// body, neither evaluated.
func lambdaSyntax(m *Machine) error {
	params, err := m.takeArg()
	if err != nil {
		return &SyntaxError{Msg: "lambda: missing parameter list"}
	}
	body, err := m.takeArg()
	if err != nil {
		return &SyntaxError{Msg: "lambda: missing body"}
	}
	if !m.atEnd() {
		return &SyntaxError{Msg: "lambda: too many arguments"}
	}
	m.Return(&Closure{Params: params, Body: body, Env: m.Env})
	return nil
}

// defineSyntax implements §4.1.4 define, phase 1.
func defineSyntax(m *Machine) error {
	head, err := m.takeArg()
	if err != nil {
		return &SyntaxError{Msg: "define: missing target"}
	}
	switch h := head.(type) {
	case lisp.Ident:
		m.Stack = m.Stack[:m.SP]
		m.Stack = append(m.Stack, stackVal{v: &Syntax{Name: "define2", Fn: define2Syntax}})
		m.Stack = append(m.Stack, stackVal{v: h})
		return nil
	case *lisp.Pair:
		name, ok := h.Car().(lisp.Ident)
		if !ok {
			return &SyntaxError{Msg: "define: function name is not an identifier"}
		}
		body, err := m.takeArg()
		if err != nil {
			return &SyntaxError{Msg: "define: missing function body"}
		}
		if !m.atEnd() {
			return &SyntaxError{Msg: "define: too many arguments"}
		}
		m.Env.Define(string(name), &Closure{Params: h.Cdr(), Body: body, Env: m.Env})
		m.Return(lisp.True)
		return nil
	default:
		return &SyntaxError{Msg: "define: target must be an identifier or (name . params)"}
	}
}

// define2Syntax is the second phase staged by defineSyntax: it runs once
// the value expression has been reduced, with stack layout
// [..., define2-marker@sp, name@sp+1, value@sp+2].
func define2Syntax(m *Machine) error {
	if !m.atEnd() {
		return &SyntaxError{Msg: "define: too many arguments"}
	}
	if len(m.Stack) < m.SP+3 {
		return &SyntaxError{Msg: "define: missing value"}
	}
	valueEntry, ok := m.Stack[m.SP+2].(stackVal)
	if !ok {
		return &InternalError{Msg: "define2: value slot is not a Val"}
	}
	nameEntry, ok := m.Stack[m.SP+1].(stackVal)
	if !ok {
		return &InternalError{Msg: "define2: name slot is not a Val"}
	}
	name, ok := nameEntry.v.(lisp.Ident)
	if !ok {
		return &InternalError{Msg: "define2: name slot is not an Ident"}
	}
	m.Env.Define(string(name), valueEntry.v)
	m.Return(lisp.True)
	return nil
}

// ifSyntax implements §4.1.4 if, phase 1: stage if2 and let the test
// expression evaluate normally.
func ifSyntax(m *Machine) error {
	m.Stack = m.Stack[:m.SP]
	m.Stack = append(m.Stack, stackVal{v: &Syntax{Name: "if2", Fn: if2Syntax}})
	return nil
}

// if2Syntax runs once the test expression has been reduced; its value
// sits on top of the stack, above the if2 marker.
func if2Syntax(m *Machine) error {
	if len(m.Stack) < m.SP+2 {
		// No test expression was given, e.g. (if): the marker itself is
		// on top, not a reduced test value.
		return &SyntaxError{Msg: "if: missing test"}
	}
	top, ok := m.Stack[len(m.Stack)-1].(stackVal)
	if !ok {
		return &InternalError{Msg: "if2: test slot is not a Val"}
	}
	b, ok := top.v.(lisp.Bool)
	if !ok {
		return &TypeMismatchError{Want: "boolean", Got: top.v}
	}
	m.Stack = m.Stack[:len(m.Stack)-1]

	if !bool(b) {
		if _, err := m.takeArg(); err != nil {
			return &SyntaxError{Msg: "if: missing then-branch"}
		}
	}
	branch, err := m.takeArg()
	if err != nil {
		// Tie-break per §9: a missing else branch defaults to Null.
		branch = lisp.Nil()
	}
	m.PP = branch
	m.Stack = m.Stack[:m.SP]
	return nil
}

// callCCSyntax implements §4.1.4 call/cc, phase 1.
func callCCSyntax(m *Machine) error {
	m.Stack = m.Stack[:m.SP]
	m.Stack = append(m.Stack, stackVal{v: &Syntax{Name: "call/cc2", Fn: callCC2Syntax}})
	return nil
}

// callCC2Syntax runs once the proc expression has been reduced to a
// value (expected to be a Closure), which sits on top of the stack above
// the call/cc2 marker.
func callCC2Syntax(m *Machine) error {
	if len(m.Stack) == 0 {
		return &InternalError{Msg: "call/cc2: missing proc value"}
	}
	procEntry, ok := m.Stack[len(m.Stack)-1].(stackVal)
	if !ok {
		return &InternalError{Msg: "call/cc2: proc slot is not a Val"}
	}
	closure, ok := procEntry.v.(*Closure)
	if !ok {
		return &SyntaxError{Msg: "call/cc: argument must evaluate to a closure"}
	}

	snap := m.snapshotNow()

	m.Stack = m.Stack[:m.SP]
	m.Stack = append(m.Stack, stackVal{v: closure})
	m.Stack = append(m.Stack, stackVal{v: &Cont{snapshot: snap}})
	return nil
}
