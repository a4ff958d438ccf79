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

	"github.com/sxlisp/golisp"
)

// SyntaxError reports a parser rejection or a special-form misuse: wrong
// arity or shape.
type SyntaxError struct{ Msg string }

func (e *SyntaxError) Error() string { return "syntax error: " + e.Msg }

// TypeMismatchError reports a primitive receiving a value of an
// incompatible kind.
type TypeMismatchError struct {
	Want string
	Got  lisp.Object
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: expected %s, got %s", e.Want, lisp.Repr(e.Got))
}

// UnboundVariableError reports an identifier absent from the whole
// environment chain. Suggestion, when non-empty, names the closest known
// identifier (see fuzzy.go).
type UnboundVariableError struct {
	Name       string
	Suggestion string
}

func (e *UnboundVariableError) Error() string {
	if e.Suggestion == "" {
		return "unbound variable: " + e.Name
	}
	return fmt.Sprintf("unbound variable: %s (did you mean %s?)", e.Name, e.Suggestion)
}

// InvalidApplicationError reports a callee slot holding a non-callable
// value.
type InvalidApplicationError struct{ Value lisp.Object }

func (e *InvalidApplicationError) Error() string {
	return "invalid application: " + lisp.Repr(e.Value)
}

// InternalError reports one of the machine's own invariants being
// violated — a bug in the interpreter, never a consequence of user input.
type InternalError struct{ Msg string }

func (e *InternalError) Error() string { return "internal error: " + e.Msg }
