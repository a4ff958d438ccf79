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

// Package lispvm implements the evaluator: the environment, the value
// kinds a lisp.Object cannot itself express (special forms, primitives,
// closures, continuations), and the stack-based trampoline that reduces a
// parsed value tree to a result.
package lispvm

import (
	"github.com/sxlisp/golisp"
)

// Environment is a chained identifier→value mapping, per §3.2: a single
// shallow frame plus an optional parent. extend is cheap (one map alloc);
// lookup walks inner-to-outer; define only ever touches the innermost
// frame, so later defines into a captured environment remain visible to
// every closure that captured it.
type Environment struct {
	vars   map[string]lisp.Object
	parent *Environment
}

// NewEnvironment creates a new, empty environment frame chained to parent.
// parent may be nil to create a root environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]lisp.Object), parent: parent}
}

// Define binds name to value in the innermost frame, overwriting any
// existing same-level binding. It never reaches into an ancestor frame.
func (e *Environment) Define(name string, value lisp.Object) {
	e.vars[name] = value
}

// Lookup searches this frame, then its ancestors, returning the first
// match.
func (e *Environment) Lookup(name string) (lisp.Object, bool) {
	for cur := e; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Names returns every identifier known on the chain, innermost first, for
// diagnostics ("did you mean" suggestions).
func (e *Environment) Names() []string {
	var names []string
	for cur := e; cur != nil; cur = cur.parent {
		for name := range cur.vars {
			names = append(names, name)
		}
	}
	return names
}
