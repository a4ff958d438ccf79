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

// Package lisp provides the value model of a minimal Lisp dialect: the
// tagged sum of runtime data that the evaluator in package lispvm reduces.
package lisp

import (
	"fmt"
	"io"
	"strings"
)

// Object is the generic value every piece of Lisp data must implement.
type Object interface {
	fmt.Stringer

	// IsNil reports whether the concrete object is the empty list.
	IsNil() bool

	// IsAtom reports whether the object is not further decomposable.
	IsAtom() bool

	// IsEqual compares two objects for deep, structural equality.
	IsEqual(Object) bool
}

// IsNil returns true if obj is nil or is the empty list.
func IsNil(obj Object) bool { return obj == nil || obj.IsNil() }

// Printable is an object whose textual form (per the printed-value grammar)
// differs from its debug String().
type Printable interface {
	Print(io.Writer) (int, error)
}

// Print writes the printed-value-grammar representation of obj to w.
func Print(w io.Writer, obj Object) (int, error) {
	if IsNil(obj) {
		return io.WriteString(w, "()")
	}
	if pr, ok := obj.(Printable); ok {
		return pr.Print(w)
	}
	return io.WriteString(w, obj.String())
}

// Repr renders obj using Print into a string.
func Repr(obj Object) string {
	var sb strings.Builder
	_, _ = Print(&sb, obj)
	return sb.String()
}
