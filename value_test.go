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

package lisp_test

import (
	"testing"

	"github.com/sxlisp/golisp"
)

func TestBoolPrint(t *testing.T) {
	if lisp.Repr(lisp.True) != "#t" {
		t.Errorf("Repr(True) = %q", lisp.Repr(lisp.True))
	}
	if lisp.Repr(lisp.False) != "#f" {
		t.Errorf("Repr(False) = %q", lisp.Repr(lisp.False))
	}
}

func TestNumPrintShortestRoundTrip(t *testing.T) {
	cases := map[lisp.Num]string{
		6:    "6",
		-1.5: "-1.5",
		0:    "0",
	}
	for n, want := range cases {
		if got := lisp.Repr(n); got != want {
			t.Errorf("Repr(%v) = %q, want %q", float64(n), got, want)
		}
	}
}

func TestIdentPrintIsBareName(t *testing.T) {
	if got, want := lisp.Repr(lisp.Ident("foo?")), "foo?"; got != want {
		t.Errorf("Repr = %q, want %q", got, want)
	}
}

func TestIsNilTreatsNilInterfaceAndEmptyListAlike(t *testing.T) {
	if !lisp.IsNil(nil) {
		t.Errorf("IsNil(nil) should be true")
	}
	if !lisp.IsNil(lisp.Nil()) {
		t.Errorf("IsNil(Nil()) should be true")
	}
	if lisp.IsNil(lisp.Num(0)) {
		t.Errorf("IsNil(Num(0)) should be false")
	}
}
