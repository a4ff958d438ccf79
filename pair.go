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

package lisp

import (
	"io"
	"strings"
)

// Pair is a cons cell: a car and a cdr, each a ref-value in the sense of
// §3.1 — a shared, mutable handle compared by pointer identity. A *Pair
// itself plays that role: its fields are mutated only by the parser, to
// stitch a dotted tail after the tail value is known, and never by the
// evaluator once a value has been published.
type Pair struct {
	car Object
	cdr Object
}

// Nil returns the empty list.
func Nil() *Pair { return (*Pair)(nil) }

// Cons creates a pair.
func Cons(car, cdr Object) *Pair { return &Pair{car: car, cdr: cdr} }

// MakeList creates a proper list from the given objects.
func MakeList(objs ...Object) *Pair {
	var lb ListBuilder
	for _, obj := range objs {
		lb.Add(obj)
	}
	return lb.List()
}

// IsNil reports whether pair is the empty list.
func (pair *Pair) IsNil() bool { return pair == nil }

// IsAtom reports whether pair is the empty list (the only atomic Pair).
func (pair *Pair) IsAtom() bool { return pair == nil }

// IsEqual compares two objects structurally.
func (pair *Pair) IsEqual(other Object) bool {
	if pair == other {
		return true
	}
	if pair.IsNil() {
		return IsNil(other)
	}
	otherPair, ok := other.(*Pair)
	if !ok {
		return false
	}
	for node, otherNode := pair, otherPair; ; {
		if node == nil || otherNode == nil {
			return node == otherNode
		}
		if !node.car.IsEqual(otherNode.car) {
			return false
		}
		cdr, otherCdr := node.cdr, otherNode.cdr
		next, isPair := cdr.(*Pair)
		otherNext, otherIsPair := otherCdr.(*Pair)
		if !isPair || !otherIsPair {
			if IsNil(cdr) && IsNil(otherCdr) {
				return true
			}
			return cdr.IsEqual(otherCdr)
		}
		node, otherNode = next, otherNext
	}
}

// String returns the debug representation (same as the printed form: Pair
// has no separate debug grammar).
func (pair *Pair) String() string {
	var sb strings.Builder
	_, _ = pair.Print(&sb)
	return sb.String()
}

// Print writes the printed-value-grammar representation to w: "()" for the
// empty list, "(e1 e2 … eN)" for proper lists, "(e1 … . tail)" for improper
// ones.
func (pair *Pair) Print(w io.Writer) (int, error) {
	if pair == nil {
		return io.WriteString(w, "()")
	}
	total, err := io.WriteString(w, "(")
	if err != nil {
		return total, err
	}
	for node := pair; ; {
		if node != pair {
			n, err := io.WriteString(w, " ")
			total += n
			if err != nil {
				return total, err
			}
		}
		n, err := Print(w, node.car)
		total += n
		if err != nil {
			return total, err
		}
		if IsNil(node.cdr) {
			break
		}
		if next, ok := node.cdr.(*Pair); ok {
			node = next
			continue
		}
		n, err = io.WriteString(w, " . ")
		total += n
		if err != nil {
			return total, err
		}
		n, err = Print(w, node.cdr)
		total += n
		if err != nil {
			return total, err
		}
		break
	}
	n, err := io.WriteString(w, ")")
	total += n
	return total, err
}

// Car returns the first element, or Nil() if pair is the empty list.
func (pair *Pair) Car() Object {
	if pair == nil {
		return Nil()
	}
	return pair.car
}

// Cdr returns the rest of the list, or Nil() if pair is the empty list.
func (pair *Pair) Cdr() Object {
	if pair == nil {
		return Nil()
	}
	return pair.cdr
}

// SetCar mutates the car in place.
func (pair *Pair) SetCar(obj Object) {
	if pair != nil {
		pair.car = obj
	}
}

// SetCdr mutates the cdr in place. (The parser stitches dotted tails
// through ListBuilder.SetTail.)
func (pair *Pair) SetCdr(obj Object) {
	if pair != nil {
		pair.cdr = obj
	}
}

// Tail returns the cdr as a *Pair, or nil if it is not one.
func (pair *Pair) Tail() *Pair {
	if pair != nil {
		if tail, ok := pair.cdr.(*Pair); ok {
			return tail
		}
	}
	return nil
}

// ListBuilder appends to a list sequentially from head to tail.
type ListBuilder struct {
	first, last *Pair
}

// Add appends obj to the list under construction.
func (lb *ListBuilder) Add(obj Object) {
	elem := Cons(obj, nil)
	if lb.first == nil {
		lb.first = elem
		lb.last = elem
		return
	}
	lb.last.cdr = elem
	lb.last = elem
}

// List returns the built list without resetting the builder.
func (lb *ListBuilder) List() *Pair { return lb.first }

// SetTail stitches a (possibly improper) tail onto the list under
// construction, e.g. for a parsed dotted pair `(a b . c)`.
func (lb *ListBuilder) SetTail(obj Object) {
	if lb.last != nil {
		lb.last.cdr = obj
	}
}
