package lispreader_test

import (
	"io"
	"strings"
	"testing"

	"github.com/sxlisp/golisp"
	"github.com/sxlisp/golisp/lispreader"
)

func readOne(t *testing.T, src string) lisp.Object {
	t.Helper()
	rd := lispreader.New(strings.NewReader(src), "<test>")
	v, err := rd.Read()
	if err != nil {
		t.Fatalf("Read(%q): %v", src, err)
	}
	return v
}

func TestReadAtoms(t *testing.T) {
	cases := map[string]string{
		"42":     "42",
		"-3.5":   "-3.5",
		"#t":     "#t",
		"#f":     "#f",
		"foo":    "foo",
		"+":      "+",
		"list->": "list->",
	}
	for src, want := range cases {
		got := lisp.Repr(readOne(t, src))
		if got != want {
			t.Errorf("Repr(Read(%q)) = %q, want %q", src, got, want)
		}
	}
}

func TestReadList(t *testing.T) {
	got := lisp.Repr(readOne(t, "(1 2 3)"))
	if got != "(1 2 3)" {
		t.Errorf("got %q", got)
	}
}

func TestReadEmptyList(t *testing.T) {
	got := lisp.Repr(readOne(t, "()"))
	if got != "()" {
		t.Errorf("got %q", got)
	}
}

func TestReadDottedPair(t *testing.T) {
	got := lisp.Repr(readOne(t, "(1 . 2)"))
	if got != "(1 . 2)" {
		t.Errorf("got %q", got)
	}
}

func TestReadQuoteShorthand(t *testing.T) {
	got := lisp.Repr(readOne(t, "'x"))
	if got != "(quote x)" {
		t.Errorf("got %q", got)
	}
}

func TestReadNestedList(t *testing.T) {
	got := lisp.Repr(readOne(t, "(lambda (x) (+ x 1))"))
	if got != "(lambda (x) (+ x 1))" {
		t.Errorf("got %q", got)
	}
}

func TestReadSkipsComments(t *testing.T) {
	got := lisp.Repr(readOne(t, "; a comment\n42"))
	if got != "42" {
		t.Errorf("got %q", got)
	}
}

func TestReadAllStopsAtEOF(t *testing.T) {
	rd := lispreader.New(strings.NewReader("1 2 3"), "<test>")
	forms, err := rd.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(forms) != 3 {
		t.Fatalf("got %d forms, want 3", len(forms))
	}
}

func TestReadEmptyInputIsEOF(t *testing.T) {
	rd := lispreader.New(strings.NewReader(""), "<test>")
	_, err := rd.Read()
	if err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestUnmatchedCloseParenIsSyntaxError(t *testing.T) {
	rd := lispreader.New(strings.NewReader(")"), "<test>")
	_, err := rd.Read()
	var synErr *lispreader.SyntaxError
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	if !asSyntaxError(err, &synErr) {
		t.Fatalf("got %v (%T), want *lispreader.SyntaxError", err, err)
	}
}

func asSyntaxError(err error, target **lispreader.SyntaxError) bool {
	se, ok := err.(*lispreader.SyntaxError)
	if ok {
		*target = se
	}
	return ok
}
