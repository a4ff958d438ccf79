package lispvm_test

import (
	"strings"
	"testing"

	"github.com/sxlisp/golisp"
	"github.com/sxlisp/golisp/lispreader"
	"github.com/sxlisp/golisp/lispvm"
)

// evalAll reduces every top-level form in src against a single machine,
// returning the result of the last one. Mirrors a REPL session where
// earlier defines remain visible to later forms.
func evalAll(t *testing.T, src string) lisp.Object {
	t.Helper()
	rd := lispreader.New(strings.NewReader(src), "<test>")
	forms, err := rd.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", src, err)
	}
	if len(forms) == 0 {
		t.Fatalf("no forms in %q", src)
	}
	m := lispvm.NewMachine(lispvm.NewGlobalEnvironment())
	var result lisp.Object
	for _, form := range forms {
		result, err = m.Eval(form)
		if err != nil {
			t.Fatalf("Eval(%q): %v", src, err)
		}
	}
	return result
}

func evalAllExpectErr(t *testing.T, src string) error {
	t.Helper()
	rd := lispreader.New(strings.NewReader(src), "<test>")
	forms, err := rd.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll(%q): %v", src, err)
	}
	m := lispvm.NewMachine(lispvm.NewGlobalEnvironment())
	for _, form := range forms {
		if _, err := m.Eval(form); err != nil {
			return err
		}
	}
	return nil
}

func wantRepr(t *testing.T, src, want string) {
	t.Helper()
	got := lisp.Repr(evalAll(t, src))
	if got != want {
		t.Errorf("eval(%q) = %q, want %q", src, got, want)
	}
}

func TestArithmeticFolds(t *testing.T) {
	wantRepr(t, "(+ 1 2 3)", "6")
	wantRepr(t, "(* 2 3 4)", "24")
	wantRepr(t, "(+)", "0")
	wantRepr(t, "(*)", "1")
}

func TestQuoteIsIdentity(t *testing.T) {
	wantRepr(t, "(eqv? (quote a) (quote a))", "#t")
	wantRepr(t, "(eqv? (quote (1 2)) (quote (1 2)))", "#t")
}

func TestLexicalScope(t *testing.T) {
	wantRepr(t, "((lambda (x) ((lambda (y) x) 2)) 1)", "1")
}

func TestClosureCapturesEnvironmentByReference(t *testing.T) {
	wantRepr(t, "(define a 1) (define f (lambda () a)) (define a 2) (f)", "2")
}

func TestTailCallBoundedness(t *testing.T) {
	wantRepr(t, `
		(define (loop n) (if (= n 0) 'done (loop (- n 1))))
		(loop 1000000)
	`, "done")
}

func TestContinuationRoundTrip(t *testing.T) {
	wantRepr(t, "(call/cc (lambda (k) (k 42)))", "42")
	wantRepr(t, "(+ 1 (call/cc (lambda (k) (k 10))))", "11")
	wantRepr(t, "(+ 1 (call/cc (lambda (k) (+ 20 (k 10)))))", "11")
}

func TestIfSemantics(t *testing.T) {
	wantRepr(t, "(if #f 'a 'b)", "b")
	wantRepr(t, "(if #t 'a 'b)", "a")

	err := evalAllExpectErr(t, "(if '() 'a 'b)")
	if err == nil {
		t.Fatal("expected a type mismatch error")
	}
	if _, ok := err.(*lispvm.TypeMismatchError); !ok {
		t.Fatalf("got %T (%v), want *lispvm.TypeMismatchError", err, err)
	}
}

func TestIfWithoutElseDefaultsToNull(t *testing.T) {
	wantRepr(t, "(if #f 'a)", "()")
}

func TestFactorialScenario(t *testing.T) {
	wantRepr(t, `
		(define (fact n) (if (= n 0) 1 (* n (fact (- n 1)))))
		(fact 5)
	`, "120")
}

func TestLambdaApplicationScenario(t *testing.T) {
	wantRepr(t, "((lambda (x y) (+ x y)) 3 4)", "7")
}

func TestCarCdrScenario(t *testing.T) {
	wantRepr(t, "(car (cdr (quote (1 2 3))))", "2")
}

func TestUnboundVariableError(t *testing.T) {
	err := evalAllExpectErr(t, "unknown-name")
	if err == nil {
		t.Fatal("expected an unbound variable error")
	}
	if _, ok := err.(*lispvm.UnboundVariableError); !ok {
		t.Fatalf("got %T (%v), want *lispvm.UnboundVariableError", err, err)
	}
}

func TestInvalidApplicationError(t *testing.T) {
	err := evalAllExpectErr(t, "(1 2 3)")
	if err == nil {
		t.Fatal("expected an invalid application error")
	}
	if _, ok := err.(*lispvm.InvalidApplicationError); !ok {
		t.Fatalf("got %T (%v), want *lispvm.InvalidApplicationError", err, err)
	}
}

// TestEmptyListSelfEvaluatesToNull exercises the zero-argument-application
// detection in complete(): a literal () appearing where a sub-expression
// is expected produces Null directly, without ever reaching a callee slot.
func TestEmptyListSelfEvaluatesToNull(t *testing.T) {
	wantRepr(t, "()", "()")
	wantRepr(t, "(car (quote (())))", "()")
}

func TestPrintedRoundTrip(t *testing.T) {
	rd := lispreader.New(strings.NewReader("(1 #t foo (2 . 3) ())"), "<test>")
	form, err := rd.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	printed := lisp.Repr(form)

	rd2 := lispreader.New(strings.NewReader(printed), "<test>")
	reparsed, err := rd2.Read()
	if err != nil {
		t.Fatalf("Read(%q): %v", printed, err)
	}
	if !form.IsEqual(reparsed) {
		t.Fatalf("printed form %q did not round-trip: got %q", printed, lisp.Repr(reparsed))
	}
}
