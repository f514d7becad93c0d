package eval

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nib/lexer"
	"nib/parser"
)

// testParse is a helper to lex and parse a string of code.
func testParse(t *testing.T, input string) *parser.Module {
	t.Helper()
	l := lexer.New("<test>", input)
	l.ScanTokens()
	if len(l.Errors) != 0 {
		t.Fatalf("unexpected lexer errors: %v", l.Errors)
	}
	p := parser.New("<test>", l.Tokens)
	module := p.Parse()
	if len(p.Errors) != 0 {
		t.Fatalf("unexpected parser errors: %v", p.Errors)
	}
	return module
}

// testEval runs a program with the builtins installed and returns the
// value of its last statement plus everything it printed.
func testEval(t *testing.T, input string) (Value, *Error, string) {
	t.Helper()
	var out bytes.Buffer
	ctx := NewContext(&out)
	Install(ctx)
	rv, err := ctx.Execute(testParse(t, input))
	return rv, err, out.String()
}

func mustEval(t *testing.T, input string) (Value, string) {
	t.Helper()
	rv, err, out := testEval(t, input)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	return rv, out
}

func mustFail(t *testing.T, input string, kind ErrorKind) *Error {
	t.Helper()
	_, err, _ := testEval(t, input)
	if err == nil {
		t.Fatalf("expected a %s error, got none", kind)
	}
	if err.Kind != kind {
		t.Fatalf("expected a %s error, got %s: %s", kind, err.Kind, err)
	}
	return err
}

// =========
// Scoping
// =========

func TestBlockScoping(t *testing.T) {
	rv, _ := mustEval(t, `
		var x = 1;
		{
			var x = 2;
			x = 3;
		}
		x;
	`)
	if rv != Number(1) {
		t.Fatalf("expected the outer binding to be unaffected, got %#v", rv)
	}
}

func TestBlockBindingsDoNotLeak(t *testing.T) {
	mustFail(t, `{ var x = 1; } x;`, ERR_UNKNOWN_NAME)
}

func TestInnerBlockMutatesOuter(t *testing.T) {
	rv, _ := mustEval(t, `
		var x = 1;
		{ x = 2; }
		x;
	`)
	if rv != Number(2) {
		t.Fatalf("expected assignment to reach the outer node, got %#v", rv)
	}
}

// ===============
// Closure capture
// ===============

func TestClosureSeesLaterMutation(t *testing.T) {
	// the closure captures the environment node, not a snapshot of
	// the value, so a mutation after definition is visible at call time.
	rv, _ := mustEval(t, `
		var x = 1;
		fun get() { return x; }
		x = 42;
		get();
	`)
	if rv != Number(42) {
		t.Fatalf("expected 42, got %#v", rv)
	}
}

func TestClosureMutatesDefiningScope(t *testing.T) {
	rv, _ := mustEval(t, `
		var count = 0;
		fun bump() { count = count + 1; return count; }
		bump();
		bump();
		bump();
		count;
	`)
	if rv != Number(3) {
		t.Fatalf("expected 3, got %#v", rv)
	}
}

func TestClosureOutlivesBlock(t *testing.T) {
	rv, _ := mustEval(t, `
		var get;
		{
			var hidden = 7;
			fun peek() { return hidden; }
			get = peek;
		}
		get();
	`)
	if rv != Number(7) {
		t.Fatalf("expected the block scope to survive via the closure, got %#v", rv)
	}
}

func TestLexicalNotDynamicScope(t *testing.T) {
	// f reads the x at its definition site, not the caller's local.
	rv, _ := mustEval(t, `
		var x = 1;
		fun f() { return x; }
		fun g() { var x = 99; return f(); }
		g();
	`)
	if rv != Number(1) {
		t.Fatalf("expected lexical capture, got %#v", rv)
	}
}

func TestMutualRecursion(t *testing.T) {
	rv, _ := mustEval(t, `
		fun even(n) { if (n == 0) { return true; } return odd(n - 1); }
		fun odd(n) { if (n == 0) { return false; } return even(n - 1); }
		even(10);
	`)
	if rv != TRUE {
		t.Fatalf("expected true, got %#v", rv)
	}
}

// ===================
// Reference semantics
// ===================

func TestArrayAliasing(t *testing.T) {
	rv, _ := mustEval(t, `
		var a = [1, 2, 3];
		var b = a;
		b.push(4);
		a.length;
	`)
	if rv != Number(4) {
		t.Fatalf("expected shared backing storage, got %#v", rv)
	}
}

func TestRecordAliasing(t *testing.T) {
	rv, _ := mustEval(t, `
		var a = { n: 1 };
		var b = a;
		b.n = 2;
		a.n;
	`)
	if rv != Number(2) {
		t.Fatalf("expected shared record storage, got %#v", rv)
	}
}

func TestScalarsCopyByValue(t *testing.T) {
	rv, _ := mustEval(t, `
		var a = 1;
		var b = a;
		b = 2;
		a;
	`)
	if rv != Number(1) {
		t.Fatalf("expected numbers to copy independently, got %#v", rv)
	}
}

func TestUnboundPushStaysBound(t *testing.T) {
	// arr.push is a native bound to its array; it keeps working when
	// passed around as a value.
	rv, _ := mustEval(t, `
		var a = [1];
		var p = a.push;
		p(2);
		p(3);
		a.length;
	`)
	if rv != Number(3) {
		t.Fatalf("expected 3, got %#v", rv)
	}
}

// ===================
// Calls and functions
// ===================

func TestCallIsolation(t *testing.T) {
	// each call gets an independent local node; recursion must not
	// clobber the caller's parameters.
	rv, _ := mustEval(t, `
		fun fib(n) {
			if (n < 2) { return n; }
			return fib(n - 1) + fib(n - 2);
		}
		fib(10);
	`)
	if rv != Number(55) {
		t.Fatalf("expected 55, got %#v", rv)
	}
}

func TestNoImplicitReturn(t *testing.T) {
	rv, _ := mustEval(t, `
		fun f() { 1 + 1; }
		f();
	`)
	if rv != NOTHING {
		t.Fatalf("expected nothing, got %#v", rv)
	}
}

func TestReturnUnwindsLoops(t *testing.T) {
	// while and if must not swallow the return signal.
	rv, _ := mustEval(t, `
		fun first() {
			var i = 0;
			while (true) {
				if (i > 2) { return i; }
				i = i + 1;
			}
		}
		first();
	`)
	if rv != Number(3) {
		t.Fatalf("expected 3, got %#v", rv)
	}
}

func TestMissingArgsBindNothing(t *testing.T) {
	rv, _ := mustEval(t, `
		fun f(a, b) { return repr(b); }
		f(1);
	`)
	if rv != String("nothing") {
		t.Fatalf("expected nothing for the missing argument, got %#v", rv)
	}
}

func TestExtraArgsIgnored(t *testing.T) {
	rv, _ := mustEval(t, `
		fun f(a) { return a; }
		f(1, 2, 3);
	`)
	if rv != Number(1) {
		t.Fatalf("expected 1, got %#v", rv)
	}
}

func TestArgsEvaluatedInCallerEnv(t *testing.T) {
	rv, _ := mustEval(t, `
		var n = 10;
		fun f(n, m) { return m; }
		f(1, n + 1);
	`)
	if rv != Number(11) {
		t.Fatalf("expected arguments evaluated before parameter binding, got %#v", rv)
	}
}

func TestNotCallable(t *testing.T) {
	mustFail(t, `1();`, ERR_NOT_CALLABLE)
	mustFail(t, `"f"();`, ERR_NOT_CALLABLE)
	mustFail(t, `[1]();`, ERR_NOT_CALLABLE)
}

func TestRecursionGuard(t *testing.T) {
	mustFail(t, `fun f() { return f(); } f();`, ERR_RESOURCE_EXHAUSTED)
}

// =========================
// Operators and conditions
// =========================

func TestArithmeticAndComparison(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"1 + 1 == 2;", TRUE},
		{"1 + 2 * 3;", Number(7)},
		{"10 - 3;", Number(7)},
		{"2 * 3 * 4;", Number(24)},
		{"1 != 2;", TRUE},
		{"2 > 1;", TRUE},
		{"2 >= 2;", TRUE},
		{"1 < 1;", FALSE},
		{"1 <= 1;", TRUE},
		{"0 - 5;", Number(-5)},
	}
	for i, tt := range tests {
		rv, _ := mustEval(t, tt.input)
		if rv != tt.want {
			t.Errorf("tests[%d] (%q): expected %#v, got %#v", i, tt.input, tt.want, rv)
		}
	}
}

func TestOperatorTypeMismatch(t *testing.T) {
	inputs := []string{
		`1 + true;`,
		`"a" + "b";`,
		`true == true;`,
		`"a" == "a";`,
		`1 < "2";`,
		`[1] + [2];`,
	}
	for i, input := range inputs {
		_, err, _ := testEval(t, input)
		if err == nil || err.Kind != ERR_TYPE_MISMATCH {
			t.Errorf("tests[%d] (%q): expected a type mismatch, got %v", i, input, err)
		}
	}
}

func TestConditionsAreStrict(t *testing.T) {
	mustFail(t, `if (1) { }`, ERR_TYPE_MISMATCH)
	mustFail(t, `while (1) { }`, ERR_TYPE_MISMATCH)
	mustFail(t, `for (; 1; ) { }`, ERR_TYPE_MISMATCH)
	mustFail(t, `if ("true") { }`, ERR_TYPE_MISMATCH)
}

// =================
// Composite access
// =================

func TestIndexing(t *testing.T) {
	rv, _ := mustEval(t, `[10, 20, 30][1];`)
	if rv != Number(20) {
		t.Fatalf("expected 20, got %#v", rv)
	}
	mustFail(t, `[1, 2][5];`, ERR_INDEX_OUT_OF_RANGE)
	mustFail(t, `[1, 2][0 - 1];`, ERR_INVALID_INDEX)
	mustFail(t, `[1, 2]["nope"];`, ERR_INVALID_ACCESS)
	mustFail(t, `[1, 2][true];`, ERR_INVALID_ACCESS)
	mustFail(t, `1[0];`, ERR_INVALID_ACCESS)
	mustFail(t, `"abc"[0];`, ERR_INVALID_ACCESS)
}

func TestArrayElementReplacement(t *testing.T) {
	rv, _ := mustEval(t, `
		var a = [1, 2, 3];
		a[1] = 20;
		a[1];
	`)
	if rv != Number(20) {
		t.Fatalf("expected 20, got %#v", rv)
	}
	// no auto-extension: the index must already exist.
	mustFail(t, `var a = [1]; a[1] = 2;`, ERR_INDEX_OUT_OF_RANGE)
	mustFail(t, `var a = [1]; a[0 - 1] = 2;`, ERR_INVALID_INDEX)
}

func TestSetYieldsAssignedValue(t *testing.T) {
	rv, _ := mustEval(t, `var a = [0]; a[0] = 9;`)
	if rv != Number(9) {
		t.Fatalf("expected the set expression to yield 9, got %#v", rv)
	}
}

func TestRecordAccess(t *testing.T) {
	// note: a record literal cannot start an expression statement
	// (a leading { always opens a block), hence the var bindings.
	rv, _ := mustEval(t, `var r = { a: 1, b: 2 }; r.b;`)
	if rv != Number(2) {
		t.Fatalf("expected 2, got %#v", rv)
	}
	rv, _ = mustEval(t, `var r = { a: 1 }; r["a"];`)
	if rv != Number(1) {
		t.Fatalf("expected 1, got %#v", rv)
	}
	mustFail(t, `var r = { a: 1 }; r.b;`, ERR_NO_SUCH_PROPERTY)
	mustFail(t, `var r = { a: 1 }; r[0];`, ERR_INVALID_ACCESS)
}

func TestRecordUpsert(t *testing.T) {
	rv, _ := mustEval(t, `
		var r = { a: 1 };
		r.b = 2;
		r.a = 10;
		r.a + r.b;
	`)
	if rv != Number(12) {
		t.Fatalf("expected 12, got %#v", rv)
	}
}

func TestRecordDuplicateKeys(t *testing.T) {
	rv, _ := mustEval(t, `var r = { a: 1, a: 2 }; r.a;`)
	if rv != Number(2) {
		t.Fatalf("expected the later key to win, got %#v", rv)
	}
}

func TestArrayLength(t *testing.T) {
	rv, _ := mustEval(t, `[].length;`)
	if rv != Number(0) {
		t.Fatalf("expected 0, got %#v", rv)
	}
	rv, _ = mustEval(t, `[1, 2, 3].length;`)
	if rv != Number(3) {
		t.Fatalf("expected 3, got %#v", rv)
	}
}

func TestPushAppendsInOrder(t *testing.T) {
	_, out := mustEval(t, `
		var a = [];
		a.push(1, 2);
		a.push(3);
		print a;
	`)
	if diff := cmp.Diff("[1, 2, 3]\n", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

// ==========
// Statements
// ==========

func TestSequenceValue(t *testing.T) {
	rv, _ := mustEval(t, ``)
	if rv != NOTHING {
		t.Fatalf("expected an empty program to yield nothing, got %#v", rv)
	}
	rv, _ = mustEval(t, `1; 2; 3;`)
	if rv != Number(3) {
		t.Fatalf("expected the last statement's value, got %#v", rv)
	}
}

func TestVarWithoutInitializer(t *testing.T) {
	rv, _ := mustEval(t, `var x; x;`)
	if rv != NOTHING {
		t.Fatalf("expected nothing, got %#v", rv)
	}
}

func TestAssignUndeclared(t *testing.T) {
	mustFail(t, `y = 1;`, ERR_UNKNOWN_NAME)
	mustFail(t, `fun f() { z = 1; } f();`, ERR_UNKNOWN_NAME)
}

func TestUnknownIdentifier(t *testing.T) {
	mustFail(t, `missing;`, ERR_UNKNOWN_NAME)
}

func TestPrint(t *testing.T) {
	rv, out := mustEval(t, `print 1 + 2;`)
	if rv != Number(3) {
		t.Fatalf("expected print to yield its value, got %#v", rv)
	}
	if diff := cmp.Diff("3\n", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintRendering(t *testing.T) {
	_, out := mustEval(t, `
		print "hello";
		print true;
		var x;
		print x;
		print [1, "two", [3]];
		print { a: 1, b: "s" };
	`)
	want := "hello\ntrue\nnothing\n[1, \"two\", [3]]\n{a: 1, b: \"s\"}\n"
	if diff := cmp.Diff(want, out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestPrintCyclicArray(t *testing.T) {
	_, out := mustEval(t, `
		var a = [1];
		a.push(a);
		print a;
	`)
	if diff := cmp.Diff("[1, (...)]\n", out); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWhileLoop(t *testing.T) {
	rv, _ := mustEval(t, `
		var i = 0;
		var sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		sum;
	`)
	if rv != Number(10) {
		t.Fatalf("expected 10, got %#v", rv)
	}
}

func TestForLoop(t *testing.T) {
	rv, _ := mustEval(t, `
		var sum = 0;
		for (var i = 1; i <= 4; i = i + 1) {
			sum = sum + i;
		}
		sum;
	`)
	if rv != Number(10) {
		t.Fatalf("expected 10, got %#v", rv)
	}
}

func TestForInitScope(t *testing.T) {
	mustFail(t, `for (var i = 0; i < 1; i = i + 1) { } i;`, ERR_UNKNOWN_NAME)
}

func TestIfElse(t *testing.T) {
	rv, _ := mustEval(t, `var x = 0; if (1 > 2) { x = 1; } else { x = 2; } x;`)
	if rv != Number(2) {
		t.Fatalf("expected 2, got %#v", rv)
	}
}

// ======
// Errors
// ======

func TestErrorsAbortExecution(t *testing.T) {
	_, err, out := testEval(t, `
		print 1;
		missing;
		print 2;
	`)
	if err == nil || err.Kind != ERR_UNKNOWN_NAME {
		t.Fatalf("expected an unknown-name error, got %v", err)
	}
	if diff := cmp.Diff("1\n", out); diff != "" {
		t.Fatalf("expected execution to stop at the failure (-want +got):\n%s", diff)
	}
}

func TestErrorTraceNamesFunctions(t *testing.T) {
	err := mustFail(t, `
		fun inner() { return missing; }
		fun outer() { return inner(); }
		outer();
	`, ERR_UNKNOWN_NAME)
	if len(err.Trace) < 3 {
		t.Fatalf("expected a trace through both calls, got %v", err.Trace)
	}
	if err.Trace[0].Context != "[fun inner]" {
		t.Errorf("expected innermost frame first, got %v", err.Trace)
	}
	if err.Trace[len(err.Trace)-1].Context != "[module]" {
		t.Errorf("expected module frame last, got %v", err.Trace)
	}
}

func TestNativeErrorCarriesKind(t *testing.T) {
	mustFail(t, `repr();`, ERR_TYPE_MISMATCH)
}
