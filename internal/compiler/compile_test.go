package compiler_test

import (
	"testing"

	"texpr/internal/compiler"
	"texpr/internal/eval"
	"texpr/internal/funcs"
	"texpr/internal/registry"
)

func newTestContext() *registry.Context {
	ctx := registry.NewContext()
	funcs.RegisterBuiltins(ctx)
	return ctx
}

func TestCompileScientificOperatorPrecedence(t *testing.T) {
	tests := []struct {
		expr string
		want complex128
	}{
		{"2+3*4", complex(14, 0)},
		{"(2+3)*4", complex(20, 0)},
		{"2^2^3", complex(64, 0)}, // left-to-right threading
		{"10-2-3", complex(5, 0)},
		{"2*3+4*5", complex(26, 0)},
	}
	for _, tt := range tests {
		ctx := newTestContext()
		expr, rec := compiler.CompileScientific(tt.expr, ctx)
		if rec != nil {
			t.Fatalf("compiler.CompileScientific(%q) error: %v", tt.expr, rec)
		}
		expr.ComplexEnabled = true
		got, rec := eval.Evaluate(expr, ctx, nil)
		if rec != nil {
			t.Fatalf("Evaluate(%q) error: %v", tt.expr, rec)
		}
		if got != tt.want {
			t.Fatalf("%q = %v, want %v", tt.expr, got, tt.want)
		}
	}
}

func TestCompileScientificRejectsUnbalancedParens(t *testing.T) {
	ctx := newTestContext()
	if _, rec := compiler.CompileScientific("(1+2", ctx); rec == nil {
		t.Fatalf("compiler.CompileScientific(unbalanced parens) should fail")
	}
}

func TestCompileScientificAssignmentTarget(t *testing.T) {
	ctx := newTestContext()
	expr, rec := compiler.CompileScientific("x = 5+5", ctx)
	if rec != nil {
		t.Fatalf("CompileScientific error: %v", rec)
	}
	if expr.AssignTarget != "x" {
		t.Fatalf("AssignTarget = %q, want %q", expr.AssignTarget, "x")
	}
}

func TestCompileScientificWithLabelsBindsUndefinedNames(t *testing.T) {
	ctx := newTestContext()
	expr, rec := compiler.CompileScientificWithLabels("x*2", ctx, []string{"x"})
	if rec != nil {
		t.Fatalf("CompileScientificWithLabels error: %v", rec)
	}
	if len(expr.Labels) != 1 {
		t.Fatalf("Labels = %v, want exactly one label binding", expr.Labels)
	}
}

func TestCompileScientificUndefinedNameWithoutLabelScopeFails(t *testing.T) {
	ctx := newTestContext()
	if _, rec := compiler.CompileScientific("undefinedvar*2", ctx); rec == nil {
		t.Fatalf("compiler.CompileScientific(undefined name, no label scope) should fail")
	}
}

func TestCompileScientificInlinesVariableAtParseTime(t *testing.T) {
	ctx := newTestContext()
	if err := ctx.SetVar("x", complex(2, 0), false); err != nil {
		t.Fatalf("SetVar: %v", err)
	}
	expr, rec := compiler.CompileScientific("x+1", ctx)
	if rec != nil {
		t.Fatalf("CompileScientific error: %v", rec)
	}

	if err := ctx.SetVar("x", complex(100, 0), false); err != nil {
		t.Fatalf("SetVar (update): %v", err)
	}

	got, rec := eval.Evaluate(expr, ctx, nil)
	if rec != nil {
		t.Fatalf("Evaluate error: %v", rec)
	}
	if got != complex(3, 0) {
		t.Fatalf("x+1 = %v, want 3 (the value of x at parse time, unaffected by the later SetVar)", got)
	}
}

func TestCompileScientificUndefinedVariableFailsAtParseTime(t *testing.T) {
	ctx := newTestContext()
	if _, rec := compiler.CompileScientific("nosuchvar+1", ctx); rec == nil {
		t.Fatalf("CompileScientific(undefined variable) should fail at parse time")
	}
}

func TestCompileIntegerMasksResult(t *testing.T) {
	ctx := newTestContext()
	ctx.SetWidth(8)
	expr, rec := compiler.CompileInteger("255+1", ctx)
	if rec != nil {
		t.Fatalf("CompileInteger error: %v", rec)
	}
	got, rec := eval.EvaluateInt(expr, ctx, nil)
	if rec != nil {
		t.Fatalf("EvaluateInt error: %v", rec)
	}
	if got != 0 {
		t.Fatalf("255+1 at width 8 = %v, want 0 (wraps)", got)
	}
}

func TestCompileIntegerDivisionByZero(t *testing.T) {
	ctx := newTestContext()
	expr, rec := compiler.CompileInteger("1/0", ctx)
	if rec != nil {
		t.Fatalf("CompileInteger error: %v", rec)
	}
	if _, rec := eval.EvaluateInt(expr, ctx, nil); rec == nil {
		t.Fatalf("EvaluateInt(1/0) should fail")
	}
}

func TestCompileScientificFunctionCall(t *testing.T) {
	ctx := newTestContext()
	expr, rec := compiler.CompileScientific("sqrt(16)", ctx)
	if rec != nil {
		t.Fatalf("CompileScientific error: %v", rec)
	}
	expr.ComplexEnabled = true
	got, rec := eval.Evaluate(expr, ctx, nil)
	if rec != nil {
		t.Fatalf("Evaluate error: %v", rec)
	}
	if got != complex(4, 0) {
		t.Fatalf("sqrt(16) = %v, want 4", got)
	}
}

func TestCompileUserBodyCompilesAgainstArgNames(t *testing.T) {
	ctx := newTestContext()
	body, rec := compiler.CompileUserBody("x*x+1", false, ctx, []string{"x"})
	if rec != nil {
		t.Fatalf("CompileUserBody error: %v", rec)
	}
	if len(body.Labels) != 2 {
		t.Fatalf("Labels = %v, want one binding per occurrence of x (2)", body.Labels)
	}
}
