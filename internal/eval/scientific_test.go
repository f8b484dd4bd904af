package eval

import (
	"testing"

	"texpr/internal/ast"
	"texpr/internal/compiler"
	"texpr/internal/funcs"
	"texpr/internal/registry"
)

func newTestContext() *registry.Context {
	ctx := registry.NewContext()
	funcs.RegisterBuiltins(ctx)
	return ctx
}

func TestEvaluateComplexDisabledRejectsComplexResult(t *testing.T) {
	ctx := newTestContext()
	expr, rec := compiler.CompileScientific("sqrt(-1)", ctx)
	if rec != nil {
		t.Fatalf("CompileScientific error: %v", rec)
	}
	expr.ComplexEnabled = false
	if _, rec := Evaluate(expr, ctx, nil); rec == nil {
		t.Fatalf("Evaluate(sqrt(-1)) with ComplexEnabled=false should fail")
	}
}

func TestEvaluateComplexEnabledPromotes(t *testing.T) {
	ctx := newTestContext()
	expr, rec := compiler.CompileScientific("sqrt(-4)", ctx)
	if rec != nil {
		t.Fatalf("CompileScientific error: %v", rec)
	}
	expr.ComplexEnabled = true
	got, rec := Evaluate(expr, ctx, nil)
	if rec != nil {
		t.Fatalf("Evaluate error: %v", rec)
	}
	if real(got) != 0 || imag(got) != 2 {
		t.Fatalf("sqrt(-4) = %v, want 0+2i", got)
	}
}

func TestEvaluateUserFunctionDispatch(t *testing.T) {
	ctx := newTestContext()
	body, rec := compiler.CompileUserBody("x*x", false, ctx, []string{"x"})
	if rec != nil {
		t.Fatalf("CompileUserBody error: %v", rec)
	}
	noCycle := func(name string, b *ast.Expr, source string, existing map[string]*registry.UserFunction) (bool, string) {
		return false, ""
	}
	if rec := ctx.SetUFunction("square", &registry.UserFunction{ArgNames: []string{"x"}, Body: body, Source: "x*x"}, noCycle); rec != nil {
		t.Fatalf("SetUFunction error: %v", rec)
	}

	expr, rec := compiler.CompileScientific("square(5)", ctx)
	if rec != nil {
		t.Fatalf("CompileScientific error: %v", rec)
	}
	got, rec := Evaluate(expr, ctx, nil)
	if rec != nil {
		t.Fatalf("Evaluate error: %v", rec)
	}
	if got != complex(25, 0) {
		t.Fatalf("square(5) = %v, want 25", got)
	}
}

func TestApplyLabelValuesNegation(t *testing.T) {
	ctx := newTestContext()
	expr, rec := compiler.CompileScientificWithLabels("-x", ctx, []string{"x"})
	if rec != nil {
		t.Fatalf("CompileScientificWithLabels error: %v", rec)
	}
	applyLabelValues(expr, []complex128{complex(3, 0)})
	got, rec := Evaluate(expr, ctx, nil)
	if rec != nil {
		t.Fatalf("Evaluate error: %v", rec)
	}
	if got != complex(-3, 0) {
		t.Fatalf("-x at x=3 = %v, want -3", got)
	}
}
