// Package eval implements the two subexpression evaluators of spec
// §4.10/§4.11: deepest-first traversal of a compiled ast.Expr's
// subexpressions, threaded node-chain evaluation within each, extended
// and user function dispatch, and integer masking.
package eval

import (
	"math"
	"math/cmplx"

	"texpr/internal/ast"
	"texpr/internal/compiler"
	"texpr/internal/errors"
	"texpr/internal/registry"
)

// Evaluate runs expr (scientific domain) against ctx, per spec §4.10.
// labelValues is the label-name-to-value map currently in scope (nil at
// the top level, populated while evaluating a user function body or one
// of its extended-call arguments).
func Evaluate(expr *ast.Expr, ctx *registry.Context, labelValues map[string]complex128) (complex128, *errors.Record) {
	for i := range expr.Subexprs {
		sub := &expr.Subexprs[i]
		var value complex128

		switch sub.FuncKind {
		case ast.FuncExtended:
			fn, ok := ctx.Extended[sub.FuncName]
			if !ok {
				return 0, errors.New(errors.Evaluator, errors.KindUndefinedFunction, errors.Fatal,
					"Undefined function \""+sub.FuncName+"\".", expr.Source, sub.SubexprStart)
			}
			call := &registry.ExtCall{Args: sub.FArgs, Labels: labelValues, Eval: makeEvalClosure(ctx)}
			v, err := fn(call)
			if err != nil {
				if rec, ok := err.(*errors.Record); ok {
					return 0, rec
				}
				return 0, errors.New(errors.Evaluator, errors.KindExtFailure, errors.Fatal, err.Error(), expr.Source, sub.SubexprStart)
			}
			value = v

		case ast.FuncUser:
			v, rec := evalUserCall(expr, sub, ctx, labelValues)
			if rec != nil {
				return 0, rec
			}
			value = v

		case ast.FuncRealUnary, ast.FuncComplexUnary:
			v, rec := evalNodeChain(expr, i)
			if rec != nil {
				return 0, rec
			}
			out, rec := applyUnary(sub, ctx, v, expr)
			if rec != nil {
				return 0, rec
			}
			value = out

		default:
			v, rec := evalNodeChain(expr, i)
			if rec != nil {
				return 0, rec
			}
			value = v
		}

		if sub.ResultNegate {
			value = -value
		}
		if !expr.ComplexEnabled && imag(value) != 0 {
			return 0, errors.New(errors.Evaluator, errors.KindComplexDisabled, errors.Fatal,
				"Result is complex but the complex domain is disabled.", expr.Source, sub.SubexprStart)
		}

		tail := compiler.TailNodeIndex(sub)
		if sub.Nodes[tail].HasResult {
			expr.Write(sub.Nodes[tail].Result, value)
		} else {
			expr.Answer = value
		}
	}
	return expr.Answer, nil
}

func evalUserCall(expr *ast.Expr, sub *ast.Subexpr, ctx *registry.Context, labelValues map[string]complex128) (complex128, *errors.Record) {
	uf, ok := ctx.GetUFunction(sub.UserFuncName)
	if !ok {
		return 0, errors.New(errors.Evaluator, errors.KindUndefinedFunction, errors.Fatal,
			"Undefined function \""+sub.UserFuncName+"\".", expr.Source, sub.SubexprStart)
	}
	argVals := make([]complex128, len(sub.ArgExprs))
	for k, ae := range sub.ArgExprs {
		v, rec := Evaluate(ae, ctx, labelValues)
		if rec != nil {
			return 0, rec
		}
		argVals[k] = v
	}
	if len(argVals) != len(uf.ArgNames) {
		kind := errors.KindTooFewArgs
		if len(argVals) > len(uf.ArgNames) {
			kind = errors.KindTooManyArgs
		}
		return 0, errors.New(errors.Evaluator, kind, errors.Fatal,
			"Argument count does not match the function definition.", expr.Source, sub.SubexprStart)
	}
	bodyCopy := compiler.Duplicate(uf.Body)
	applyLabelValues(bodyCopy, argVals)
	newLabels := make(map[string]complex128, len(uf.ArgNames))
	for k, name := range uf.ArgNames {
		newLabels[name] = argVals[k]
	}
	return Evaluate(bodyCopy, ctx, newLabels)
}

// evalNodeChain walks the threaded node chain of expr.Subexprs[subIdx],
// resolving each operand (a literal, since variable names and labels are
// already baked into Left/Right by the time this runs, or a value already
// delivered by a nested subexpression), applying the operator, and
// forwarding any internally-wired result before moving to the next node.
// It returns the tail node's computed value, undelivered.
func evalNodeChain(expr *ast.Expr, subIdx int) (complex128, *errors.Record) {
	sub := &expr.Subexprs[subIdx]
	idx := sub.StartNode
	var last complex128
	for {
		node := &sub.Nodes[idx]
		left := node.Left

		var result complex128
		if node.Operator == 0 {
			result = left
		} else {
			r, rec := applyBinaryOp(node.Operator, left, node.Right, expr)
			if rec != nil {
				return 0, rec
			}
			result = r
		}

		last = result
		if node.HasResult {
			expr.Write(node.Result, result)
		}
		if node.Next == -1 {
			break
		}
		idx = node.Next
	}
	return last, nil
}

func applyBinaryOp(op byte, left, right complex128, expr *ast.Expr) (complex128, *errors.Record) {
	var result complex128
	switch op {
	case '+':
		result = left + right
	case '-':
		result = left - right
	case '*':
		result = left * right
	case '/':
		if right == 0 {
			return 0, errors.New(errors.Evaluator, errors.KindDivisionByZero, errors.Fatal, "Division by zero.", expr.Source, 0)
		}
		result = left / right
	case '%':
		if imag(left) != 0 || imag(right) != 0 {
			return 0, errors.New(errors.Evaluator, errors.KindModuloComplex, errors.Fatal,
				"Modulo is not supported on complex operands.", expr.Source, 0)
		}
		if real(right) == 0 {
			return 0, errors.New(errors.Evaluator, errors.KindModuloZero, errors.Fatal, "Modulo by zero.", expr.Source, 0)
		}
		result = complex(math.Mod(real(left), real(right)), 0)
	case '^':
		if imag(left) == 0 && imag(right) == 0 && real(right) == math.Trunc(real(right)) {
			result = complex(math.Pow(real(left), real(right)), 0)
		} else {
			result = cmplx.Pow(left, right)
		}
	default:
		return 0, errors.New(errors.Evaluator, errors.KindInternalError, errors.Fatal, "Unknown operator.", expr.Source, 0)
	}
	if cmplx.IsNaN(result) {
		return 0, errors.New(errors.Evaluator, errors.KindMathError, errors.Fatal, "Math error.", expr.Source, 0)
	}
	return result, nil
}

func applyUnary(sub *ast.Subexpr, ctx *registry.Context, v complex128, expr *ast.Expr) (complex128, *errors.Record) {
	if sub.FuncKind == ast.FuncComplexUnary {
		return sub.ComplexUnary(v), nil
	}
	if imag(v) == 0 {
		if r, ok := sub.RealUnary(real(v)); ok {
			return complex(r, 0), nil
		}
	}
	if cfn, ok := ctx.ComplexUnary[sub.FuncName]; ok {
		if !expr.ComplexEnabled {
			return 0, errors.New(errors.Evaluator, errors.KindComplexDisabled, errors.Fatal,
				"\""+sub.FuncName+"\" needs the complex domain, which is disabled.", expr.Source, sub.SubexprStart)
		}
		return cfn(v), nil
	}
	return 0, errors.New(errors.Evaluator, errors.KindMathError, errors.Fatal,
		"\""+sub.FuncName+"\" is undefined for this input.", expr.Source, sub.SubexprStart)
}

func applyLabelValues(expr *ast.Expr, vals []complex128) {
	for _, l := range expr.Labels {
		v := vals[l.LabelID]
		if l.Negative {
			v = -v
		}
		expr.Write(l.Target, v)
	}
}

// makeEvalClosure builds the registry.ExtCall.Eval callback: compile and
// evaluate an arbitrary expression string in the given label scope, used
// by extended functions that must sample their argument at several
// points (der, integrate) rather than just once.
func makeEvalClosure(ctx *registry.Context) func(string, map[string]complex128) (complex128, error) {
	return func(exprStr string, labels map[string]complex128) (complex128, error) {
		names := make([]string, 0, len(labels))
		vals := make([]complex128, 0, len(labels))
		for k, v := range labels {
			names = append(names, k)
			vals = append(vals, v)
		}
		argExpr, rec := compiler.CompileUserBody(exprStr, false, ctx, names)
		if rec != nil {
			return 0, rec
		}
		applyLabelValues(argExpr, vals)
		newLabels := make(map[string]complex128, len(names))
		for i, n := range names {
			newLabels[n] = vals[i]
		}
		v, rec := Evaluate(argExpr, ctx, newLabels)
		if rec != nil {
			return 0, rec
		}
		return v, nil
	}
}
