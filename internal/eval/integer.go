package eval

import (
	"texpr/internal/ast"
	"texpr/internal/compiler"
	"texpr/internal/errors"
	"texpr/internal/registry"
)

// EvaluateInt is Evaluate's integer-domain analog (spec §4.11). Every
// node's result is masked to the active width immediately after the
// operator runs (spec §4.15).
func EvaluateInt(expr *ast.Expr, ctx *registry.Context, labelValues map[string]int64) (int64, *errors.Record) {
	for i := range expr.Subexprs {
		sub := &expr.Subexprs[i]
		var value int64

		switch sub.FuncKind {
		case ast.FuncExtended:
			fn, ok := ctx.IntExtended[sub.FuncName]
			if !ok {
				return 0, errors.New(errors.IntEvaluator, errors.KindUndefinedFunction, errors.Fatal,
					"Undefined function \""+sub.FuncName+"\".", expr.Source, sub.SubexprStart)
			}
			call := &registry.IntExtCall{Args: sub.FArgs, Labels: labelValues, Eval: makeIntEvalClosure(ctx), Width: ctx.Width()}
			v, err := fn(call)
			if err != nil {
				if rec, ok := err.(*errors.Record); ok {
					return 0, rec
				}
				return 0, errors.New(errors.IntEvaluator, errors.KindExtFailure, errors.Fatal, err.Error(), expr.Source, sub.SubexprStart)
			}
			value = v

		case ast.FuncUser:
			v, rec := evalIntUserCall(expr, sub, ctx, labelValues)
			if rec != nil {
				return 0, rec
			}
			value = v

		default:
			v, rec := evalIntNodeChain(expr, i, ctx)
			if rec != nil {
				return 0, rec
			}
			value = v
		}

		if sub.ResultNegate {
			value = -value
		}
		w := ctx.Width()
		value = w.SignExtend(w.Apply(uint64(value)))

		tail := compiler.TailNodeIndex(sub)
		if sub.Nodes[tail].HasResult {
			expr.WriteInt(sub.Nodes[tail].Result, value)
		} else {
			expr.IntAnswer = value
		}
	}
	return expr.IntAnswer, nil
}

func evalIntUserCall(expr *ast.Expr, sub *ast.Subexpr, ctx *registry.Context, labelValues map[string]int64) (int64, *errors.Record) {
	uf, ok := ctx.GetIntUFunction(sub.UserFuncName)
	if !ok {
		return 0, errors.New(errors.IntEvaluator, errors.KindUndefinedFunction, errors.Fatal,
			"Undefined function \""+sub.UserFuncName+"\".", expr.Source, sub.SubexprStart)
	}
	argVals := make([]int64, len(sub.ArgExprs))
	for k, ae := range sub.ArgExprs {
		v, rec := EvaluateInt(ae, ctx, labelValues)
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
		return 0, errors.New(errors.IntEvaluator, kind, errors.Fatal,
			"Argument count does not match the function definition.", expr.Source, sub.SubexprStart)
	}
	bodyCopy := compiler.Duplicate(uf.Body)
	applyIntLabelValues(bodyCopy, argVals)
	newLabels := make(map[string]int64, len(uf.ArgNames))
	for k, name := range uf.ArgNames {
		newLabels[name] = argVals[k]
	}
	return EvaluateInt(bodyCopy, ctx, newLabels)
}

func evalIntNodeChain(expr *ast.Expr, subIdx int, ctx *registry.Context) (int64, *errors.Record) {
	sub := &expr.Subexprs[subIdx]
	w := ctx.Width()
	idx := sub.StartNode
	var last int64
	for {
		node := &sub.Nodes[idx]
		left := node.LeftInt

		var result int64
		if node.Operator == 0 {
			result = left
		} else {
			r, rec := applyIntBinaryOp(node.Operator, left, node.RightInt, expr)
			if rec != nil {
				return 0, rec
			}
			result = r
		}

		result = w.SignExtend(w.Apply(uint64(result)))
		last = result
		if node.HasResult {
			expr.WriteInt(node.Result, result)
		}
		if node.Next == -1 {
			break
		}
		idx = node.Next
	}
	return last, nil
}

func applyIntBinaryOp(op byte, left, right int64, expr *ast.Expr) (int64, *errors.Record) {
	switch op {
	case '+':
		return left + right, nil
	case '-':
		return left - right, nil
	case '*':
		return left * right, nil
	case '/':
		if right == 0 {
			return 0, errors.New(errors.IntEvaluator, errors.KindDivisionByZero, errors.Fatal, "Division by zero.", expr.Source, 0)
		}
		return left / right, nil
	case '%':
		if right == 0 {
			return 0, errors.New(errors.IntEvaluator, errors.KindModuloZero, errors.Fatal, "Modulo by zero.", expr.Source, 0)
		}
		return left % right, nil
	case '&':
		return left & right, nil
	case '^':
		return left ^ right, nil
	case '|':
		return left | right, nil
	default:
		return 0, errors.New(errors.IntEvaluator, errors.KindInternalError, errors.Fatal, "Unknown operator.", expr.Source, 0)
	}
}

func applyIntLabelValues(expr *ast.Expr, vals []int64) {
	for _, l := range expr.Labels {
		v := vals[l.LabelID]
		if l.Negative {
			v = -v
		}
		expr.WriteInt(l.Target, v)
	}
}

func makeIntEvalClosure(ctx *registry.Context) func(string, map[string]int64) (int64, error) {
	return func(exprStr string, labels map[string]int64) (int64, error) {
		names := make([]string, 0, len(labels))
		vals := make([]int64, 0, len(labels))
		for k, v := range labels {
			names = append(names, k)
			vals = append(vals, v)
		}
		argExpr, rec := compiler.CompileUserBody(exprStr, true, ctx, names)
		if rec != nil {
			return 0, rec
		}
		applyIntLabelValues(argExpr, vals)
		newLabels := make(map[string]int64, len(names))
		for i, n := range names {
			newLabels[n] = vals[i]
		}
		v, rec := EvaluateInt(argExpr, ctx, newLabels)
		if rec != nil {
			return 0, rec
		}
		return v, nil
	}
}
