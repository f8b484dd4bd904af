package compiler

import "texpr/internal/ast"

// Duplicate deep-copies expr, per spec §4.9/§9: because operand and
// threading references are arena indices rather than pointers, copying
// is a plain element-wise copy of each slice with no address fix-up —
// indices still mean the same thing in the copy since the copy has the
// identical shape. Used before every user-function call, so concurrent
// callers of the same registered function never share mutable node
// state (spec §4.10).
func Duplicate(expr *ast.Expr) *ast.Expr {
	if expr == nil {
		return nil
	}
	cp := *expr
	cp.Subexprs = make([]ast.Subexpr, len(expr.Subexprs))
	for i, sub := range expr.Subexprs {
		cp.Subexprs[i] = duplicateSubexpr(sub)
	}
	cp.Labels = append([]ast.LabeledOperand(nil), expr.Labels...)
	cp.LabelNames = expr.LabelNames // immutable argument-name list, safe to share
	return &cp
}

func duplicateSubexpr(sub ast.Subexpr) ast.Subexpr {
	cp := sub
	cp.Nodes = append([]ast.OpNode(nil), sub.Nodes...)
	cp.FArgs = sub.FArgs // immutable source substrings, safe to share
	if sub.ArgExprs != nil {
		cp.ArgExprs = make([]*ast.Expr, len(sub.ArgExprs))
		for i, arg := range sub.ArgExprs {
			cp.ArgExprs[i] = Duplicate(arg)
		}
	}
	return cp
}
