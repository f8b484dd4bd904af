package compiler

import (
	"texpr/internal/ast"
	"texpr/internal/errors"
	"texpr/internal/lexer"
	"texpr/internal/registry"
)

// bindSubexprOperands implements spec §4.6 for one arithmetic-bearing
// subexpression (FuncKind None, RealUnary, or ComplexUnary; extended and
// user calls carry their arguments as ArgExprs instead and skip this
// entirely). Each node's left/right slot is either:
//
//   - already a sink for a sibling node's computed value, established by
//     wireInternalResults — these are left untouched, since the text at
//     that position is a partial sub-chain, not a standalone atom; or
//   - a genuine atom, resolved from the source text by resolveOperand.
func bindSubexprOperands(expr *ast.Expr, subIdx int, ctx *registry.Context, isInteger bool, facility errors.Facility, startIndex map[int]int) *errors.Record {
	sub := &expr.Subexprs[subIdx]
	n := len(sub.Nodes)
	src := expr.Source

	if n == 1 && sub.Nodes[0].Operator == 0 {
		if sub.SolveStart > sub.SolveEnd {
			return errors.New(facility, errors.KindMissingExpression, errors.Fatal, "Missing expression.", src, sub.SolveStart)
		}
		return resolveOperand(expr, subIdx, 0, ast.Left, sub.SolveStart, sub.SolveEnd, ctx, isInteger, facility, startIndex)
	}

	targetedLeft := make([]bool, n)
	targetedRight := make([]bool, n)
	for _, node := range sub.Nodes {
		if !node.HasResult || node.Result.SubexprIndex != subIdx {
			continue
		}
		if node.Result.Side == ast.Left {
			targetedLeft[node.Result.NodeIndex] = true
		} else {
			targetedRight[node.Result.NodeIndex] = true
		}
	}

	for j := 0; j < n; j++ {
		pos := sub.Nodes[j].Pos
		if !targetedLeft[j] {
			leftStart := sub.SolveStart
			if j > 0 {
				leftStart = sub.Nodes[j-1].Pos + 1
			}
			leftEnd := pos - 1
			if leftStart > leftEnd {
				// A leading '+'/'-' reads as 0+x / 0-x: the left slot keeps its zero value.
				if j != 0 || (sub.Nodes[j].Operator != '+' && sub.Nodes[j].Operator != '-') {
					return errors.New(facility, errors.KindSyntaxError, errors.Fatal, "Missing left operand.", src, pos)
				}
			} else if rec := resolveOperand(expr, subIdx, j, ast.Left, leftStart, leftEnd, ctx, isInteger, facility, startIndex); rec != nil {
				return rec
			}
		}
		if !targetedRight[j] {
			rightStart := pos + 1
			rightEnd := sub.SolveEnd
			if j < n-1 {
				rightEnd = sub.Nodes[j+1].Pos - 1
			}
			if rightStart > rightEnd {
				return errors.New(facility, errors.KindMissingRightOperand, errors.Fatal, "Missing right operand.", src, pos)
			}
			if rec := resolveOperand(expr, subIdx, j, ast.Right, rightStart, rightEnd, ctx, isInteger, facility, startIndex); rec != nil {
				return rec
			}
		}
	}
	return nil
}

// resolveOperand binds the text span src[start:end+1] into slot
// (subIdx, nodeIdx, side): a reference to another subexpression, a
// numeric literal, a label, or a variable name, in that priority order
// (spec §4.6). A variable name is resolved to its current value right
// here and the value is baked into the slot: later SetVar calls do not
// retroactively change an already-compiled Expr.
func resolveOperand(expr *ast.Expr, subIdx, nodeIdx int, side ast.Side, start, end int, ctx *registry.Context, isInteger bool, facility errors.Facility, startIndex map[int]int) *errors.Record {
	src := expr.Source
	negate := false
	s := start
	switch src[s] {
	case '-':
		negate = true
		s++
	case '+':
		s++
	}
	if s > end {
		return errors.New(facility, errors.KindSyntaxError, errors.Fatal, "Missing operand.", src, start)
	}

	if idx, ok := startIndex[s]; ok {
		nested := &expr.Subexprs[idx]
		if nested.SolveEnd+1 == end {
			tail := tailNodeIndex(nested)
			nested.Nodes[tail].Result = ast.OperandRef{SubexprIndex: subIdx, NodeIndex: nodeIdx, Side: side}
			nested.Nodes[tail].HasResult = true
			nested.ResultNegate = negate
			return nil
		}
	}

	if num, ok := lexer.ScanNumber(src, s); ok && num.End-1 == end {
		if isInteger {
			uv, err := num.IntValue()
			if err != nil {
				return errors.New(facility, errors.KindIntTooLarge, errors.Fatal, "Integer literal out of range.", src, start)
			}
			iv := int64(uv)
			if negate {
				iv = -iv
			}
			w := ctx.Width()
			iv = w.SignExtend(w.Apply(uint64(iv)))
			setIntOperand(expr, subIdx, nodeIdx, side, iv)
		} else {
			v, err := num.Value()
			if err != nil {
				return errors.New(facility, errors.KindMathError, errors.Fatal, "Invalid numeric literal.", src, start)
			}
			var cv complex128
			if num.Imaginary {
				cv = complex(0, v)
			} else {
				cv = complex(v, 0)
			}
			if negate {
				cv = -cv
			}
			setOperand(expr, subIdx, nodeIdx, side, cv)
		}
		return nil
	}

	name := src[s : end+1]
	if !lexer.IsLegalName(name) {
		return errors.New(facility, errors.KindSyntaxError, errors.Fatal, "Syntax error.", src, start)
	}

	for li, ln := range expr.LabelNames {
		if ln == name {
			expr.Labels = append(expr.Labels, ast.LabeledOperand{
				Target:   ast.OperandRef{SubexprIndex: subIdx, NodeIndex: nodeIdx, Side: side},
				LabelID:  li,
				Negative: negate,
			})
			return nil
		}
	}

	if isInteger {
		v, ok := ctx.GetIntVar(name)
		if !ok {
			return errors.New(facility, errors.KindUndefinedVariable, errors.Fatal,
				"Undefined variable \""+name+"\".", src, start)
		}
		if negate {
			v = -v
		}
		setIntOperand(expr, subIdx, nodeIdx, side, v)
		return nil
	}

	v, ok := ctx.GetVar(name)
	if !ok {
		return errors.New(facility, errors.KindUndefinedVariable, errors.Fatal,
			"Undefined variable \""+name+"\".", src, start)
	}
	if negate {
		v = -v
	}
	setOperand(expr, subIdx, nodeIdx, side, v)
	return nil
}

func setOperand(expr *ast.Expr, subIdx, nodeIdx int, side ast.Side, v complex128) {
	n := &expr.Subexprs[subIdx].Nodes[nodeIdx]
	if side == ast.Left {
		n.Left = v
	} else {
		n.Right = v
	}
}

func setIntOperand(expr *ast.Expr, subIdx, nodeIdx int, side ast.Side, v int64) {
	n := &expr.Subexprs[subIdx].Nodes[nodeIdx]
	if side == ast.Left {
		n.LeftInt = v
	} else {
		n.RightInt = v
	}
}
