package compiler

import "texpr/internal/ast"

// buildNodes allocates sub.Nodes from the operator positions found by
// operatorIndexes (spec §4.5). An operator-less subexpression still gets
// exactly one node, holding the lone operand.
func buildNodes(ops []int, source string, sub *ast.Subexpr, isInteger bool) {
	if len(ops) == 0 {
		sub.Nodes = []ast.OpNode{{Index: 0, Next: -1}}
		sub.StartNode = 0
		return
	}
	sub.Nodes = make([]ast.OpNode, len(ops))
	for i, pos := range ops {
		sub.Nodes[i] = ast.OpNode{
			Operator: source[pos],
			Pos:      pos,
			Index:    i,
			Priority: Priority(source[pos], isInteger),
			Next:     -1,
		}
	}
}

// threadEvaluationOrder implements spec §4.7: starting from the first
// (textual order) node of maximum priority, chain through all nodes of
// that priority, then the next-lower priority, and so on, producing the
// linear execution schedule that replaces a runtime operator-precedence
// stack.
func threadEvaluationOrder(sub *ast.Subexpr, isInteger bool) {
	n := len(sub.Nodes)
	if n == 0 {
		return
	}
	if len(sub.Nodes) == 1 && sub.Nodes[0].Operator == 0 {
		sub.StartNode = 0
		sub.Nodes[0].Next = -1
		return
	}

	start := -1
	for p := MaxPriority(isInteger); p > 0 && start == -1; p-- {
		for j := 0; j < n; j++ {
			if sub.Nodes[j].Priority == p {
				start = j
				break
			}
		}
	}
	if start == -1 {
		start = 0
	}
	sub.StartNode = start

	i := start
	targetPriority := sub.Nodes[i].Priority
	j := i + 1
	for targetPriority > 0 {
		for j < n {
			if sub.Nodes[j].Priority == targetPriority {
				sub.Nodes[i].Next = j
				i = j
			}
			j++
		}
		targetPriority--
		j = 0
	}
	sub.Nodes[i].Next = -1
}

// wireInternalResults implements spec §4.8's per-node result wiring
// among nodes of the same subexpression: for every node but the overall
// tail (the one whose Next is -1 after threading), find the nearest
// neighbor with strictly lower priority on one side and lower-or-equal
// on the other, and point this node's Result at whichever neighbor still
// needs the value. The tail node is left with HasResult=false; for a
// nested subexpression resolveOperand fills it in afterward when it links
// the subexpression into its enclosing operand slot, and the outermost
// subexpression's tail stays unset, so the evaluator writes its value to
// Expr.Answer.
func wireInternalResults(sub *ast.Subexpr, subIndex int) {
	n := len(sub.Nodes)
	if n <= 1 {
		return
	}
	idx := sub.StartNode
	for sub.Nodes[idx].Next != -1 {
		i := idx
		prio := sub.Nodes[i].Priority

		left := i - 1
		for left != -1 && prio <= sub.Nodes[left].Priority {
			left--
		}
		right := i + 1
		for right < n && prio < sub.Nodes[right].Priority {
			right++
		}

		switch {
		case left == -1 && right == n:
			// single-node chain segment; nothing to wire to (shouldn't
			// happen for n>1, guarded defensively).
		case left == -1:
			sub.Nodes[i].Result = ast.OperandRef{SubexprIndex: subIndex, NodeIndex: right, Side: ast.Left}
			sub.Nodes[i].HasResult = true
		case right == n:
			sub.Nodes[i].Result = ast.OperandRef{SubexprIndex: subIndex, NodeIndex: left, Side: ast.Right}
			sub.Nodes[i].HasResult = true
		default:
			if sub.Nodes[left].Priority >= sub.Nodes[right].Priority {
				sub.Nodes[i].Result = ast.OperandRef{SubexprIndex: subIndex, NodeIndex: left, Side: ast.Right}
			} else {
				sub.Nodes[i].Result = ast.OperandRef{SubexprIndex: subIndex, NodeIndex: right, Side: ast.Left}
			}
			sub.Nodes[i].HasResult = true
		}
		idx = sub.Nodes[idx].Next
	}
}

// tailNodeIndex returns the index of the last node in sub's threaded
// evaluation order (the one whose Next is -1).
func tailNodeIndex(sub *ast.Subexpr) int {
	i := sub.StartNode
	for sub.Nodes[i].Next != -1 {
		i = sub.Nodes[i].Next
	}
	return i
}

// TailNodeIndex is tailNodeIndex exported for internal/eval, which needs
// to find each subexpression's tail node to learn where its final value
// should be delivered.
func TailNodeIndex(sub *ast.Subexpr) int { return tailNodeIndex(sub) }
