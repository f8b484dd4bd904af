package compiler

import (
	"texpr/internal/ast"
	"texpr/internal/errors"
	"texpr/internal/lexer"
)

// operatorIndexes walks sub's [SolveStart, SolveEnd] span and records the
// positions of every top-level binary operator (spec §4.3). A nested
// subexpression is skipped in one jump using byOpenParen (keyed by the
// position of its own '('); a '+'/'-' following a scientific-notation
// 'e'/'E' is skipped rather than recorded, and a sign immediately after
// another operator is absorbed into that operand rather than recorded as
// its own operator (the lexer has already collapsed sign runs to at most
// one character, per spec §4.1).
func operatorIndexes(source string, solveStart, solveEnd int, isInteger bool, facility errors.Facility, byOpenParen map[int]int, subs []ast.Subexpr) ([]int, *errors.Record) {
	var ops []int
	i := solveStart
	for i <= solveEnd {
		c := source[i]
		switch {
		case c == '(':
			if idx, ok := byOpenParen[i]; ok {
				i = subs[idx].SolveEnd + 2
				continue
			}
			i++
		case lexer.IsLegalNameChar(c) || c == '.':
			i++
		case IsOperator(c, isInteger):
			if !isInteger && (c == '+' || c == '-') && i > 0 && (source[i-1] == 'e' || source[i-1] == 'E') {
				if _, ok := lexer.NameBounds(source, i-1); !ok {
					i++
					continue
				}
			}
			ops = append(ops, i)
			if i+1 <= solveEnd && (source[i+1] == '-' || source[i+1] == '+') {
				i++
			}
			i++
		default:
			return nil, errors.New(facility, errors.KindSyntaxError, errors.Fatal, "Syntax error.", source, i)
		}
	}
	return ops, nil
}
