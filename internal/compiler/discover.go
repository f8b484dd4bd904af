// Package compiler implements the expression compiler of spec §4:
// subexpression discovery, operator indexing, priority assignment,
// operand binding, evaluation-order threading, result-pointer wiring,
// label binding, and expression duplication. It produces an ast.Expr
// using the arena-plus-indices scheme of spec §9, so duplication
// (dup.go) needs no pointer fix-up.
package compiler

import (
	"sort"

	"texpr/internal/ast"
	"texpr/internal/errors"
	"texpr/internal/lexer"
)

// callLookup answers "is name a variadic extended or user function, and
// if so which", letting discoverSubexprs stay domain-agnostic (the
// scientific and integer compilers pass different lookups).
type callLookup func(name string) (kind ast.FuncKind, extendedName, userName string, ok bool)

// discoverSubexprs performs the single linear pass of spec §4.2: it
// finds every matched '(' ... ')' region, classifies each as a bare
// subexpression or an extended/user call, and appends a synthetic
// depth-0 "whole expression" region. The returned slice is stably
// sorted by depth descending, so index 0 is deepest and the last index
// is the whole expression (the evaluator's deepest-first schedule).
func discoverSubexprs(source string, facility errors.Facility, lookup callLookup) ([]ast.Subexpr, *errors.Record) {
	var subs []ast.Subexpr
	type frame struct {
		openPos int
		depth   int
	}
	var stack []frame
	depth := 0

	for i := 0; i < len(source); i++ {
		c := source[i]
		if c == '(' {
			depth++
			stack = append(stack, frame{openPos: i, depth: depth})
			continue
		}
		if c != ')' {
			continue
		}
		if len(stack) == 0 {
			return nil, errors.New(facility, errors.KindParenNotOpen, errors.Fatal,
				"Extra closing parenthesis.", source, i)
		}
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		depth--

		sub := ast.Subexpr{Depth: top.depth, SubexprStart: top.openPos}
		name, nameStart, hasName := lexer.NameBeforeParen(source, top.openPos)
		interior := source[top.openPos+1 : i]

		if hasName {
			if kind, extName, userName, ok := lookup(name); ok {
				sub.SubexprStart = nameStart
				sub.FuncKind = kind
				sub.FuncName = name
				sub.ExtendedName = extName
				sub.UserFuncName = userName
				sub.SolveStart = top.openPos + 1
				sub.SolveEnd = i - 1
				sub.FArgs = lexer.SplitArgs(interior, true)
				subs = append(subs, sub)
				continue
			}
		}

		// Bare parenthesized subexpression (possibly later bound to a
		// unary builtin by bindUnaryFunctions in §4.4).
		if interior == "" {
			return nil, errors.New(facility, errors.KindParenEmpty, errors.Fatal,
				"Empty parenthesis pair.", source, top.openPos)
		}
		sub.SolveStart = top.openPos + 1
		sub.SolveEnd = i - 1
		subs = append(subs, sub)
	}
	if len(stack) > 0 {
		return nil, errors.New(facility, errors.KindParenNotClosed, errors.Fatal,
			"Open parenthesis has no closing parenthesis.", source, stack[len(stack)-1].openPos)
	}

	sort.SliceStable(subs, func(i, j int) bool { return subs[i].Depth > subs[j].Depth })

	whole := ast.Subexpr{
		Depth:      0,
		SolveStart: 0,
		SolveEnd:   len(source) - 1,
	}
	subs = append(subs, whole)
	return subs, nil
}
