package compiler

import (
	"texpr/internal/ast"
	"texpr/internal/lexer"
	"texpr/internal/registry"
)

// bindUnaryFunctions implements spec §4.4: a bare subexpression (FuncKind
// still None after discovery) whose '(' is immediately preceded by a name
// resolving to a registered real or complex unary builtin is rebound to
// that function, and its SubexprStart moves left to cover the name. User
// functions and extended (variadic) functions are already classified by
// discoverSubexprs regardless of arity, since a name-before-paren lookup
// doesn't care how many arguments follow; this pass only ever promotes
// the builtin-unary case discovery has no reason to special-case.
//
// The integer domain has no bare unary builtins (its extended functions
// are all call-style, caught at discovery time), so this is a no-op there.
func bindUnaryFunctions(source string, subs []ast.Subexpr, isInteger bool, ctx *registry.Context) {
	if isInteger {
		return
	}
	for i := range subs {
		sub := &subs[i]
		if sub.FuncKind != ast.FuncNone {
			continue
		}
		parenPos := sub.SubexprStart
		name, start, ok := lexer.NameBeforeParen(source, parenPos)
		if !ok {
			continue
		}
		if fn, ok := ctx.RealUnary[name]; ok {
			sub.FuncKind = ast.FuncRealUnary
			sub.FuncName = name
			sub.RealUnary = fn
			sub.SubexprStart = start
			continue
		}
		if fn, ok := ctx.ComplexUnary[name]; ok {
			sub.FuncKind = ast.FuncComplexUnary
			sub.FuncName = name
			sub.ComplexUnary = fn
			sub.SubexprStart = start
		}
	}
}
