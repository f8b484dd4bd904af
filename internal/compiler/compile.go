package compiler

import (
	"texpr/internal/ast"
	"texpr/internal/errors"
	"texpr/internal/lexer"
	"texpr/internal/registry"
)

// CompileScientific normalizes and compiles a scientific (complex128)
// expression against ctx, with no label scope (ordinary solve/parse
// entry points never reference labels).
func CompileScientific(input string, ctx *registry.Context) (*ast.Expr, *errors.Record) {
	return CompileScientificWithLabels(input, ctx, nil)
}

// CompileScientificWithLabels is CompileScientific, additionally binding
// labelNames as the label scope (spec §6's ENABLE_UNK option): every name
// in labelNames resolves to a label the caller supplies a value for at
// evaluation time, ahead of any variable of the same name.
func CompileScientificWithLabels(input string, ctx *registry.Context, labelNames []string) (*ast.Expr, *errors.Record) {
	norm, rec := lexer.Normalize(input, errors.Parser)
	if rec != nil {
		return nil, rec
	}
	expr, rec := compileBody(norm.Source, false, ctx, labelNames, errors.Parser)
	if rec != nil {
		return nil, rec
	}
	expr.AssignTarget = norm.AssignTarget
	return expr, nil
}

// CompileInteger is CompileScientific's integer-domain analog.
func CompileInteger(input string, ctx *registry.Context) (*ast.Expr, *errors.Record) {
	return CompileIntegerWithLabels(input, ctx, nil)
}

// CompileIntegerWithLabels is CompileScientificWithLabels's integer-domain
// analog.
func CompileIntegerWithLabels(input string, ctx *registry.Context, labelNames []string) (*ast.Expr, *errors.Record) {
	norm, rec := lexer.Normalize(input, errors.IntParser)
	if rec != nil {
		return nil, rec
	}
	expr, rec := compileBody(norm.Source, true, ctx, labelNames, errors.IntParser)
	if rec != nil {
		return nil, rec
	}
	expr.AssignTarget = norm.AssignTarget
	expr.IsInteger = true
	return expr, nil
}

// CompileUserBody compiles the already-normalized body of a user function
// definition, in the label scope named by argNames (spec §4.12 / §4.13).
func CompileUserBody(body string, isInteger bool, ctx *registry.Context, argNames []string) (*ast.Expr, *errors.Record) {
	facility := errors.Parser
	if isInteger {
		facility = errors.IntParser
	}
	return compileBody(body, isInteger, ctx, argNames, facility)
}

// compileBody runs the full §4.2-§4.9 pipeline over already-normalized
// source (no whitespace, collapsed signs, balanced parens), producing a
// complete ast.Expr. labelNames is nil for ordinary top-level expressions
// and non-nil when compiling a user function's body or the argument
// sub-expressions of a call appearing inside one (they share the
// enclosing function's label scope).
func compileBody(source string, isInteger bool, ctx *registry.Context, labelNames []string, facility errors.Facility) (*ast.Expr, *errors.Record) {
	lookup := buildLookup(ctx, isInteger)
	subs, rec := discoverSubexprs(source, facility, lookup)
	if rec != nil {
		return nil, rec
	}

	bindUnaryFunctions(source, subs, isInteger, ctx)

	expr := &ast.Expr{
		Source:     source,
		Subexprs:   subs,
		LabelNames: labelNames,
		IsInteger:  isInteger,
	}

	byOpenParen := make(map[int]int, len(expr.Subexprs))
	for i, sub := range expr.Subexprs[:len(expr.Subexprs)-1] {
		byOpenParen[sub.SolveStart-1] = i
	}

	for i := range expr.Subexprs {
		sub := &expr.Subexprs[i]
		switch sub.FuncKind {
		case ast.FuncExtended, ast.FuncUser:
			buildNodes(nil, source, sub, isInteger)
		default:
			ops, rec := operatorIndexes(source, sub.SolveStart, sub.SolveEnd, isInteger, facility, byOpenParen, expr.Subexprs)
			if rec != nil {
				return nil, rec
			}
			buildNodes(ops, source, sub, isInteger)
		}
		threadEvaluationOrder(sub, isInteger)
		wireInternalResults(sub, i)
	}

	startIndex := make(map[int]int, len(expr.Subexprs)-1)
	for i, sub := range expr.Subexprs[:len(expr.Subexprs)-1] {
		startIndex[sub.SubexprStart] = i
	}

	for i := range expr.Subexprs {
		sub := &expr.Subexprs[i]
		if sub.FuncKind == ast.FuncExtended || sub.FuncKind == ast.FuncUser {
			continue
		}
		if rec := bindSubexprOperands(expr, i, ctx, isInteger, facility, startIndex); rec != nil {
			return nil, rec
		}
	}

	for i := range expr.Subexprs {
		sub := &expr.Subexprs[i]
		if sub.FuncKind != ast.FuncUser {
			continue
		}
		if len(sub.FArgs) == 0 {
			continue
		}
		sub.ArgExprs = make([]*ast.Expr, len(sub.FArgs))
		for k, argSrc := range sub.FArgs {
			argExpr, rec := compileBody(argSrc, isInteger, ctx, labelNames, facility)
			if rec != nil {
				return nil, rec
			}
			sub.ArgExprs[k] = argExpr
		}
	}

	return expr, nil
}

// buildLookup returns the callLookup discoverSubexprs needs, backed by
// ctx's extended and user-function registries for the given domain.
func buildLookup(ctx *registry.Context, isInteger bool) callLookup {
	if isInteger {
		return func(name string) (ast.FuncKind, string, string, bool) {
			if _, ok := ctx.IntExtended[name]; ok {
				return ast.FuncExtended, name, "", true
			}
			if _, ok := ctx.GetIntUFunction(name); ok {
				return ast.FuncUser, "", name, true
			}
			return ast.FuncNone, "", "", false
		}
	}
	return func(name string) (ast.FuncKind, string, string, bool) {
		if _, ok := ctx.Extended[name]; ok {
			return ast.FuncExtended, name, "", true
		}
		if _, ok := ctx.GetUFunction(name); ok {
			return ast.FuncUser, "", name, true
		}
		return ast.FuncNone, "", "", false
	}
}
