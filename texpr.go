// Package texpr is the public surface of a scientific and integer
// arithmetic expression compiler and evaluator: normalize, parse, bind,
// and evaluate an expression, with user-defined variables and functions,
// complex-domain promotion, and a fixed-width integer domain sharing the
// same grammar.
//
// The convenience functions (Solve, IntSolve, ...) operate against a
// package-level default Context (see NewContext for an isolated one);
// every locking, variable, and function registry concern underneath is
// the registry.Context this package wraps.
package texpr

import (
	"context"
	"fmt"

	"texpr/internal/ast"
	"texpr/internal/compiler"
	"texpr/internal/concurrency"
	"texpr/internal/errors"
	"texpr/internal/eval"
	"texpr/internal/funcs"
	"texpr/internal/intmask"
	"texpr/internal/refgraph"
	"texpr/internal/registry"
)

// Option is a bitmask of the option flags the *_e entry points accept
// (spec §6 "Recognized option flags").
type Option int

const (
	// ENABLE_CMPLX lets a scientific evaluation return or propagate a
	// complex result instead of raising KindComplexDisabled.
	ENABLE_CMPLX Option = 1 << iota
	// ENABLE_UNK compiles every key of the caller's labels map as a
	// label whose value comes from that map, ahead of any variable of
	// the same name. Other unknown names still raise
	// KindUndefinedVariable.
	ENABLE_UNK
	// NO_LOCK skips acquiring the Context's coarse parser/evaluator
	// locks around this call, for callers that already hold them (for
	// example SolveAll/IntSolveAll, which take the locks once for the
	// whole batch).
	NO_LOCK
	// PRINT_ERRORS renders the accumulated error ring into the
	// returned error's text and clears it before returning, matching
	// solve/int_solve's always-on default policy (spec §6 "User-visible
	// policy").
	PRINT_ERRORS
)

var pkgCtx = NewContext()

// NewContext returns a fresh Context with every builtin function
// registered, ready for Parse/Evaluate/Solve-family calls that take an
// explicit *registry.Context, or for a caller who wants isolation from
// the package-level default the bare functions below use.
func NewContext() *registry.Context {
	ctx := registry.NewContext()
	funcs.RegisterBuiltins(ctx)
	return ctx
}

// Solve normalizes, parses with automatic domain selection (the complex
// domain is enabled), and evaluates expr against the package-level
// default Context, printing then clearing any accumulated errors before
// returning, per spec §6/§7's default policy for solve.
func Solve(expr string) (complex128, error) {
	return SolveIn(pkgCtx, expr)
}

// SolveIn is Solve against an explicit Context. Per spec §6/§7, solve
// always prints then clears the error ring, unlike solve_e which only
// does so when the caller passes PRINT_ERRORS explicitly.
func SolveIn(ctx *registry.Context, expr string) (complex128, error) {
	return SolveE(ctx, expr, ENABLE_CMPLX|PRINT_ERRORS, nil)
}

// SolveE is solve_e: expr is compiled and evaluated against ctx with the
// given options and label bindings. Unlike Solve, printing/clearing the
// error ring only happens when PRINT_ERRORS is set; otherwise the caller
// is expected to inspect ctx.Errors directly.
func SolveE(ctx *registry.Context, expr string, options Option, labels map[string]complex128) (complex128, error) {
	if options&NO_LOCK == 0 {
		ctx.ParserMu.Lock()
	}
	var compiled *ast.Expr
	var rec *errors.Record
	var names []string
	if options&ENABLE_UNK != 0 {
		names = labelNames(labels)
		compiled, rec = compiler.CompileScientificWithLabels(expr, ctx, names)
	} else {
		compiled, rec = compiler.CompileScientific(expr, ctx)
	}
	if options&NO_LOCK == 0 {
		ctx.ParserMu.Unlock()
	}
	if rec != nil {
		return nanComplex(), finishError(ctx, rec, options)
	}
	compiled.ComplexEnabled = options&ENABLE_CMPLX != 0
	if names != nil {
		SetLabelsValues(compiled, valuesInOrder(names, labels))
	}

	if options&NO_LOCK == 0 {
		ctx.EvaluatorMu.Lock()
	}
	v, rec := eval.Evaluate(compiled, ctx, labels)
	if options&NO_LOCK == 0 {
		ctx.EvaluatorMu.Unlock()
	}
	if rec != nil {
		return nanComplex(), finishError(ctx, rec, options)
	}

	ctx.SetAns(v)
	if compiled.AssignTarget != "" && compiled.AssignTarget != "ans" {
		// set() itself rejects overwriting a constant; per spec §5 that
		// case is a silent no-op here, not a failed solve.
		_ = ctx.SetVar(compiled.AssignTarget, v, false)
	}
	return v, finishError(ctx, nil, options)
}

// IntSolve is int_solve: solve in the fixed-width integer domain against
// the package-level default Context.
func IntSolve(expr string) (int64, error) {
	return IntSolveIn(pkgCtx, expr)
}

// IntSolveIn is IntSolve against an explicit Context; always prints then
// clears the error ring, matching SolveIn's policy for the integer domain.
func IntSolveIn(ctx *registry.Context, expr string) (int64, error) {
	return IntSolveE(ctx, expr, PRINT_ERRORS, nil)
}

// IntSolveE is int_solve_e.
func IntSolveE(ctx *registry.Context, expr string, options Option, labels map[string]int64) (int64, error) {
	if options&NO_LOCK == 0 {
		ctx.IntParserMu.Lock()
	}
	var compiled *ast.Expr
	var rec *errors.Record
	var names []string
	if options&ENABLE_UNK != 0 {
		names = intLabelNames(labels)
		compiled, rec = compiler.CompileIntegerWithLabels(expr, ctx, names)
	} else {
		compiled, rec = compiler.CompileInteger(expr, ctx)
	}
	if options&NO_LOCK == 0 {
		ctx.IntParserMu.Unlock()
	}
	if rec != nil {
		return -1, finishError(ctx, rec, options)
	}
	if names != nil {
		SetIntLabelsValues(compiled, intValuesInOrder(names, labels))
	}

	if options&NO_LOCK == 0 {
		ctx.IntEvaluatorMu.Lock()
	}
	v, rec := eval.EvaluateInt(compiled, ctx, labels)
	if options&NO_LOCK == 0 {
		ctx.IntEvaluatorMu.Unlock()
	}
	if rec != nil {
		return -1, finishError(ctx, rec, options)
	}

	ctx.SetIntAns(v)
	if compiled.AssignTarget != "" && compiled.AssignTarget != "ans" {
		_ = ctx.SetIntVar(compiled.AssignTarget, v, false)
	}
	return v, finishError(ctx, nil, options)
}

// SolveAll is Solve batched over exprs, run concurrently across at most
// workers goroutines (0 or negative means runtime.NumCPU, per
// internal/concurrency.EvalAll). The coarse parser/evaluator locks are
// taken once for the whole batch rather than once per expression, so
// the per-job calls pass NO_LOCK; each table underneath (variables,
// user functions) still guards itself with its own mutex, so concurrent
// jobs reading/writing ctx stay safe. results[i] corresponds to
// exprs[i].
func SolveAll(ctx *registry.Context, exprs []string, workers int) []complex128 {
	ctx.ParserMu.Lock()
	ctx.EvaluatorMu.Lock()
	defer ctx.ParserMu.Unlock()
	defer ctx.EvaluatorMu.Unlock()

	jobs := make([]concurrency.Job, len(exprs))
	for i, expr := range exprs {
		expr := expr
		jobs[i] = concurrency.Job{Index: i, Run: func() (any, error) {
			return SolveE(ctx, expr, ENABLE_CMPLX|NO_LOCK, nil)
		}}
	}
	raw := concurrency.EvalAll(context.Background(), jobs, workers)

	results := make([]complex128, len(exprs))
	for i, r := range raw {
		if r.Err != nil {
			results[i] = nanComplex()
			continue
		}
		results[i] = r.Value.(complex128)
	}
	return results
}

// IntSolveAll is SolveAll's integer-domain analog.
func IntSolveAll(ctx *registry.Context, exprs []string, workers int) []int64 {
	ctx.IntParserMu.Lock()
	ctx.IntEvaluatorMu.Lock()
	defer ctx.IntParserMu.Unlock()
	defer ctx.IntEvaluatorMu.Unlock()

	jobs := make([]concurrency.Job, len(exprs))
	for i, expr := range exprs {
		expr := expr
		jobs[i] = concurrency.Job{Index: i, Run: func() (any, error) {
			return IntSolveE(ctx, expr, NO_LOCK, nil)
		}}
	}
	raw := concurrency.EvalAll(context.Background(), jobs, workers)

	results := make([]int64, len(exprs))
	for i, r := range raw {
		if r.Err != nil {
			results[i] = -1
			continue
		}
		results[i] = r.Value.(int64)
	}
	return results
}

// Parse is parse: compile expr into a reusable *ast.Expr without
// evaluating it, binding labelNames as the label scope whose values
// SetLabelsValues later supplies.
func Parse(ctx *registry.Context, expr string, options Option, labelNames []string) (*ast.Expr, error) {
	compiled, rec := compiler.CompileScientificWithLabels(expr, ctx, labelNames)
	if rec != nil {
		return nil, rec
	}
	compiled.ComplexEnabled = options&ENABLE_CMPLX != 0
	return compiled, nil
}

// ParseInt is parse's integer-domain analog.
func ParseInt(ctx *registry.Context, expr string, options Option, labelNames []string) (*ast.Expr, error) {
	compiled, rec := compiler.CompileIntegerWithLabels(expr, ctx, labelNames)
	if rec != nil {
		return nil, rec
	}
	return compiled, nil
}

// Evaluate runs a previously Parse-d expression against ctx.
func Evaluate(ctx *registry.Context, expr *ast.Expr, options Option) (complex128, error) {
	if expr.IsInteger {
		return nanComplex(), fmt.Errorf("texpr: Evaluate called with an integer-domain Expr; use EvaluateInt")
	}
	v, rec := eval.Evaluate(expr, ctx, nil)
	if rec != nil {
		return nanComplex(), finishError(ctx, rec, options)
	}
	ctx.SetAns(v)
	return v, finishError(ctx, nil, options)
}

// EvaluateInt runs a previously ParseInt-d expression against ctx.
func EvaluateInt(ctx *registry.Context, expr *ast.Expr, options Option) (int64, error) {
	if !expr.IsInteger {
		return -1, fmt.Errorf("texpr: EvaluateInt called with a scientific Expr; use Evaluate")
	}
	v, rec := eval.EvaluateInt(expr, ctx, nil)
	if rec != nil {
		return -1, finishError(ctx, rec, options)
	}
	ctx.SetIntAns(v)
	return v, finishError(ctx, nil, options)
}

// SetLabelsValues binds values to expr's labels by label ID, for a
// reusable Expr a caller intends to Evaluate repeatedly with different
// inputs (spec §6 set_labels_values). values is indexed by LabelID, the
// same indexing Evaluate's own labelValues-by-name path resolves to
// internally.
func SetLabelsValues(expr *ast.Expr, values []complex128) {
	for _, l := range expr.Labels {
		if l.LabelID >= len(values) {
			continue
		}
		v := values[l.LabelID]
		if l.Negative {
			v = -v
		}
		expr.Write(l.Target, v)
	}
}

// SetIntLabelsValues is SetLabelsValues's integer-domain analog.
func SetIntLabelsValues(expr *ast.Expr, values []int64) {
	for _, l := range expr.Labels {
		if l.LabelID >= len(values) {
			continue
		}
		v := values[l.LabelID]
		if l.Negative {
			v = -v
		}
		expr.WriteInt(l.Target, v)
	}
}

// valuesInOrder builds a LabelID-ordered slice out of a name-keyed label
// map, using names (the exact slice CompileScientificWithLabels assigned
// LabelIDs from) rather than re-deriving the name order from labels
// itself, since map iteration order is not stable across calls.
func valuesInOrder(names []string, labels map[string]complex128) []complex128 {
	values := make([]complex128, len(names))
	for i, name := range names {
		values[i] = labels[name]
	}
	return values
}

// intValuesInOrder is valuesInOrder's integer-domain analog.
func intValuesInOrder(names []string, labels map[string]int64) []int64 {
	values := make([]int64, len(names))
	for i, name := range names {
		values[i] = labels[name]
	}
	return values
}

// SetVar installs or updates a scientific variable on ctx (spec §6
// set_var).
func SetVar(ctx *registry.Context, name string, value complex128, isConstant bool) error {
	return ctx.SetVar(name, value, isConstant)
}

// RemoveVar deletes a scientific variable from ctx.
func RemoveVar(ctx *registry.Context, name string) error { return ctx.RemoveVar(name) }

// GetVar looks up a scientific variable on ctx.
func GetVar(ctx *registry.Context, name string) (complex128, bool) { return ctx.GetVar(name) }

// SetIntVar, RemoveIntVar, GetIntVar are SetVar/RemoveVar/GetVar's
// integer-domain analogs.
func SetIntVar(ctx *registry.Context, name string, value int64, isConstant bool) error {
	return ctx.SetIntVar(name, value, isConstant)
}

func RemoveIntVar(ctx *registry.Context, name string) error { return ctx.RemoveIntVar(name) }

func GetIntVar(ctx *registry.Context, name string) (int64, bool) { return ctx.GetIntVar(name) }

// SetUFunction is set_ufunction: compile body in the label scope named
// by the comma-separated argNamesCSV, reject it if registering it would
// shadow a builtin or create a self/circular reference (spec §4.12),
// and install it on ctx under name.
func SetUFunction(ctx *registry.Context, name, argNamesCSV, body string) error {
	return setUFunction(ctx, false, name, argNamesCSV, body)
}

// SetIntUFunction is SetUFunction's integer-domain analog.
func SetIntUFunction(ctx *registry.Context, name, argNamesCSV, body string) error {
	return setUFunction(ctx, true, name, argNamesCSV, body)
}

func setUFunction(ctx *registry.Context, isInteger bool, name, argNamesCSV, body string) error {
	if ctx.IsBuiltinName(name) {
		return errors.New(errors.General, errors.KindFunctionShadowsVar, errors.Fatal,
			fmt.Sprintf("%q is already a built-in function name", name), body, 0)
	}
	argNames := splitCSV(argNamesCSV)
	compiled, rec := compiler.CompileUserBody(body, isInteger, ctx, argNames)
	if rec != nil {
		return rec
	}
	uf := &registry.UserFunction{ArgNames: argNames, Body: compiled, Source: body}

	check := func(candidateName string, candidateBody *ast.Expr, source string, existing map[string]*registry.UserFunction) (bool, string) {
		return refgraph.DetectCycle(refgraph.Func{Name: candidateName, Body: candidateBody, Source: source}, existing)
	}

	var setRec *errors.Record
	if isInteger {
		setRec = ctx.SetIntUFunction(name, uf, check)
	} else {
		setRec = ctx.SetUFunction(name, uf, check)
	}
	if setRec != nil {
		return setRec
	}
	return nil
}

// RemoveUFunction, RemoveIntUFunction are remove_ufunction and its
// integer-domain analog.
func RemoveUFunction(ctx *registry.Context, name string) { ctx.RemoveUFunction(name) }

func RemoveIntUFunction(ctx *registry.Context, name string) { ctx.RemoveIntUFunction(name) }

// SetIntMask is set_int_mask: reconfigure ctx's active integer width.
func SetIntMask(ctx *registry.Context, width int) bool {
	return ctx.SetWidth(intmask.Width(width))
}

// PrintErrors is print_errors: render every ring record matching
// facilities into a single string.
func PrintErrors(ctx *registry.Context, facilities errors.Facility) string {
	return ctx.Errors.Print(facilities)
}

// ClearErrors is clear_errors.
func ClearErrors(ctx *registry.Context, facilities errors.Facility) {
	ctx.Errors.Clear(facilities)
}

// GetErrorCount is get_error_count: severity is -1 to match either
// severity, or errors.Fatal/errors.NonFatal to match one.
func GetErrorCount(ctx *registry.Context, facilities errors.Facility, severity int) int {
	return ctx.Errors.Count(facilities, severity)
}

// FindError is find_error: the first ring record matching facilities
// whose message contains msg, or nil.
func FindError(ctx *registry.Context, facilities errors.Facility, msg string) *errors.Record {
	return ctx.Errors.Find(facilities, msg)
}

// finishError pushes rec (if non-nil) onto ctx's error ring, applies the
// solve/solve_e error-ring policy for options, and returns the error the
// caller should see: rec itself (so errors.As still works) when
// PRINT_ERRORS is unset, or one wrapping the rendered ring text when set.
func finishError(ctx *registry.Context, rec *errors.Record, options Option) error {
	if rec != nil {
		ctx.Errors.Push(rec)
	}
	if options&PRINT_ERRORS == 0 {
		if rec == nil {
			return nil
		}
		return rec
	}
	rendered := ctx.Errors.Print(errors.AllFacilities)
	ctx.Errors.Clear(errors.AllFacilities)
	if rendered == "" {
		return nil
	}
	return fmt.Errorf("%s", rendered)
}

func labelNames(labels map[string]complex128) []string {
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	return names
}

func intLabelNames(labels map[string]int64) []string {
	names := make([]string, 0, len(labels))
	for k := range labels {
		names = append(names, k)
	}
	return names
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			out = append(out, trimSpaces(s[start:i]))
			start = i + 1
		}
	}
	return out
}

func trimSpaces(s string) string {
	for len(s) > 0 && s[0] == ' ' {
		s = s[1:]
	}
	for len(s) > 0 && s[len(s)-1] == ' ' {
		s = s[:len(s)-1]
	}
	return s
}

func nanComplex() complex128 {
	nan := 0.0
	nan = nan / nan
	return complex(nan, nan)
}
