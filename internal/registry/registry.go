// Package registry implements the concurrent global registries of spec
// §4.13 and §5: per-domain variable tables and user-function tables, each
// guarded by its own mutex, the builtin function tables (plain maps,
// filled once at setup and read without a lock), plus the
// Context type that ties them together under the fixed lock-acquisition
// order of spec §5 ("parser/evaluator -> user-functions -> variables").
package registry

import (
	"sync"

	"texpr/internal/ast"
	"texpr/internal/errors"
	"texpr/internal/intmask"
)

// Variable is one entry of the scientific variable registry.
type Variable struct {
	Value      complex128
	IsConstant bool
}

// IntVariable is one entry of the integer variable registry.
type IntVariable struct {
	Value      int64
	IsConstant bool
}

// UserFunction is one entry of a user-function registry: its argument
// names and its compiled body, kept as a template that is deep-copied
// per invocation (spec §4.9/§4.10).
type UserFunction struct {
	ArgNames []string
	Body     *ast.Expr
	// Source is the textual argument-list-free source the function
	// was registered with, retained so internal/refgraph can re-scan it
	// textually for indirect references to still-uncompiled callees
	// (spec §4.12 step 3).
	Source string
}

// RealUnaryFunc evaluates a real built-in; ok=false signals "this input
// needs the complex domain", triggering promotion (spec §4.14/§4.13).
type RealUnaryFunc func(x float64) (y float64, ok bool)

// ComplexUnaryFunc evaluates a complex built-in.
type ComplexUnaryFunc func(x complex128) complex128

// ExtCall carries everything an extended scientific function needs: its
// raw (unevaluated) argument strings, the label bindings in scope, and a
// callback to evaluate an argument string as a full subexpression (used
// by functions like der/integrate that must sample their argument at
// several points, and by ipv4/dotted that consume a string literal).
type ExtCall struct {
	Args   []string
	Labels map[string]complex128
	Eval   func(expr string, labels map[string]complex128) (complex128, error)
}

// ExtendedFunc is a built-in variadic scientific function.
type ExtendedFunc func(*ExtCall) (complex128, error)

// IntExtCall is the integer-domain analog of ExtCall.
type IntExtCall struct {
	Args   []string
	Labels map[string]int64
	Eval   func(expr string, labels map[string]int64) (int64, error)
	Width  intmask.Width
}

// IntExtendedFunc is a built-in variadic integer function.
type IntExtendedFunc func(*IntExtCall) (int64, error)

// varTable guards a map of scientific variables.
type varTable struct {
	mu   sync.RWMutex
	vars map[string]Variable
}

func newVarTable() *varTable { return &varTable{vars: make(map[string]Variable)} }

func (t *varTable) get(name string) (Variable, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vars[name]
	return v, ok
}

func (t *varTable) set(name string, v Variable) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.vars[name]; ok && existing.IsConstant {
		return errors.New(errors.General, errors.KindOverwriteConstant, errors.Fatal,
			"Overwriting read-only variables is not allowed.", name, 0)
	}
	t.vars[name] = v
	return nil
}

func (t *varTable) remove(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.vars[name]; ok {
		if existing.IsConstant {
			return errors.New(errors.General, errors.KindOverwriteConstant, errors.Fatal,
				"Overwriting read-only variables is not allowed.", name, 0)
		}
		delete(t.vars, name)
	}
	return nil
}

func (t *varTable) names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.vars))
	for k := range t.vars {
		out = append(out, k)
	}
	return out
}

// intVarTable is the integer-domain analog of varTable.
type intVarTable struct {
	mu   sync.RWMutex
	vars map[string]IntVariable
}

func newIntVarTable() *intVarTable { return &intVarTable{vars: make(map[string]IntVariable)} }

func (t *intVarTable) get(name string) (IntVariable, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vars[name]
	return v, ok
}

func (t *intVarTable) set(name string, v IntVariable) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.vars[name]; ok && existing.IsConstant {
		return errors.New(errors.General, errors.KindOverwriteConstant, errors.Fatal,
			"Overwriting read-only variables is not allowed.", name, 0)
	}
	t.vars[name] = v
	return nil
}

func (t *intVarTable) remove(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.vars[name]; ok {
		if existing.IsConstant {
			return errors.New(errors.General, errors.KindOverwriteConstant, errors.Fatal,
				"Overwriting read-only variables is not allowed.", name, 0)
		}
		delete(t.vars, name)
	}
	return nil
}

func (t *intVarTable) names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]string, 0, len(t.vars))
	for k := range t.vars {
		out = append(out, k)
	}
	return out
}

// ufuncTable guards a map of user functions.
type ufuncTable struct {
	mu    sync.RWMutex
	funcs map[string]*UserFunction
}

func newUfuncTable() *ufuncTable { return &ufuncTable{funcs: make(map[string]*UserFunction)} }

func (t *ufuncTable) get(name string) (*UserFunction, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	f, ok := t.funcs[name]
	return f, ok
}

func (t *ufuncTable) set(name string, f *UserFunction) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.funcs[name] = f
}

func (t *ufuncTable) remove(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.funcs, name)
}

func (t *ufuncTable) snapshot() map[string]*UserFunction {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]*UserFunction, len(t.funcs))
	for k, v := range t.funcs {
		out[k] = v
	}
	return out
}
