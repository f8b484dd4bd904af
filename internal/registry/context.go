package registry

import (
	"sync"

	"texpr/internal/errors"
	"texpr/internal/intmask"
)

// Context bundles every piece of process-wide (or, per spec §9's
// "explicit context" design note, caller-owned) mutable state: the six
// registries, the coarse parser/evaluator locks, the answer cells, the
// active integer width, and the error ring.
//
// Lock acquisition order, duplicated per domain, is fixed per spec §5:
// parser/evaluator -> user-functions -> variables -> (error db is always
// leaf-acquired last, briefly, to append a record). No code path in this
// module acquires locks against this order.
type Context struct {
	SciVars      *varTable
	IntVars      *intVarTable
	SciUserFuncs *ufuncTable
	IntUserFuncs *ufuncTable

	RealUnary    map[string]RealUnaryFunc
	ComplexUnary map[string]ComplexUnaryFunc
	Extended     map[string]ExtendedFunc
	IntExtended  map[string]IntExtendedFunc

	ParserMu    sync.Mutex
	EvaluatorMu sync.Mutex
	IntParserMu    sync.Mutex
	IntEvaluatorMu sync.Mutex

	Errors *errors.Ring

	widthMu sync.RWMutex
	width   intmask.Width

	ansMu     sync.RWMutex
	ans       complex128
	intAns    int64
}

// NewContext returns a Context with empty registries, the default
// integer width, and empty builtin tables; internal/funcs.RegisterBuiltins
// fills those tables separately, which avoids an import cycle between
// registry and funcs.
func NewContext() *Context {
	c := &Context{
		SciVars:      newVarTable(),
		IntVars:      newIntVarTable(),
		SciUserFuncs: newUfuncTable(),
		IntUserFuncs: newUfuncTable(),
		RealUnary:    make(map[string]RealUnaryFunc),
		ComplexUnary: make(map[string]ComplexUnaryFunc),
		Extended:     make(map[string]ExtendedFunc),
		IntExtended:  make(map[string]IntExtendedFunc),
		Errors:       errors.NewRing(),
		width:        intmask.DefaultWidth,
	}
	// The constants pi, e, i and c are seeded here so NewContext alone is
	// already usable without a separate "install constants" call ("ans"
	// is not a variable; GetVar answers it from the answer cell).
	c.SciVars.vars["pi"] = Variable{Value: complex(3.14159265358979323846, 0), IsConstant: true}
	c.SciVars.vars["e"] = Variable{Value: complex(2.71828182845904523536, 0), IsConstant: true}
	c.SciVars.vars["i"] = Variable{Value: complex(0, 1), IsConstant: true}
	c.SciVars.vars["c"] = Variable{Value: complex(299792458, 0), IsConstant: true}
	return c
}

// Width returns the active integer width.
func (c *Context) Width() intmask.Width {
	c.widthMu.RLock()
	defer c.widthMu.RUnlock()
	return c.width
}

// SetWidth reconfigures the active integer width. Per spec §5, this takes
// both the integer evaluator lock and (transitively, via the write lock
// here) the width lock, so no integer evaluation observes a torn mask.
func (c *Context) SetWidth(w intmask.Width) bool {
	if !w.Valid() {
		return false
	}
	c.IntEvaluatorMu.Lock()
	defer c.IntEvaluatorMu.Unlock()
	c.widthMu.Lock()
	defer c.widthMu.Unlock()
	c.width = w
	return true
}

// Ans returns the shared scientific answer cell (tms_g_ans).
func (c *Context) Ans() complex128 {
	c.ansMu.RLock()
	defer c.ansMu.RUnlock()
	return c.ans
}

// SetAns updates the shared scientific answer cell.
func (c *Context) SetAns(v complex128) {
	c.ansMu.Lock()
	defer c.ansMu.Unlock()
	c.ans = v
}

// IntAns returns the shared integer answer cell (tms_g_int_ans).
func (c *Context) IntAns() int64 {
	c.ansMu.RLock()
	defer c.ansMu.RUnlock()
	return c.intAns
}

// SetIntAns updates the shared integer answer cell.
func (c *Context) SetIntAns(v int64) {
	c.ansMu.Lock()
	defer c.ansMu.Unlock()
	c.intAns = v
}

// GetVar looks up a scientific variable by name, also recognizing "ans".
func (c *Context) GetVar(name string) (complex128, bool) {
	if name == "ans" {
		return c.Ans(), true
	}
	v, ok := c.SciVars.get(name)
	return v.Value, ok
}

// SetVar installs or updates a scientific variable.
func (c *Context) SetVar(name string, value complex128, isConstant bool) error {
	return c.SciVars.set(name, Variable{Value: value, IsConstant: isConstant})
}

// RemoveVar deletes a scientific variable (no-op if absent).
func (c *Context) RemoveVar(name string) error { return c.SciVars.remove(name) }

// GetIntVar looks up an integer variable by name, also recognizing "ans".
func (c *Context) GetIntVar(name string) (int64, bool) {
	if name == "ans" {
		return c.IntAns(), true
	}
	v, ok := c.IntVars.get(name)
	return v.Value, ok
}

// SetIntVar installs or updates an integer variable.
func (c *Context) SetIntVar(name string, value int64, isConstant bool) error {
	return c.IntVars.set(name, IntVariable{Value: value, IsConstant: isConstant})
}

// RemoveIntVar deletes an integer variable (no-op if absent).
func (c *Context) RemoveIntVar(name string) error { return c.IntVars.remove(name) }

// GetUFunction looks up a registered scientific user function.
func (c *Context) GetUFunction(name string) (*UserFunction, bool) { return c.SciUserFuncs.get(name) }

// GetIntUFunction looks up a registered integer user function.
func (c *Context) GetIntUFunction(name string) (*UserFunction, bool) {
	return c.IntUserFuncs.get(name)
}

// AllUFunctions returns a snapshot of every registered scientific user
// function, keyed by name; used by internal/refgraph to walk the
// reference graph.
func (c *Context) AllUFunctions() map[string]*UserFunction { return c.SciUserFuncs.snapshot() }

// AllIntUFunctions is the integer-domain analog of AllUFunctions.
func (c *Context) AllIntUFunctions() map[string]*UserFunction { return c.IntUserFuncs.snapshot() }

// IsBuiltinName reports whether name is already claimed by a builtin
// function in any of the four builtin tables (real unary, complex unary,
// scientific extended, integer extended). User functions and variables
// are not checked.
func (c *Context) IsBuiltinName(name string) bool {
	if _, ok := c.RealUnary[name]; ok {
		return true
	}
	if _, ok := c.ComplexUnary[name]; ok {
		return true
	}
	if _, ok := c.Extended[name]; ok {
		return true
	}
	if _, ok := c.IntExtended[name]; ok {
		return true
	}
	return false
}
