package registry

import (
	"texpr/internal/ast"
	"texpr/internal/errors"
)

// CycleCheck mirrors refgraph.DetectCycle's signature without importing
// internal/refgraph (which itself imports registry for *UserFunction,
// so the dependency can only run one way). refgraph.DetectCycle takes a
// refgraph.Func and a table instead, so callers that need cycle
// detection wrap it in a closure of this type (the root texpr package
// does so).
type CycleCheck func(name string, body *ast.Expr, source string, existing map[string]*UserFunction) (cyclic bool, via string)

// SetUFunction registers or replaces a scientific user function, per
// spec §4.12: the candidate is installed first, check runs against the
// table of every other already-registered function, and on a detected
// cycle the previous definition (if any) is restored and an error
// describing the offending name is returned.
func (c *Context) SetUFunction(name string, uf *UserFunction, check CycleCheck) *errors.Record {
	return setUFunction(c.SciUserFuncs, name, uf, check)
}

// SetIntUFunction is SetUFunction's integer-domain analog.
func (c *Context) SetIntUFunction(name string, uf *UserFunction, check CycleCheck) *errors.Record {
	return setUFunction(c.IntUserFuncs, name, uf, check)
}

func setUFunction(table *ufuncTable, name string, uf *UserFunction, check CycleCheck) *errors.Record {
	previous, hadPrevious := table.get(name)

	table.set(name, uf)

	existing := table.snapshot()
	delete(existing, name)

	cyclic, via := check(name, uf.Body, uf.Source, existing)
	if !cyclic {
		return nil
	}

	if hadPrevious {
		table.set(name, previous)
	} else {
		table.remove(name)
	}

	kind := errors.KindCircularReference
	msg := "Function \"" + name + "\" would create a circular reference through \"" + via + "\"."
	if via == name {
		kind = errors.KindSelfReference
		msg = "Function \"" + name + "\" cannot reference itself."
	}
	return errors.New(errors.General, kind, errors.Fatal, msg, uf.Source, 0)
}

// RemoveUFunction deletes a registered scientific user function (no-op
// if absent).
func (c *Context) RemoveUFunction(name string) { c.SciUserFuncs.remove(name) }

// RemoveIntUFunction deletes a registered integer user function.
func (c *Context) RemoveIntUFunction(name string) { c.IntUserFuncs.remove(name) }
