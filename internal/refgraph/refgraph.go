// Package refgraph implements the user-function reference-graph analyzer
// of spec §4.12: on registration of a user function F, detect whether F
// self-references or participates in a cycle, by walking both F's
// compiled subexpressions and a textual, word-boundary scan of every
// variadic/user-call argument string (to catch references that appear
// only inside an argument expression not yet compiled as one of F's own
// subexpressions).
package refgraph

import (
	"texpr/internal/ast"
	"texpr/internal/registry"
)

// Func is the minimal view refgraph needs of a candidate or already
// registered user function.
type Func struct {
	Name   string
	Body   *ast.Expr
	Source string // raw body text, for the textual argument scan
}

// DetectCycle reports whether registering candidate (whose body has
// already been parsed) would create a self-reference or a cycle, given
// the set of already-registered functions (which must not include an
// entry for candidate.Name under its old body - registration replaces it
// temporarily before calling this, per spec §4.12 step 2).
//
// It returns true, and the name of the function completing the cycle,
// when a cycle exists.
func DetectCycle(candidate Func, existing map[string]*registry.UserFunction) (cyclic bool, via string) {
	visited := map[string]bool{candidate.Name: true}
	var walk func(f Func) (bool, string)
	walk = func(f Func) (bool, string) {
		refs := directReferences(f, existing, candidate)
		for _, name := range refs {
			if name == candidate.Name {
				return true, f.Name
			}
			if visited[name] {
				continue
			}
			visited[name] = true
			uf, ok := existing[name]
			if !ok {
				continue
			}
			if cyc, via := walk(Func{Name: name, Body: uf.Body, Source: uf.Source}); cyc {
				return true, via
			}
		}
		return false, ""
	}
	return walk(candidate)
}

// directReferences collects the set of user-function names f's body
// directly calls: once from f's compiled subexpressions (user calls are
// tagged ast.FuncUser), and once more from a textual word-boundary scan
// of f's source, which also reaches names only visible inside an
// extended/user call's pre-split, not-yet-compiled argument strings
// (spec §4.12 step 3).
func directReferences(f Func, existing map[string]*registry.UserFunction, candidate Func) []string {
	seen := map[string]bool{}
	var out []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	if f.Body != nil {
		for _, sub := range f.Body.Subexprs {
			if sub.FuncKind == ast.FuncUser {
				add(sub.UserFuncName)
			}
		}
	}

	for name := range existing {
		if wordBoundaryMatch(f.Source, name) {
			add(name)
		}
	}
	if wordBoundaryMatch(f.Source, candidate.Name) {
		add(candidate.Name)
	}
	return out
}

// wordBoundaryMatch reports whether name occurs in s as a whole
// identifier — not as a substring of a longer name — per spec §9's
// "the exact string match must be a word-boundary match, not substring."
func wordBoundaryMatch(s, name string) bool {
	if name == "" {
		return false
	}
	n := len(name)
	for i := 0; i+n <= len(s); i++ {
		if s[i:i+n] != name {
			continue
		}
		if i > 0 && isNameChar(s[i-1]) {
			continue
		}
		if i+n < len(s) && isNameChar(s[i+n]) {
			continue
		}
		return true
	}
	return false
}

func isNameChar(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}
