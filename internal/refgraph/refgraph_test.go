package refgraph

import (
	"testing"

	"texpr/internal/registry"
)

func TestDetectCycleSelfReference(t *testing.T) {
	candidate := Func{Name: "loop", Source: "loop(x)+1"}
	cyclic, via := DetectCycle(candidate, map[string]*registry.UserFunction{})
	if !cyclic {
		t.Fatalf("DetectCycle(loop calling itself) = false, want true")
	}
	if via != "loop" {
		t.Fatalf("via = %q, want %q", via, "loop")
	}
}

func TestDetectCycleIndirect(t *testing.T) {
	existing := map[string]*registry.UserFunction{
		"f": {Source: "g(x)+1"},
	}
	candidate := Func{Name: "g", Source: "f(x)+1"}
	cyclic, _ := DetectCycle(candidate, existing)
	if !cyclic {
		t.Fatalf("DetectCycle(g->f->g) = false, want true")
	}
}

func TestDetectCycleNoCycle(t *testing.T) {
	existing := map[string]*registry.UserFunction{
		"f": {Source: "x*x"},
	}
	candidate := Func{Name: "g", Source: "f(x)+1"}
	cyclic, _ := DetectCycle(candidate, existing)
	if cyclic {
		t.Fatalf("DetectCycle(g calling f, f acyclic) = true, want false")
	}
}

func TestWordBoundaryMatchRejectsSubstring(t *testing.T) {
	// "sin" must not match inside "sinh".
	if wordBoundaryMatch("sinh(x)+1", "sin") {
		t.Fatalf("wordBoundaryMatch matched \"sin\" as a substring of \"sinh\"")
	}
	if !wordBoundaryMatch("sin(x)+1", "sin") {
		t.Fatalf("wordBoundaryMatch failed to match a whole-identifier occurrence")
	}
}

func TestDetectCycleTextualScanCatchesUncompiledArgument(t *testing.T) {
	// loop's compiled body may not yet have "loop" as a FuncUser subexpr if
	// it only appears inside an unparsed argument string; the textual
	// scan must still catch it.
	candidate := Func{Name: "loop", Source: "other(1, loop(x))"}
	cyclic, _ := DetectCycle(candidate, map[string]*registry.UserFunction{})
	if !cyclic {
		t.Fatalf("DetectCycle should catch a self-reference nested in an argument string")
	}
}
