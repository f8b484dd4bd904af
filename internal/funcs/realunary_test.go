package funcs

import (
	"math"
	"testing"
)

// The original library's tms_tan mistakenly computed sin, not tan. This
// guards against that regression coming back.
func TestTanIsNotSin(t *testing.T) {
	tan := realUnaryTable()["tan"]
	sin := realUnaryTable()["sin"]

	x := 0.7
	tanVal, ok := tan(x)
	if !ok {
		t.Fatalf("tan(%v) reported ok=false", x)
	}
	sinVal, ok := sin(x)
	if !ok {
		t.Fatalf("sin(%v) reported ok=false", x)
	}
	if math.Abs(tanVal-sinVal) < 1e-9 {
		t.Fatalf("tan(%v) = %v matches sin(%v) = %v; tan must compute an actual tangent", x, tanVal, x, sinVal)
	}
	want := math.Tan(x)
	if math.Abs(tanVal-want) > 1e-9 {
		t.Fatalf("tan(%v) = %v, want %v", x, tanVal, want)
	}
}

func TestSqrtNegativePromotes(t *testing.T) {
	sqrt := realUnaryTable()["sqrt"]
	if _, ok := sqrt(-4); ok {
		t.Fatalf("sqrt(-4) should report ok=false to trigger complex promotion")
	}
}

func TestFactOfNegativeIntegerPromotes(t *testing.T) {
	fact := realUnaryTable()["fact"]
	if _, ok := fact(-2); ok {
		t.Fatalf("fact(-2) should report ok=false (pole of the gamma function)")
	}
}

func TestCeilFloorRound(t *testing.T) {
	ceil := realUnaryTable()["ceil"]
	floor := realUnaryTable()["floor"]
	round := realUnaryTable()["round"]

	if v, _ := ceil(1.2); v != 2 {
		t.Fatalf("ceil(1.2) = %v, want 2", v)
	}
	if v, _ := floor(1.8); v != 1 {
		t.Fatalf("floor(1.8) = %v, want 1", v)
	}
	if v, _ := round(1.5); v != 2 {
		t.Fatalf("round(1.5) = %v, want 2", v)
	}
}
