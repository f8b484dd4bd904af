package funcs

import (
	"math/cmplx"
	"testing"
)

func TestComplexSqrtOfNegative(t *testing.T) {
	sqrt := complexUnaryTable()["sqrt"]
	got := sqrt(complex(-4, 0))
	want := complex(0, 2)
	if cmplx.Abs(got-want) > 1e-9 {
		t.Fatalf("sqrt(-4) = %v, want %v", got, want)
	}
}

func TestComplexLog2(t *testing.T) {
	log2 := complexUnaryTable()["log2"]
	got := log2(complex(8, 0))
	want := complex(3, 0)
	if cmplx.Abs(got-want) > 1e-9 {
		t.Fatalf("log2(8) = %v, want %v", got, want)
	}
}

func TestComplexCeilAppliesComponentwise(t *testing.T) {
	ceil := complexUnaryTable()["ceil"]
	got := ceil(complex(1.2, 2.8))
	want := complex(2, 3)
	if got != want {
		t.Fatalf("ceil(1.2+2.8i) = %v, want %v", got, want)
	}
}
