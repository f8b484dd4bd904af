package funcs

import (
	"strconv"
	"strings"
	"testing"

	"texpr/internal/intmask"
	"texpr/internal/registry"
)

func intLiteralEval(expr string, labels map[string]int64) (int64, error) {
	expr = strings.TrimSpace(expr)
	if v, ok := labels[expr]; ok {
		return v, nil
	}
	n, err := strconv.ParseInt(expr, 10, 64)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func TestExtSLAndSR(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"1", "4"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	v, err := extSL(call)
	if err != nil || v != 16 {
		t.Fatalf("sl(1, 4) = %v, %v; want 16", v, err)
	}

	call2 := &registry.IntExtCall{Args: []string{"-1", "4"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	v2, err := extSR(call2)
	if err != nil {
		t.Fatalf("sr returned error: %v", err)
	}
	// -1 as an 8-bit pattern is 0xFF; logical shift right by 4 is 0x0F = 15.
	if v2 != 15 {
		t.Fatalf("sr(-1, 4) = %v, want 15", v2)
	}
}

func TestExtSRAPreservesSign(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"-16", "2"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	v, err := extSRA(call)
	if err != nil {
		t.Fatalf("sra returned error: %v", err)
	}
	if v != -4 {
		t.Fatalf("sra(-16, 2) = %v, want -4", v)
	}
}

func TestExtRLAndRR(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"1", "1"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	v, err := extRL(call)
	if err != nil || v != 2 {
		t.Fatalf("rl(1, 1) = %v, %v; want 2", v, err)
	}

	call2 := &registry.IntExtCall{Args: []string{"1", "1"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	v2, err := extRR(call2)
	if err != nil {
		t.Fatalf("rr returned error: %v", err)
	}
	// rotating 0x01 right by one bit in 8 bits gives 0x80 = -128 signed.
	if v2 != -128 {
		t.Fatalf("rr(1, 1) = %v, want -128", v2)
	}
}

func TestExtSLRejectsNegativeShift(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"1", "-1"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	if _, err := extSL(call); err == nil {
		t.Fatalf("sl(1, -1) should fail on a negative shift amount")
	}
}

func TestExtSRRejectsShiftNotLessThanWidth(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"1", "8"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	if _, err := extSR(call); err == nil {
		t.Fatalf("sr(1, 8) should fail: shift amount equals the active width")
	}
}

func TestExtSRARejectsShiftTooLarge(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"1", "9"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	if _, err := extSRA(call); err == nil {
		t.Fatalf("sra(1, 9) should fail: shift amount exceeds the active width")
	}
}

func TestExtRLRejectsNegativeRotation(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"1", "-1"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	if _, err := extRL(call); err == nil {
		t.Fatalf("rl(1, -1) should fail on a negative rotation amount")
	}
}

func TestExtRRWrapsRotationAtOrBeyondWidth(t *testing.T) {
	// unlike shifts, a rotation amount at or beyond the width is valid and
	// wraps modulo width rather than failing.
	call := &registry.IntExtCall{Args: []string{"1", "9"}, Eval: intLiteralEval, Width: intmask.Width(8)}
	v, err := extRR(call)
	if err != nil {
		t.Fatalf("rr(1, 9) returned error: %v", err)
	}
	// 9 mod 8 = 1; rotating 0x01 right by one bit in 8 bits gives 0x80 = -128 signed.
	if v != -128 {
		t.Fatalf("rr(1, 9) = %v, want -128", v)
	}
}

func TestExtIntMinMaxAvg(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"3", "-7", "10"}, Eval: intLiteralEval}
	if v, err := extIntMin(call); err != nil || v != -7 {
		t.Fatalf("min = %v, %v; want -7", v, err)
	}
	if v, err := extIntMax(call); err != nil || v != 10 {
		t.Fatalf("max = %v, %v; want 10", v, err)
	}
	if v, err := extIntAvg(call); err != nil || v != 2 {
		t.Fatalf("avg = %v, %v; want 2", v, err)
	}
}

func TestExtIntRandWithinRange(t *testing.T) {
	call := &registry.IntExtCall{Args: []string{"5", "5"}, Eval: intLiteralEval}
	v, err := extIntRand(call)
	if err != nil {
		t.Fatalf("rand returned error: %v", err)
	}
	if v != 5 {
		t.Fatalf("rand(5, 5) = %v, want 5", v)
	}

	call2 := &registry.IntExtCall{Args: []string{"1", "3"}, Eval: intLiteralEval}
	for i := 0; i < 20; i++ {
		v, err := extIntRand(call2)
		if err != nil {
			t.Fatalf("rand returned error: %v", err)
		}
		if v < 1 || v > 3 {
			t.Fatalf("rand(1, 3) = %v, out of range", v)
		}
	}
}
