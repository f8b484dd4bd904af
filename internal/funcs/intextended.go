package funcs

import (
	"fmt"
	"math/rand"

	"texpr/internal/errors"
	"texpr/internal/registry"
)

func evalIntArgs(call *registry.IntExtCall) ([]int64, error) {
	out := make([]int64, len(call.Args))
	for i, a := range call.Args {
		v, err := call.Eval(a, call.Labels)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// shiftArgs resolves a shift call's (value, amount) pair for sl/sr/sra:
// 0 <= shift < width, rejecting a negative or overflowing amount rather
// than wrapping it (grounded on original_source/src/bitwise.c's
// _tms_arithmetic_shift, which rejects shift<0 and shift>=width with
// SHIFT_AMOUNT_NEGATIVE/SHIFT_TOO_LARGE before shifting).
func shiftArgs(call *registry.IntExtCall, name string) (int64, uint, error) {
	vals, err := evalIntArgs(call)
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, fmt.Errorf("%s expects 2 arguments: value, amount", name)
	}
	n := vals[1]
	if n < 0 {
		return 0, 0, errors.New(errors.IntEvaluator, errors.KindShiftNegative, errors.Fatal,
			fmt.Sprintf("%s: shift amount %d is negative.", name, n), "", 0)
	}
	if n >= int64(call.Width) {
		return 0, 0, errors.New(errors.IntEvaluator, errors.KindShiftTooLarge, errors.Fatal,
			fmt.Sprintf("%s: shift amount %d is not less than the active width (%d).", name, n, call.Width), "", 0)
	}
	return vals[0], uint(n), nil
}

// rotateArgs resolves a rotate call's (value, amount) pair for rl/rr:
// rotations only reject a negative amount (ROTATION_AMOUNT_NEGATIVE); an
// amount at or beyond the width is meaningful and wraps modulo width,
// per original_source/src/bitwise.c's _tms_rotate_circular_i.
func rotateArgs(call *registry.IntExtCall, name string) (int64, uint, error) {
	vals, err := evalIntArgs(call)
	if err != nil {
		return 0, 0, err
	}
	if len(vals) != 2 {
		return 0, 0, fmt.Errorf("%s expects 2 arguments: value, amount", name)
	}
	n := vals[1]
	if n < 0 {
		return 0, 0, errors.New(errors.IntEvaluator, errors.KindRotationNegative, errors.Fatal,
			fmt.Sprintf("%s: rotation amount %d is negative.", name, n), "", 0)
	}
	w := uint(call.Width)
	if w == 0 {
		return vals[0], 0, nil
	}
	return vals[0], uint(n) % w, nil
}

// extSL implements sl(x, n): logical shift left by n bits, masked to the
// active width (spec §4.11 shift/rotate family).
func extSL(call *registry.IntExtCall) (int64, error) {
	x, n, err := shiftArgs(call, "sl")
	if err != nil {
		return 0, err
	}
	u := uint64(x) & call.Width.Mask()
	return call.Width.SignExtend(call.Width.Apply(u << n)), nil
}

// extSR implements sr(x, n): logical (zero-fill) shift right.
func extSR(call *registry.IntExtCall) (int64, error) {
	x, n, err := shiftArgs(call, "sr")
	if err != nil {
		return 0, err
	}
	u := uint64(x) & call.Width.Mask()
	return call.Width.SignExtend(u >> n), nil
}

// extSRA implements sra(x, n): arithmetic (sign-extending) shift right.
func extSRA(call *registry.IntExtCall) (int64, error) {
	x, n, err := shiftArgs(call, "sra")
	if err != nil {
		return 0, err
	}
	signed := call.Width.SignExtend(uint64(x))
	return signed >> n, nil
}

// extRL implements rl(x, n): rotate left within the active width.
func extRL(call *registry.IntExtCall) (int64, error) {
	x, n, err := rotateArgs(call, "rl")
	if err != nil {
		return 0, err
	}
	w := uint(call.Width)
	if w == 0 {
		return 0, nil
	}
	u := uint64(x) & call.Width.Mask()
	rotated := (u<<n | u>>(w-n)) & call.Width.Mask()
	return call.Width.SignExtend(rotated), nil
}

// extRR implements rr(x, n): rotate right within the active width.
func extRR(call *registry.IntExtCall) (int64, error) {
	x, n, err := rotateArgs(call, "rr")
	if err != nil {
		return 0, err
	}
	w := uint(call.Width)
	if w == 0 {
		return 0, nil
	}
	u := uint64(x) & call.Width.Mask()
	rotated := (u>>n | u<<(w-n)) & call.Width.Mask()
	return call.Width.SignExtend(rotated), nil
}

// extIntAvg implements avg for the integer domain: sum divided by
// count, truncated per Go's integer division.
func extIntAvg(call *registry.IntExtCall) (int64, error) {
	vals, err := evalIntArgs(call)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("avg needs at least one argument")
	}
	var total int64
	for _, v := range vals {
		total += v
	}
	return total / int64(len(vals)), nil
}

func extIntMin(call *registry.IntExtCall) (int64, error) {
	vals, err := evalIntArgs(call)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("min needs at least one argument")
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if v < best {
			best = v
		}
	}
	return best, nil
}

func extIntMax(call *registry.IntExtCall) (int64, error) {
	vals, err := evalIntArgs(call)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("max needs at least one argument")
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if v > best {
			best = v
		}
	}
	return best, nil
}

// extIntRand implements rand(lo, hi): a sign-aware uniform integer in
// [lo, hi], both bounds given as expressions in the active label scope.
func extIntRand(call *registry.IntExtCall) (int64, error) {
	vals, err := evalIntArgs(call)
	if err != nil {
		return 0, err
	}
	if len(vals) != 2 {
		return 0, fmt.Errorf("rand expects 2 arguments: low, high")
	}
	lo, hi := vals[0], vals[1]
	if lo > hi {
		lo, hi = hi, lo
	}
	span := hi - lo
	if span < 0 {
		// overflowed int64 range; fall back to the low bound rather than
		// panic inside rand.Int63n.
		return lo, nil
	}
	if span == 0 {
		return lo, nil
	}
	return lo + rand.Int63n(span+1), nil
}

func intExtendedTable() map[string]registry.IntExtendedFunc {
	return map[string]registry.IntExtendedFunc{
		"sl":   extSL,
		"sr":   extSR,
		"sra":  extSRA,
		"rl":   extRL,
		"rr":   extRR,
		"avg":  extIntAvg,
		"min":  extIntMin,
		"max":  extIntMax,
		"rand": extIntRand,
	}
}
