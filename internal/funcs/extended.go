package funcs

import (
	"fmt"
	"math"
	"math/cmplx"
	"strconv"
	"strings"

	"texpr/internal/registry"
)

// evalArgs evaluates every raw argument string of call against the
// label scope already in effect, with no new binding — used by the
// plain variadic reducers (avg/min/max/sum).
func evalArgs(call *registry.ExtCall) ([]complex128, error) {
	out := make([]complex128, len(call.Args))
	for i, a := range call.Args {
		v, err := call.Eval(a, call.Labels)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func extSum(call *registry.ExtCall) (complex128, error) {
	vals, err := evalArgs(call)
	if err != nil {
		return 0, err
	}
	var total complex128
	for _, v := range vals {
		total += v
	}
	return total, nil
}

func extAvg(call *registry.ExtCall) (complex128, error) {
	vals, err := evalArgs(call)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("avg needs at least one argument")
	}
	var total complex128
	for _, v := range vals {
		total += v
	}
	return total / complex(float64(len(vals)), 0), nil
}

func extMin(call *registry.ExtCall) (complex128, error) {
	vals, err := evalArgs(call)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("min needs at least one argument")
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if cmplx.Abs(v) < cmplx.Abs(best) {
			best = v
		}
	}
	return best, nil
}

func extMax(call *registry.ExtCall) (complex128, error) {
	vals, err := evalArgs(call)
	if err != nil {
		return 0, err
	}
	if len(vals) == 0 {
		return 0, fmt.Errorf("max needs at least one argument")
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if cmplx.Abs(v) > cmplx.Abs(best) {
			best = v
		}
	}
	return best, nil
}

// derVar is the conventional name der's single free variable is bound
// under, matching `original_source/function.c`'s `derivative`: the
// original binds every unresolved variable slot in the argument
// expression to the sample value regardless of its name, which this
// label-based evaluator models as one fixed label name (spec's own
// worked example, `der(x^2, 3)`, spells the bound variable `x`).
const derVar = "x"

// derStep is the central-difference step used by der; small enough for
// the masked-float precision this library targets, large enough to stay
// clear of cancellation (spec §5 "Cancellation/timeouts").
const derStep = 1e-8

// extDer implements der(expr, point): a central-difference estimate of
// expr's derivative with respect to derVar at point, grounded on
// `original_source/function.c`'s two-argument `derivative`.
func extDer(call *registry.ExtCall) (complex128, error) {
	if len(call.Args) != 2 {
		return 0, fmt.Errorf("der expects 2 arguments: expression, point")
	}
	exprStr := call.Args[0]
	point, err := call.Eval(call.Args[1], call.Labels)
	if err != nil {
		return 0, err
	}
	withVar := func(v complex128) map[string]complex128 {
		scope := make(map[string]complex128, len(call.Labels)+1)
		for k, lv := range call.Labels {
			scope[k] = lv
		}
		scope[derVar] = v
		return scope
	}
	h := complex(derStep, 0)
	fx1, err := call.Eval(exprStr, withVar(point-h))
	if err != nil {
		return 0, err
	}
	fx2, err := call.Eval(exprStr, withVar(point+h))
	if err != nil {
		return 0, err
	}
	return (fx2 - fx1) / (2 * h), nil
}

// integrateMaxRounds bounds the Simpson's 3/8 refinement so integrate
// always terminates in a fixed number of samples (spec §5
// "Cancellation/timeouts"), mirroring the original's own 1e8 cap.
const integrateMaxRounds = 1_000_000

// extIntegrate implements integrate(lower, upper, expr): composite
// Simpson's 3/8 rule over the free variable derVar, grounded directly
// on `original_source/function.c`'s `integrate` (same argument order,
// same rounds-proportional-to-interval-length scaling, capped lower
// here for a pure-Go evaluator's per-call budget).
func extIntegrate(call *registry.ExtCall) (complex128, error) {
	if len(call.Args) != 3 {
		return 0, fmt.Errorf("integrate expects 3 arguments: lower bound, upper bound, expression")
	}
	lower, err := call.Eval(call.Args[0], call.Labels)
	if err != nil {
		return 0, err
	}
	upper, err := call.Eval(call.Args[1], call.Labels)
	if err != nil {
		return 0, err
	}
	exprStr := call.Args[2]

	delta := upper - lower
	if real(delta) < 0 {
		lower = lower + delta
		delta = -delta
	}

	rounds := int(math.Ceil(real(delta))) * 65536
	if rounds < 3 {
		rounds = 3
	}
	if rounds > integrateMaxRounds {
		rounds = integrateMaxRounds
	}

	sample := func(x complex128) (complex128, error) {
		scope := make(map[string]complex128, len(call.Labels)+1)
		for k, lv := range call.Labels {
			scope[k] = lv
		}
		scope[derVar] = x
		return call.Eval(exprStr, scope)
	}

	f0, err := sample(lower)
	if err != nil {
		return 0, err
	}
	fn, err := sample(lower + delta)
	if err != nil {
		return 0, err
	}
	total := f0 + fn

	var sum3, sum2 complex128
	for n := 1; n < rounds; n++ {
		x := lower + delta*complex(float64(n)/float64(rounds), 0)
		fx, err := sample(x)
		if err != nil {
			return 0, err
		}
		if n%3 == 0 {
			sum2 += fx
		} else {
			sum3 += fx
		}
	}
	total += 3*sum3 + 2*sum2
	return total * complex(0.375*(real(delta)/float64(rounds)), 0), nil
}

// parseDottedIPv4 parses "a.b.c.d" into its big-endian 32-bit value.
func parseDottedIPv4(s string) (uint32, error) {
	octets := strings.Split(strings.TrimSpace(s), ".")
	if len(octets) != 4 {
		return 0, fmt.Errorf("ipv4 expects a dotted-quad string, got %q", s)
	}
	var v uint32
	for _, o := range octets {
		n, err := strconv.ParseUint(o, 10, 8)
		if err != nil {
			return 0, fmt.Errorf("ipv4: invalid octet %q", o)
		}
		v = v<<8 | uint32(n)
	}
	return v, nil
}

// extIPv4 implements ipv4("a.b.c.d"): the raw first argument (a string
// literal, not evaluated as an expression per spec §6) is parsed as a
// dotted-quad address and returned as its 32-bit unsigned value.
func extIPv4(call *registry.ExtCall) (complex128, error) {
	if len(call.Args) != 1 {
		return 0, fmt.Errorf("ipv4 expects exactly one string argument")
	}
	v, err := parseDottedIPv4(stripQuotes(call.Args[0]))
	if err != nil {
		return 0, err
	}
	return complex(float64(v), 0), nil
}

// extDotted implements dotted("n"): like ipv4, but lenient — the raw
// string argument may be either a dotted-quad address or a plain
// decimal integer, letting a caller round-trip ipv4's output back
// through the same family of functions.
func extDotted(call *registry.ExtCall) (complex128, error) {
	if len(call.Args) != 1 {
		return 0, fmt.Errorf("dotted expects exactly one string argument")
	}
	raw := stripQuotes(call.Args[0])
	if strings.Contains(raw, ".") {
		v, err := parseDottedIPv4(raw)
		if err != nil {
			return 0, err
		}
		return complex(float64(v), 0), nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("dotted: invalid argument %q", raw)
	}
	return complex(float64(n), 0), nil
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

func extendedTable() map[string]registry.ExtendedFunc {
	return map[string]registry.ExtendedFunc{
		"avg":       extAvg,
		"min":       extMin,
		"max":       extMax,
		"sum":       extSum,
		"der":       extDer,
		"integrate": extIntegrate,
		"ipv4":      extIPv4,
		"dotted":    extDotted,
	}
}
