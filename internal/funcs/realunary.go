// Package funcs implements the built-in unary and extended function
// catalog of spec §4.14, and registers it into a registry.Context.
package funcs

import "math"

// realUnaryTable holds every real-domain builtin, keyed by name. ok=false
// signals "this input is out of the real domain for this function",
// triggering promotion to the complex counterpart (spec §4.13/§9).
func realUnaryTable() map[string]func(float64) (float64, bool) {
	return map[string]func(float64) (float64, bool){
		"sqrt": func(x float64) (float64, bool) {
			if x < 0 {
				return 0, false
			}
			return math.Sqrt(x), true
		},
		"abs": func(x float64) (float64, bool) { return math.Abs(x), true },
		"exp": func(x float64) (float64, bool) { return math.Exp(x), true },
		"ln": func(x float64) (float64, bool) {
			if x <= 0 {
				return 0, false
			}
			return math.Log(x), true
		},
		"log10": func(x float64) (float64, bool) {
			if x <= 0 {
				return 0, false
			}
			return math.Log10(x), true
		},
		"log2": func(x float64) (float64, bool) {
			if x <= 0 {
				return 0, false
			}
			return math.Log2(x), true
		},
		"sin": func(x float64) (float64, bool) { return math.Sin(x), true },
		"cos": func(x float64) (float64, bool) { return math.Cos(x), true },
		// tan computes an actual tangent; the original library's tms_tan
		// mistakenly computed sin, a bug this implementation does not
		// reproduce (spec §9 open question).
		"tan": func(x float64) (float64, bool) { return math.Tan(x), true },
		"asin": func(x float64) (float64, bool) {
			if x < -1 || x > 1 {
				return 0, false
			}
			return math.Asin(x), true
		},
		"acos": func(x float64) (float64, bool) {
			if x < -1 || x > 1 {
				return 0, false
			}
			return math.Acos(x), true
		},
		"atan":  func(x float64) (float64, bool) { return math.Atan(x), true },
		"sinh":  func(x float64) (float64, bool) { return math.Sinh(x), true },
		"cosh":  func(x float64) (float64, bool) { return math.Cosh(x), true },
		"tanh":  func(x float64) (float64, bool) { return math.Tanh(x), true },
		"asinh": func(x float64) (float64, bool) { return math.Asinh(x), true },
		"acosh": func(x float64) (float64, bool) {
			if x < 1 {
				return 0, false
			}
			return math.Acosh(x), true
		},
		"atanh": func(x float64) (float64, bool) {
			if x <= -1 || x >= 1 {
				return 0, false
			}
			return math.Atanh(x), true
		},
		"ceil":  func(x float64) (float64, bool) { return math.Ceil(x), true },
		"floor": func(x float64) (float64, bool) { return math.Floor(x), true },
		"round": func(x float64) (float64, bool) { return math.Round(x), true },
		"fact": func(x float64) (float64, bool) {
			r := math.Gamma(x + 1)
			if math.IsNaN(r) || math.IsInf(r, 0) {
				return 0, false
			}
			return r, true
		},
	}
}
