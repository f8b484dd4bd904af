package funcs

import (
	"math"
	"math/cmplx"
)

// ln2 backs log2 on the complex domain, since math/cmplx has no native
// Log2 (spec §4.14).
var ln2 = complex(math.Ln2, 0)

// complexUnaryTable holds the complex-domain counterpart of every
// real-domain builtin, used for promotion when a real builtin reports
// ok=false or is handed an already-complex argument.
func complexUnaryTable() map[string]func(complex128) complex128 {
	return map[string]func(complex128) complex128{
		"sqrt":  cmplx.Sqrt,
		"abs":   func(x complex128) complex128 { return complex(cmplx.Abs(x), 0) },
		"exp":   cmplx.Exp,
		"ln":    cmplx.Log,
		"log10": cmplx.Log10,
		"log2":  func(x complex128) complex128 { return cmplx.Log(x) / ln2 },
		"sin":   cmplx.Sin,
		"cos":   cmplx.Cos,
		"tan":   cmplx.Tan,
		"asin":  cmplx.Asin,
		"acos":  cmplx.Acos,
		"atan":  cmplx.Atan,
		"sinh":  cmplx.Sinh,
		"cosh":  cmplx.Cosh,
		"tanh":  cmplx.Tanh,
		"asinh": cmplx.Asinh,
		"acosh": cmplx.Acosh,
		"atanh": cmplx.Atanh,
		"ceil": func(x complex128) complex128 {
			return complex(math.Ceil(real(x)), math.Ceil(imag(x)))
		},
		"floor": func(x complex128) complex128 {
			return complex(math.Floor(real(x)), math.Floor(imag(x)))
		},
		"round": func(x complex128) complex128 {
			return complex(math.Round(real(x)), math.Round(imag(x)))
		},
		// fact has no standard complex factorial in this catalog; the
		// Gamma-based real definition is applied to the real part only,
		// and the imaginary part of the input is ignored.
		"fact": func(x complex128) complex128 {
			return complex(math.Gamma(real(x)+1), 0)
		},
	}
}
