package funcs

import "texpr/internal/registry"

// RegisterBuiltins installs the full built-in catalog of spec §4.14 into
// ctx: real and complex unary functions, and the scientific and integer
// extended (variadic) function families. NewContext does not call this
// itself, to keep internal/registry free of an import on internal/funcs;
// callers (the root package's default Context, or any Context a caller
// builds directly) call it once at setup.
func RegisterBuiltins(ctx *registry.Context) {
	for name, fn := range realUnaryTable() {
		ctx.RealUnary[name] = fn
	}
	for name, fn := range complexUnaryTable() {
		ctx.ComplexUnary[name] = fn
	}
	for name, fn := range extendedTable() {
		ctx.Extended[name] = fn
	}
	for name, fn := range intExtendedTable() {
		ctx.IntExtended[name] = fn
	}
}
