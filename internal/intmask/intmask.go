// Package intmask implements the integer-mask subsystem of spec §4.15:
// the active bit width and its mask, applied after every integer-domain
// node evaluation, plus sign extension on read.
package intmask

import (
	"fmt"
	"math/bits"
)

// Width is a supported two's-complement width (spec §6: 1,2,4,8,16,32,64).
type Width int

// ValidWidths enumerates every width set_int_mask accepts.
var ValidWidths = []Width{1, 2, 4, 8, 16, 32, 64}

// Valid reports whether w is a supported power-of-two width up to 64.
func (w Width) Valid() bool {
	if w <= 0 || w > 64 {
		return false
	}
	return bits.OnesCount(uint(w)) == 1
}

// Mask returns the low-w-bits mask for w, e.g. Mask(8) = 0xFF.
func (w Width) Mask() uint64 {
	if w >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << uint(w)) - 1
}

// Apply masks v to w bits, discarding any higher bits (spec §3: "the
// post-operation value is masked to width bits before storage").
func (w Width) Apply(v uint64) uint64 {
	return v & w.Mask()
}

// SignExtend interprets the low w bits of v as a signed two's-complement
// integer and sign-extends it to a full int64 (spec §3: "sign-extension
// is applied on read when interpreting values as signed").
func (w Width) SignExtend(v uint64) int64 {
	masked := w.Apply(v)
	if w >= 64 {
		return int64(masked)
	}
	signBit := uint64(1) << uint(w-1)
	if masked&signBit != 0 {
		return int64(masked | ^w.Mask())
	}
	return int64(masked)
}

// FitsSigned reports whether v fits in a signed two's-complement value of
// width w without truncation. The integer compiler does not call it:
// literals wider than the active width are masked, not rejected.
func (w Width) FitsSigned(v int64) bool {
	se := w.SignExtend(uint64(v))
	return se == v
}

// String implements fmt.Stringer for diagnostics.
func (w Width) String() string {
	return fmt.Sprintf("%d-bit", int(w))
}

// DefaultWidth is the width new Contexts start with when none is configured.
const DefaultWidth Width = 32
