package intmask

import "testing"

func TestValidRejectsNonPowersOfTwoAndOutOfRange(t *testing.T) {
	valid := map[Width]bool{1: true, 2: true, 4: true, 8: true, 16: true, 32: true, 64: true}
	for w := Width(0); w <= 65; w++ {
		if got, want := w.Valid(), valid[w]; got != want {
			t.Fatalf("Width(%d).Valid() = %v, want %v", w, got, want)
		}
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		width Width
		want  uint64
	}{
		{8, 0xFF},
		{16, 0xFFFF},
		{1, 0x1},
		{64, ^uint64(0)},
	}
	for _, tt := range tests {
		if got := tt.width.Mask(); got != tt.want {
			t.Fatalf("Width(%d).Mask() = %#x, want %#x", tt.width, got, tt.want)
		}
	}
}

func TestApplyDiscardsHighBits(t *testing.T) {
	if got := Width(8).Apply(0x1FF); got != 0xFF {
		t.Fatalf("Apply(0x1FF) at width 8 = %#x, want 0xff", got)
	}
}

func TestSignExtendNegativeValue(t *testing.T) {
	// 0xFF at width 8 is -1 two's complement.
	if got := Width(8).SignExtend(0xFF); got != -1 {
		t.Fatalf("SignExtend(0xFF) at width 8 = %d, want -1", got)
	}
	// 0x80 at width 8 is -128.
	if got := Width(8).SignExtend(0x80); got != -128 {
		t.Fatalf("SignExtend(0x80) at width 8 = %d, want -128", got)
	}
	// 0x7F at width 8 is 127, no sign bit set.
	if got := Width(8).SignExtend(0x7F); got != 127 {
		t.Fatalf("SignExtend(0x7F) at width 8 = %d, want 127", got)
	}
}

func TestFitsSigned(t *testing.T) {
	if !Width(8).FitsSigned(127) {
		t.Fatalf("127 should fit in a signed 8-bit value")
	}
	if Width(8).FitsSigned(128) {
		t.Fatalf("128 should not fit in a signed 8-bit value")
	}
	if !Width(8).FitsSigned(-128) {
		t.Fatalf("-128 should fit in a signed 8-bit value")
	}
}
