package lexer

import "testing"

func TestIsLegalName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"x", true},
		{"_x1", true},
		{"1x", false},
		{"", false},
		{"x_2", true},
		{"x-2", false},
	}
	for _, tt := range tests {
		if got := IsLegalName(tt.name); got != tt.want {
			t.Fatalf("IsLegalName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsReservedName(t *testing.T) {
	if !IsReservedName("ans") {
		t.Fatalf("IsReservedName(ans) = false, want true")
	}
	if IsReservedName("x") {
		t.Fatalf("IsReservedName(x) = true, want false")
	}
}

func TestNameBoundsRejectsDigitOnlyRun(t *testing.T) {
	start, ok := NameBounds("123", 2)
	if ok {
		t.Fatalf("NameBounds on a digit-only run should report ok=false, got start=%d", start)
	}
}

func TestNameBoundsFindsIdentifier(t *testing.T) {
	start, ok := NameBounds("1+sin", 4)
	if !ok || start != 2 {
		t.Fatalf("NameBounds = %d, %v, want 2, true", start, ok)
	}
}

func TestNameEnd(t *testing.T) {
	if got := NameEnd("sin(x)", 0); got != 3 {
		t.Fatalf("NameEnd = %d, want 3", got)
	}
}
