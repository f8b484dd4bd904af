package ast

import "testing"

func newOneNodeExpr() *Expr {
	return &Expr{
		Subexprs: []Subexpr{
			{Nodes: []OpNode{{}}},
		},
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	e := newOneNodeExpr()
	leftRef := OperandRef{SubexprIndex: 0, NodeIndex: 0, Side: Left}
	rightRef := OperandRef{SubexprIndex: 0, NodeIndex: 0, Side: Right}

	e.Write(leftRef, complex(1, 2))
	e.Write(rightRef, complex(3, 4))

	if got := e.Read(leftRef); got != complex(1, 2) {
		t.Fatalf("Read(left) = %v, want 1+2i", got)
	}
	if got := e.Read(rightRef); got != complex(3, 4) {
		t.Fatalf("Read(right) = %v, want 3+4i", got)
	}
}

func TestWriteIntReadIntRoundTrip(t *testing.T) {
	e := newOneNodeExpr()
	leftRef := OperandRef{SubexprIndex: 0, NodeIndex: 0, Side: Left}

	e.WriteInt(leftRef, 42)
	if got := e.ReadInt(leftRef); got != 42 {
		t.Fatalf("ReadInt = %v, want 42", got)
	}
}

func TestIsRealAnswer(t *testing.T) {
	e := &Expr{Answer: complex(5, 0)}
	if !e.IsRealAnswer() {
		t.Fatalf("IsRealAnswer() = false, want true for a zero imaginary part")
	}
	e.Answer = complex(5, 1)
	if e.IsRealAnswer() {
		t.Fatalf("IsRealAnswer() = true, want false for a nonzero imaginary part")
	}
}

func TestFuncKindString(t *testing.T) {
	tests := []struct {
		k    FuncKind
		want string
	}{
		{FuncNone, "none"},
		{FuncRealUnary, "real-unary"},
		{FuncComplexUnary, "complex-unary"},
		{FuncExtended, "extended"},
		{FuncUser, "user"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Fatalf("FuncKind(%d).String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}
