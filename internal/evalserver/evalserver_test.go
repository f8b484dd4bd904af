package evalserver

import (
	"testing"

	"texpr/internal/funcs"
	"texpr/internal/registry"
)

func newTestServer() *Server {
	ctx := registry.NewContext()
	funcs.RegisterBuiltins(ctx)
	return New(ctx)
}

func TestHandleScientific(t *testing.T) {
	s := newTestServer()
	resp := s.handle(Request{ID: "1", Domain: "scientific", Expr: "2+3*4"})
	if resp.Error != "" {
		t.Fatalf("handle error: %v", resp.Error)
	}
	if resp.Result != "14" {
		t.Fatalf("Result = %q, want %q", resp.Result, "14")
	}
	if resp.ID != "1" {
		t.Fatalf("ID = %q, want %q", resp.ID, "1")
	}
}

func TestHandleIntegerAndDefaultDomain(t *testing.T) {
	s := newTestServer()
	resp := s.handle(Request{ID: "2", Domain: "integer", Expr: "7/2"})
	if resp.Error != "" {
		t.Fatalf("handle error: %v", resp.Error)
	}
	if resp.Result != "3" {
		t.Fatalf("Result = %q, want %q (integer division truncates)", resp.Result, "3")
	}

	resp = s.handle(Request{ID: "3", Expr: "7/2"})
	if resp.Result != "3.5" {
		t.Fatalf("Result = %q, want %q (unspecified domain defaults to scientific)", resp.Result, "3.5")
	}
}

func TestHandleReturnsErrorResponseOnCompileFailure(t *testing.T) {
	s := newTestServer()
	resp := s.handle(Request{ID: "4", Domain: "scientific", Expr: "(1+2"})
	if resp.Error == "" {
		t.Fatalf("expected an error response for unbalanced parens")
	}
	if resp.Result != "" {
		t.Fatalf("Result = %q, want empty on error", resp.Result)
	}
}

func TestFormatComplex(t *testing.T) {
	tests := []struct {
		v    complex128
		want string
	}{
		{complex(3, 0), "3"},
		{complex(1, 2), "1+2i"},
		{complex(1, -2), "1-2i"},
	}
	for _, tt := range tests {
		if got := formatComplex(tt.v); got != tt.want {
			t.Fatalf("formatComplex(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
