package config

import (
	"os"
	"testing"

	"texpr/internal/intmask"
)

func TestDefaultValues(t *testing.T) {
	c := Default()
	if c.ListenAddr != ":8778" {
		t.Fatalf("ListenAddr = %q, want %q", c.ListenAddr, ":8778")
	}
	if c.IntWidth != intmask.DefaultWidth {
		t.Fatalf("IntWidth = %v, want %v", c.IntWidth, intmask.DefaultWidth)
	}
	if !c.ComplexEnabled {
		t.Fatalf("ComplexEnabled = false, want true")
	}
}

func TestFromEnvOverridesDefaults(t *testing.T) {
	t.Setenv("TEXPR_LISTEN_ADDR", ":9000")
	t.Setenv("TEXPR_INT_WIDTH", "16")
	t.Setenv("TEXPR_COMPLEX_ENABLED", "false")
	t.Setenv("TEXPR_STORE_DRIVER", "sqlite")
	t.Setenv("TEXPR_STORE_DSN", "file:test.db")

	c := FromEnv()
	if c.ListenAddr != ":9000" {
		t.Fatalf("ListenAddr = %q, want %q", c.ListenAddr, ":9000")
	}
	if c.IntWidth != 16 {
		t.Fatalf("IntWidth = %v, want 16", c.IntWidth)
	}
	if c.ComplexEnabled {
		t.Fatalf("ComplexEnabled = true, want false")
	}
	if c.StoreDriver != "sqlite" || c.StoreDSN != "file:test.db" {
		t.Fatalf("Store{Driver,DSN} = %q, %q, want sqlite, file:test.db", c.StoreDriver, c.StoreDSN)
	}
}

func TestFromEnvIgnoresInvalidIntWidth(t *testing.T) {
	t.Setenv("TEXPR_INT_WIDTH", "7") // not a power of two
	c := FromEnv()
	if c.IntWidth != intmask.DefaultWidth {
		t.Fatalf("an invalid width should be ignored, got %v", c.IntWidth)
	}
	os.Unsetenv("TEXPR_INT_WIDTH")
}
