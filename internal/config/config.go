// Package config centralizes the environment-var-loadable defaults this
// module's daemon and CLI entry points start from, grounded on the
// teacher's flat env-var-with-fallback loading style (no config-file
// parser dependency appears anywhere in the retrieved corpus for this
// shape of problem, so this follows the teacher in staying stdlib-only
// here too).
package config

import (
	"os"
	"strconv"

	"texpr/internal/intmask"
)

// Config holds the handful of values a caller might reasonably want to
// override per deployment without recompiling.
type Config struct {
	// ListenAddr is the address evalserver binds to (cmd/texprd).
	ListenAddr string
	// IntWidth is the integer width new Contexts start with.
	IntWidth intmask.Width
	// ComplexEnabled mirrors spec §6's ENABLE_CMPLX option flag. It is
	// loaded from the environment but no solve/solve_e path in this
	// module reads it; those calls take their options explicitly.
	ComplexEnabled bool
	// StoreDriver/StoreDSN, when StoreDriver is non-empty, tell cmd/texprd
	// to open an internal/store.Store and load the registries from it at
	// startup; nothing is written back through it.
	StoreDriver string
	StoreDSN    string
}

// Default returns the built-in defaults: the same 32-bit integer width
// NewContext starts with, and ComplexEnabled set to true.
func Default() Config {
	return Config{
		ListenAddr:     ":8778",
		IntWidth:       intmask.DefaultWidth,
		ComplexEnabled: true,
	}
}

// FromEnv returns Default() with every TEXPR_* environment variable
// that is set overriding the matching field.
func FromEnv() Config {
	c := Default()
	if v := os.Getenv("TEXPR_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("TEXPR_INT_WIDTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			w := intmask.Width(n)
			if w.Valid() {
				c.IntWidth = w
			}
		}
	}
	if v := os.Getenv("TEXPR_COMPLEX_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.ComplexEnabled = b
		}
	}
	if v := os.Getenv("TEXPR_STORE_DRIVER"); v != "" {
		c.StoreDriver = v
	}
	if v := os.Getenv("TEXPR_STORE_DSN"); v != "" {
		c.StoreDSN = v
	}
	return c
}
