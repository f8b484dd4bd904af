// cmd/texprd is the WebSocket evaluation daemon: it loads its settings
// from the environment, optionally restores a persisted registry, and
// serves internal/evalserver over HTTP, grounded on the teacher's
// cmd/sentra command-dispatch main but trimmed to this one long-running
// subcommand.
package main

import (
	"log"
	"net/http"
	"strings"

	"texpr"
	"texpr/internal/config"
	"texpr/internal/evalserver"
	"texpr/internal/registry"
	"texpr/internal/store"
)

func main() {
	cfg := config.FromEnv()

	ctx := texpr.NewContext()
	texpr.SetIntMask(ctx, int(cfg.IntWidth))

	if cfg.StoreDriver != "" {
		st, err := store.Open(cfg.StoreDriver, cfg.StoreDSN)
		if err != nil {
			log.Fatalf("texprd: opening store: %v", err)
		}
		defer st.Close()
		loadPersisted(ctx, st)
	}

	srv := evalserver.New(ctx)
	http.Handle("/", srv)
	log.Printf("texprd: listening on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, nil))
}

// loadPersisted restores every table a Store tracks into ctx, recompiling
// user functions from their stored source (see store.SaveUFunction's
// comment: a *ast.Expr is not itself serializable).
func loadPersisted(ctx *registry.Context, st *store.Store) {
	vars, err := st.LoadVars()
	if err != nil {
		log.Printf("texprd: loading scientific variables: %v", err)
	}
	for name, v := range vars {
		texpr.SetVar(ctx, name, v.Value, v.IsConstant)
	}

	intVars, err := st.LoadIntVars()
	if err != nil {
		log.Printf("texprd: loading integer variables: %v", err)
	}
	for name, v := range intVars {
		texpr.SetIntVar(ctx, name, v.Value, v.IsConstant)
	}

	ufuncs, err := st.LoadUFunctions()
	if err != nil {
		log.Printf("texprd: loading scientific user functions: %v", err)
	}
	for name, uf := range ufuncs {
		if err := texpr.SetUFunction(ctx, name, strings.Join(uf.ArgNames, ","), uf.Source); err != nil {
			log.Printf("texprd: restoring user function %q: %v", name, err)
		}
	}

	intUfuncs, err := st.LoadIntUFunctions()
	if err != nil {
		log.Printf("texprd: loading integer user functions: %v", err)
	}
	for name, uf := range intUfuncs {
		if err := texpr.SetIntUFunction(ctx, name, strings.Join(uf.ArgNames, ","), uf.Source); err != nil {
			log.Printf("texprd: restoring integer user function %q: %v", name, err)
		}
	}
}
