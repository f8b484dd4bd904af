// Package evalserver implements a WebSocket daemon that evaluates
// scientific and integer expressions on behalf of connected clients
// (spec §6.1), grounded on the teacher's internal/network WebSocket
// server (Upgrader + one read-loop goroutine per connection), adapted
// from arbitrary byte-message broadcast to a request/response JSON
// protocol over a shared registry.Context.
package evalserver

import (
	"fmt"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"texpr/internal/compiler"
	"texpr/internal/errors"
	"texpr/internal/eval"
	"texpr/internal/registry"
)

// Request is one client message: Domain selects the scientific or
// integer compiler/evaluator pair.
type Request struct {
	ID     string `json:"id"`
	Domain string `json:"domain"` // "scientific" or "integer"
	Expr   string `json:"expr"`
}

// Response carries either a textual result or an error message back to
// the requesting client, correlated by the request's ID.
type Response struct {
	ID     string `json:"id"`
	Result string `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server evaluates incoming requests against one shared Context. Ctx
// must already have RegisterBuiltins applied by the caller.
type Server struct {
	Ctx      *registry.Context
	Upgrader websocket.Upgrader
}

// New returns a Server ready to be mounted as an http.Handler.
func New(ctx *registry.Context) *Server {
	return &Server{
		Ctx: ctx,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP upgrades the connection and runs one read loop for its
// lifetime, per the teacher's one-goroutine-per-client shape.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("evalserver: upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	var writeMu sync.Mutex
	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		resp := s.handle(req)
		writeMu.Lock()
		err := conn.WriteJSON(resp)
		writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

func (s *Server) handle(req Request) Response {
	switch req.Domain {
	case "integer":
		return s.handleInteger(req)
	default:
		return s.handleScientific(req)
	}
}

func (s *Server) handleScientific(req Request) Response {
	expr, rec := compiler.CompileScientific(req.Expr, s.Ctx)
	if rec != nil {
		return errResponse(req.ID, rec)
	}
	v, rec := eval.Evaluate(expr, s.Ctx, nil)
	if rec != nil {
		return errResponse(req.ID, rec)
	}
	s.Ctx.SetAns(v)
	return Response{ID: req.ID, Result: formatComplex(v)}
}

func (s *Server) handleInteger(req Request) Response {
	expr, rec := compiler.CompileInteger(req.Expr, s.Ctx)
	if rec != nil {
		return errResponse(req.ID, rec)
	}
	v, rec := eval.EvaluateInt(expr, s.Ctx, nil)
	if rec != nil {
		return errResponse(req.ID, rec)
	}
	s.Ctx.SetIntAns(v)
	return Response{ID: req.ID, Result: fmt.Sprintf("%d", v)}
}

func errResponse(id string, rec *errors.Record) Response {
	return Response{ID: id, Error: rec.Error()}
}

func formatComplex(v complex128) string {
	if imag(v) == 0 {
		return fmt.Sprintf("%g", real(v))
	}
	if imag(v) > 0 {
		return fmt.Sprintf("%g+%gi", real(v), imag(v))
	}
	return fmt.Sprintf("%g%gi", real(v), imag(v))
}
