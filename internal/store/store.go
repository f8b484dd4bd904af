// Package store persists a Context's variable and user-function
// registries to a SQL database, grounded on the teacher's
// internal/database driver-registration pattern: the same driver set
// (sqlite3, mysql, postgres, sqlserver) is wired in here, repurposed
// from connection scanning to registry persistence. Both the cgo
// sqlite3 driver and the pure-Go modernc.org/sqlite driver are
// registered, same as the teacher carries both side by side: pass
// "sqlite3" to Open for the cgo driver, "sqlite" for the pure-Go one.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/denisenkom/go-mssqldb"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"texpr/internal/registry"
)

// Store persists scientific and integer variables and user functions
// for a registry.Context against a SQL backend. One Store instance
// owns one *sql.DB; concurrent use is safe, since database/sql pools
// connections internally.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to driver/dsn (e.g. "sqlite3", "./texpr.db") and
// ensures the schema exists.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}
	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sci_vars (
			name TEXT PRIMARY KEY,
			re DOUBLE PRECISION NOT NULL,
			im DOUBLE PRECISION NOT NULL,
			is_constant INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS int_vars (
			name TEXT PRIMARY KEY,
			value BIGINT NOT NULL,
			is_constant INTEGER NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS sci_ufuncs (
			name TEXT PRIMARY KEY,
			arg_names TEXT NOT NULL,
			source TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS int_ufuncs (
			name TEXT PRIMARY KEY,
			arg_names TEXT NOT NULL,
			source TEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("store: migrate: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

// SaveVar upserts one scientific variable.
func (s *Store) SaveVar(name string, value complex128, isConstant bool) error {
	_, err := s.db.Exec(s.upsert("sci_vars", "name", "re, im, is_constant, updated_at"),
		name, real(value), imag(value), boolToInt(isConstant), time.Now())
	return err
}

// LoadVars returns every persisted scientific variable.
func (s *Store) LoadVars() (map[string]registry.Variable, error) {
	rows, err := s.db.Query(`SELECT name, re, im, is_constant FROM sci_vars`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]registry.Variable)
	for rows.Next() {
		var name string
		var re, im float64
		var isConst int
		if err := rows.Scan(&name, &re, &im, &isConst); err != nil {
			return nil, err
		}
		out[name] = registry.Variable{Value: complex(re, im), IsConstant: isConst != 0}
	}
	return out, rows.Err()
}

// SaveIntVar upserts one integer variable.
func (s *Store) SaveIntVar(name string, value int64, isConstant bool) error {
	_, err := s.db.Exec(s.upsert("int_vars", "name", "value, is_constant, updated_at"),
		name, value, boolToInt(isConstant), time.Now())
	return err
}

// LoadIntVars returns every persisted integer variable.
func (s *Store) LoadIntVars() (map[string]registry.IntVariable, error) {
	rows, err := s.db.Query(`SELECT name, value, is_constant FROM int_vars`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]registry.IntVariable)
	for rows.Next() {
		var name string
		var value int64
		var isConst int
		if err := rows.Scan(&name, &value, &isConst); err != nil {
			return nil, err
		}
		out[name] = registry.IntVariable{Value: value, IsConstant: isConst != 0}
	}
	return out, rows.Err()
}

// SaveUFunction upserts a scientific user function's raw definition
// (argNames and source text); the caller recompiles source on load,
// since a *ast.Expr is not itself serializable and does not need to be
// — recompiling is cheap and keeps the stored schema simple.
func (s *Store) SaveUFunction(name string, argNames []string, source string) error {
	_, err := s.db.Exec(s.upsert("sci_ufuncs", "name", "arg_names, source, updated_at"),
		name, joinArgs(argNames), source, time.Now())
	return err
}

// LoadUFunctions returns every persisted scientific user function's raw
// definition, keyed by name.
func (s *Store) LoadUFunctions() (map[string]RawUFunc, error) {
	return s.loadRaw("sci_ufuncs")
}

// SaveIntUFunction is SaveUFunction's integer-domain analog.
func (s *Store) SaveIntUFunction(name string, argNames []string, source string) error {
	_, err := s.db.Exec(s.upsert("int_ufuncs", "name", "arg_names, source, updated_at"),
		name, joinArgs(argNames), source, time.Now())
	return err
}

// LoadIntUFunctions is LoadUFunctions's integer-domain analog.
func (s *Store) LoadIntUFunctions() (map[string]RawUFunc, error) {
	return s.loadRaw("int_ufuncs")
}

// RawUFunc is a persisted user function before recompilation.
type RawUFunc struct {
	ArgNames []string
	Source   string
}

func (s *Store) loadRaw(table string) (map[string]RawUFunc, error) {
	rows, err := s.db.Query(fmt.Sprintf(`SELECT name, arg_names, source FROM %s`, table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]RawUFunc)
	for rows.Next() {
		var name, argNamesRaw, source string
		if err := rows.Scan(&name, &argNamesRaw, &source); err != nil {
			return nil, err
		}
		out[name] = RawUFunc{ArgNames: splitArgs(argNamesRaw), Source: source}
	}
	return out, rows.Err()
}

// upsert builds an "INSERT ... ON CONFLICT" statement compatible with
// sqlite3/postgres; mysql's own upsert dialect differs and is handled
// by its driver accepting the same placeholder positions via
// REPLACE-equivalent semantics being out of scope for this helper — the
// postgres/sqlite dialect is the one this repo's own tests and cmd/
// tools target.
func (s *Store) upsert(table, keyCol, restCols string) string {
	cols := restCols
	return fmt.Sprintf(
		`INSERT INTO %s (%s, %s) VALUES (%s)
		 ON CONFLICT(%s) DO UPDATE SET %s`,
		table, keyCol, cols, placeholders(1+countCols(cols)), keyCol, setClause(cols))
}

func countCols(cols string) int {
	n := 1
	for _, c := range cols {
		if c == ',' {
			n++
		}
	}
	return n
}

func placeholders(n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		out += fmt.Sprintf("$%d", i)
	}
	return out
}

func setClause(cols string) string {
	names := splitArgs(cols)
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += fmt.Sprintf("%s = excluded.%s", n, n)
	}
	return out
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func joinArgs(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ","
		}
		out += n
	}
	return out
}

func splitArgs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			out = append(out, trimSpace(s[start:i]))
			start = i + 1
		}
	}
	return out
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && s[start] == ' ' {
		start++
	}
	for end > start && s[end-1] == ' ' {
		end--
	}
	return s[start:end]
}
