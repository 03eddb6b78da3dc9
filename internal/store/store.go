// Package store persists analysis reports in SQLite so addressing and
// struct layouts can be queried after the run.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/funvibe/semcore/internal/report"
)

const driverName = "sqlite"

// ErrNotFound is returned when a run or struct is not in the store.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	file       TEXT NOT NULL,
	created_at TEXT NOT NULL,
	failed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS bindings (
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq        INTEGER NOT NULL,
	name       TEXT NOT NULL,
	kind       TEXT NOT NULL,
	state      TEXT NOT NULL,
	type       TEXT NOT NULL,
	addressing TEXT NOT NULL,
	constant   TEXT NOT NULL,
	line       INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
CREATE TABLE IF NOT EXISTS fields (
	run_id      TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	struct_name TEXT NOT NULL,
	struct_kind TEXT NOT NULL,
	struct_size INTEGER NOT NULL,
	seq         INTEGER NOT NULL,
	name        TEXT NOT NULL,
	type        TEXT NOT NULL,
	size        INTEGER NOT NULL,
	field_offset INTEGER NOT NULL,
	has_default INTEGER NOT NULL,
	PRIMARY KEY (run_id, struct_name, seq)
);
CREATE TABLE IF NOT EXISTS diagnostics (
	run_id  TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq     INTEGER NOT NULL,
	code    TEXT NOT NULL,
	line    INTEGER NOT NULL,
	col     INTEGER NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
// ":memory:" gives a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening store %s: %w", path, err)
	}
	// An in-memory database lives in a single connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("configuring store %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun writes one report in a single transaction. Saving the same run
// twice replaces the earlier rows.
func (s *Store) SaveRun(ctx context.Context, r *report.Report) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving run %s: %w", r.RunID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"diagnostics", "fields", "bindings"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE run_id = ?`, r.RunID); err != nil {
			return fmt.Errorf("saving run %s: %w", r.RunID, err)
		}
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, r.RunID); err != nil {
		return fmt.Errorf("saving run %s: %w", r.RunID, err)
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, file, created_at, failed) VALUES (?, ?, ?, ?)`,
		r.RunID, r.File, time.Now().UTC().Format(time.RFC3339), len(r.Diagnostics) > 0); err != nil {
		return fmt.Errorf("saving run %s: %w", r.RunID, err)
	}

	for i, b := range r.Bindings {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO bindings (run_id, seq, name, kind, state, type, addressing, constant, line)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.RunID, i, b.Name, b.Kind, b.State, b.Type, b.Addressing, b.Constant, b.Line); err != nil {
			return fmt.Errorf("saving binding %s: %w", b.Name, err)
		}
	}

	for _, st := range r.Structs {
		for i, f := range st.Fields {
			if _, err = tx.ExecContext(ctx,
				`INSERT INTO fields (run_id, struct_name, struct_kind, struct_size, seq, name, type, size, field_offset, has_default)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				r.RunID, st.Name, st.Kind, st.Size, i, f.Name, f.Type, f.Size, f.Offset, f.HasDefault); err != nil {
				return fmt.Errorf("saving field %s.%s: %w", st.Name, f.Name, err)
			}
		}
	}

	for i, d := range r.Diagnostics {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO diagnostics (run_id, seq, code, line, col, message) VALUES (?, ?, ?, ?, ?, ?)`,
			r.RunID, i, d.Code, d.Line, d.Column, d.Message); err != nil {
			return fmt.Errorf("saving diagnostic %d: %w", i, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", r.RunID, err)
	}
	return nil
}

// Bindings returns the module bindings of a run in declaration order.
func (s *Store) Bindings(ctx context.Context, runID string) ([]report.Binding, error) {
	if err := s.requireRun(ctx, runID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, kind, state, type, addressing, constant, line
		 FROM bindings WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying bindings of %s: %w", runID, err)
	}
	defer rows.Close()

	var out []report.Binding
	for rows.Next() {
		var b report.Binding
		if err := rows.Scan(&b.Name, &b.Kind, &b.State, &b.Type, &b.Addressing, &b.Constant, &b.Line); err != nil {
			return nil, fmt.Errorf("scanning binding: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// StructLayout returns the field layout of one struct or class of a run.
func (s *Store) StructLayout(ctx context.Context, runID, name string) (*report.Struct, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT struct_kind, struct_size, name, type, size, field_offset, has_default
		 FROM fields WHERE run_id = ? AND struct_name = ? ORDER BY seq`, runID, name)
	if err != nil {
		return nil, fmt.Errorf("querying layout of %s: %w", name, err)
	}
	defer rows.Close()

	var st *report.Struct
	for rows.Next() {
		var f report.Field
		var kind string
		var size int
		if err := rows.Scan(&kind, &size, &f.Name, &f.Type, &f.Size, &f.Offset, &f.HasDefault); err != nil {
			return nil, fmt.Errorf("scanning field: %w", err)
		}
		if st == nil {
			st = &report.Struct{Name: name, Kind: kind, Size: size}
		}
		st.Fields = append(st.Fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, fmt.Errorf("struct %s in run %s: %w", name, runID, ErrNotFound)
	}
	return st, nil
}

// Diagnostics returns the diagnostics of a run in report order.
func (s *Store) Diagnostics(ctx context.Context, runID string) ([]report.Diagnostic, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT code, line, col, message FROM diagnostics WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying diagnostics of %s: %w", runID, err)
	}
	defer rows.Close()

	var out []report.Diagnostic
	for rows.Next() {
		var d report.Diagnostic
		if err := rows.Scan(&d.Code, &d.Line, &d.Column, &d.Message); err != nil {
			return nil, fmt.Errorf("scanning diagnostic: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Runs lists stored run identifiers for file, newest first.
func (s *Store) Runs(ctx context.Context, file string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE file = ? ORDER BY created_at DESC, rowid DESC`, file)
	if err != nil {
		return nil, fmt.Errorf("querying runs of %s: %w", file, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) requireRun(ctx context.Context, runID string) error {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&n); err != nil {
		return fmt.Errorf("looking up run %s: %w", runID, err)
	}
	if n == 0 {
		return fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	return nil
}
