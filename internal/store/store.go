// Package store keeps the run history in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/ecuprobe/cli/internal/domain"
	"github.com/ecuprobe/cli/internal/store/migrations"
)

// timeLayout is fixed width so that text order in SQL matches time order.
// Times are always written in UTC.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned by Finish for an unknown run ID.
var ErrRunNotFound = errors.New("run not found")

// Store is a domain.RunStore backed by SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens the database at path, creating its directory, and applies
// pending migrations. ":memory:" opens a private in-memory database.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each ":memory:" connection is a separate database.
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	setDBPermissions(path)

	if err = migrations.Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// setDBPermissions sets restrictive file permissions on the database and its WAL/SHM files.
func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Start records a new run. A missing ID or start time is filled in.
func (s *Store) Start(ctx context.Context, run domain.Run) (domain.Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.now().UTC()
	}

	args, err := json.Marshal(run.Args)
	if err != nil {
		return domain.Run{}, fmt.Errorf("encode args: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO runs (id, command, args, started_at) VALUES (?, ?, ?, ?)`,
		run.ID,
		run.Command,
		string(args),
		run.StartedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return domain.Run{}, fmt.Errorf("insert run: %w", err)
	}

	return run, nil
}

// Finish records the exit code of a started run.
func (s *Store) Finish(ctx context.Context, id string, exitCode int) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET ended_at = ?, exit_code = ? WHERE id = ?`,
		s.now().UTC().Format(timeLayout),
		exitCode,
		id,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	return nil
}

// Recent returns up to limit runs, newest first. A non-positive limit
// returns every run.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, args, started_at, ended_at, exit_code
		 FROM runs
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (domain.Run, error) {
	var (
		run      domain.Run
		args     string
		started  string
		ended    sql.NullString
		exitCode sql.NullInt64
	)

	if err := rows.Scan(&run.ID, &run.Command, &args, &started, &ended, &exitCode); err != nil {
		return domain.Run{}, fmt.Errorf("scan run: %w", err)
	}

	if args != "" {
		if err := json.Unmarshal([]byte(args), &run.Args); err != nil {
			return domain.Run{}, fmt.Errorf("decode args of run %s: %w", run.ID, err)
		}
	}

	t, err := time.Parse(time.RFC3339Nano, started)
	if err != nil {
		return domain.Run{}, fmt.Errorf("parse start of run %s: %w", run.ID, err)
	}
	run.StartedAt = t

	if ended.Valid {
		t, err := time.Parse(time.RFC3339Nano, ended.String)
		if err != nil {
			return domain.Run{}, fmt.Errorf("parse end of run %s: %w", run.ID, err)
		}
		run.EndedAt = &t
	}

	if exitCode.Valid {
		code := int(exitCode.Int64)
		run.ExitCode = &code
	}

	return run, nil
}

var _ domain.RunStore = (*Store)(nil)
