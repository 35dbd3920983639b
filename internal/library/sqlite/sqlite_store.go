package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"user-game/internal/library"
)

const (
	// DriverCGO is the mattn/go-sqlite3 driver.
	DriverCGO = "sqlite3"
	// DriverPure is the modernc.org/sqlite driver.
	DriverPure = "sqlite"

	defaultPath        = "user_game.db"
	defaultBusyTimeout = 5 * time.Second
)

type Options struct {
	Path        string
	Driver      string
	ForeignKeys bool
	BusyTimeout time.Duration
}

type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ library.Repository = (*SQLiteStore)(nil)

// Open acquires a handle on the database file, creating it if absent.
// Every failure is reported as *OpenError and leaves nothing open.
func Open(ctx context.Context, opts Options) (*SQLiteStore, error) {
	path := strings.TrimSpace(opts.Path)
	if path == "" {
		path = defaultPath
	}
	driver := strings.TrimSpace(opts.Driver)
	if driver == "" {
		driver = DriverCGO
	}
	if driver != DriverCGO && driver != DriverPure {
		return nil, &OpenError{Path: path, Err: fmt.Errorf("unsupported driver %q", driver)}
	}
	busyTimeout := opts.BusyTimeout
	if busyTimeout <= 0 {
		busyTimeout = defaultBusyTimeout
	}

	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	// One connection keeps per-connection pragmas (and :memory: databases) stable.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	foreignKeys := "OFF"
	if opts.ForeignKeys {
		foreignKeys = "ON"
	}
	pragmas := []string{
		fmt.Sprintf(`PRAGMA busy_timeout = %d;`, busyTimeout.Milliseconds()),
		`PRAGMA foreign_keys = ` + foreignKeys + `;`,
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, &OpenError{Path: path, Err: err}
		}
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close releases the connection. It is safe on a nil store and on repeat calls.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Exec runs a statement that produces no rows.
func (s *SQLiteStore) Exec(ctx context.Context, op, stmt string, args ...any) (sql.Result, error) {
	if s == nil || s.db == nil {
		return nil, &StatementError{Op: op, Err: errStoreClosed}
	}
	result, err := s.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return nil, newStatementError(op, err)
	}
	return result, nil
}

// Query runs a read statement. The caller owns the returned rows and must
// close them; each call starts a fresh pass over the result set.
func (s *SQLiteStore) Query(ctx context.Context, op, stmt string, args ...any) (*sql.Rows, error) {
	if s == nil || s.db == nil {
		return nil, &StatementError{Op: op, Err: errStoreClosed}
	}
	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, newStatementError(op, err)
	}
	return rows, nil
}

func (s *SQLiteStore) String() string {
	return fmt.Sprintf("sqlite_store(%s)", s.Path())
}
