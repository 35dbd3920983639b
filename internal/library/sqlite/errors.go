package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sqlite3 "github.com/mattn/go-sqlite3"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"user-game/internal/library"
)

var errStoreClosed = errors.New("store is closed")

// OpenError reports that the database file could not be opened or prepared.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("open database %q: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// StatementError carries the engine diagnostic for a failed statement.
// Err may wrap a library sentinel when the failure was classified.
type StatementError struct {
	Op  string
	Err error
}

func (e *StatementError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StatementError) Unwrap() error {
	return e.Err
}

type constraintKind int

const (
	constraintNone constraintKind = iota
	constraintUnique
	constraintForeignKey
)

func newStatementError(op string, err error) *StatementError {
	return &StatementError{Op: op, Err: err}
}

func insertedID(op string, result sql.Result) (int64, error) {
	id, err := result.LastInsertId()
	if err != nil {
		return 0, newStatementError(op, err)
	}
	return id, nil
}

// classifyConstraint recognizes unique and foreign-key violations from either
// driver, falling back to the engine message.
func classifyConstraint(err error) constraintKind {
	if err == nil {
		return constraintNone
	}

	var cgoErr sqlite3.Error
	if errors.As(err, &cgoErr) {
		switch cgoErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return constraintUnique
		case sqlite3.ErrConstraintForeignKey:
			return constraintForeignKey
		}
	}

	var pureErr *msqlite.Error
	if errors.As(err, &pureErr) {
		switch pureErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_UNIQUE, sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return constraintUnique
		case sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY:
			return constraintForeignKey
		}
	}

	message := strings.ToLower(err.Error())
	switch {
	case strings.Contains(message, "unique constraint failed"):
		return constraintUnique
	case strings.Contains(message, "foreign key constraint failed"):
		return constraintForeignKey
	}
	return constraintNone
}

// insertError wraps a failed insert, attaching the library sentinel that
// matches the violated constraint.
func insertError(err error, onUnique error) error {
	var stmtErr *StatementError
	if !errors.As(err, &stmtErr) {
		return err
	}

	switch classifyConstraint(stmtErr.Err) {
	case constraintUnique:
		if onUnique == nil {
			break
		}
		stmtErr.Err = fmt.Errorf("%w (%w)", onUnique, stmtErr.Err)
	case constraintForeignKey:
		stmtErr.Err = fmt.Errorf("%w (%w)", library.ErrUnknownReference, stmtErr.Err)
	}
	return stmtErr
}
