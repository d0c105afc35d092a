// Package sqlxrepos implements the record repositories on top of a relational database (sqlite or postgres).
// Referential integrity & cascading deletes are enforced by the schema's foreign keys.
package sqlxrepos

import (
	"database/sql"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/trezcool/sims/core"
)

// statementBuilder returns a squirrel builder using the placeholders of db's driver.
func statementBuilder(db *sqlx.DB) sq.StatementBuilderType {
	if db.DriverName() == "postgres" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// trapErr maps driver errors to the record taxonomy and wraps anything else with msg.
func trapErr(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case err == sql.ErrNoRows:
		return core.ErrNotFound
	case isForeignKeyViolation(err):
		return errors.Wrap(core.ErrMissingReference, msg)
	case isUniqueViolation(err):
		return errors.Wrap(core.ErrDuplicateKey, msg)
	}
	return errors.Wrap(err, msg)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23503" // foreign_key_violation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY ||
			strings.Contains(liteErr.Error(), "FOREIGN KEY constraint failed")
	}
	return false
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505" // unique_violation
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE ||
			strings.Contains(liteErr.Error(), "UNIQUE constraint failed")
	}
	return false
}

// checkAffected turns an update/delete that matched no row into core.ErrNotFound.
func checkAffected(res sql.Result, msg string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	return nil
}
