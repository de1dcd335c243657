// Package guard executes rendered statements that carry an existence guard.
//
// Dialects without CREATE ... IF NOT EXISTS render the unconditional
// statement together with a Guard. Executing it through this package runs
// the statement and ignores the failure class the guard names, so the
// statement behaves as if the dialect supported the clause natively.
package guard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	mssql "github.com/microsoft/go-mssqldb"
	"modernc.org/sqlite"

	"github.com/zoobzio/sqlkit/internal/types"
)

// Database error codes for "object already exists".
const (
	pgDuplicateTable     = "42P07"
	pgDuplicateObject    = "42710"
	mysqlTableExists     = 1050
	mssqlObjectExists    = 2714
	sqliteGenericFailure = 1
)

// Execer is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// PgxExecer is satisfied by *pgx.Conn, *pgxpool.Pool and pgx.Tx.
type PgxExecer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Option configures Exec and ExecPgx.
type Option func(*config)

type config struct {
	logger *slog.Logger
}

// WithLogger sets the logger suppressed failures are reported to. The
// default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) config {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Exec runs a rendered statement on db. A failure matching the statement's
// guard is ignored; every other failure is returned.
func Exec(ctx context.Context, db Execer, q *types.QueryResult, opts ...Option) error {
	if q == nil {
		return errors.New("guard: query result is nil")
	}
	_, err := db.ExecContext(ctx, q.SQL)
	return settle(q, err, newConfig(opts))
}

// ExecPgx runs a rendered statement on a pgx connection. A failure matching
// the statement's guard is ignored; every other failure is returned.
func ExecPgx(ctx context.Context, conn PgxExecer, q *types.QueryResult, opts ...Option) error {
	if q == nil {
		return errors.New("guard: query result is nil")
	}
	_, err := conn.Exec(ctx, q.SQL)
	return settle(q, err, newConfig(opts))
}

func settle(q *types.QueryResult, err error, c config) error {
	if err == nil {
		return nil
	}
	if q.Guard != nil && Classify(err) == q.Guard.Suppress {
		c.logger.Debug("guarded statement failure suppressed",
			"statement", q.Guard.Statement,
			"dialect", q.Dialect,
			"class", q.Guard.Suppress,
			"error", err,
		)
		return nil
	}
	return fmt.Errorf("exec %s: %w", statementName(q), err)
}

func statementName(q *types.QueryResult) string {
	if q.Guard != nil {
		return q.Guard.Statement
	}
	if fields := strings.Fields(q.SQL); len(fields) >= 2 {
		return fields[0] + " " + fields[1]
	}
	return "statement"
}

// Classify returns the error class of a database failure, or "" when the
// failure belongs to no known class.
func Classify(err error) types.ErrorClass {
	if IsAlreadyExists(err) {
		return types.ErrAlreadyExists
	}
	return ""
}

// IsAlreadyExists reports whether err means the object being created exists.
// Driver error codes are checked for PostgreSQL, MySQL/MariaDB and SQL
// Server; other drivers are matched on the message text.
func IsAlreadyExists(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgDuplicateTable || pgErr.Code == pgDuplicateObject
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlTableExists
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		return msErr.Number == mssqlObjectExists
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) && liteErr.Code()&0xff != sqliteGenericFailure {
		return false
	}

	return strings.Contains(strings.ToLower(err.Error()), "already exists")
}
