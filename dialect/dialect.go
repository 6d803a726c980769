// Package dialect defines the execution contract between the tusk query
// builders and the database: the Driver, Tx and ExecQuerier interfaces,
// and the dialect name constants used for placeholder formatting.
package dialect

import "context"

// Supported dialects.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// ExecQuerier wraps the Exec and Query operations. It is the entire
// contract the builders require from execution infrastructure: consume a
// statement string plus an ordered argument list, and return rows or fail.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows. The args
	// argument is expected to be a []any, and v an optional *sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows. The args argument is
	// expected to be a []any, and v a *sql.Rows destination.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transaction behavior around an ExecQuerier.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}
