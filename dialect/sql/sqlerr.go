package sql

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/tuskdb/tusk"
)

// PostgreSQL SQLSTATE codes for constraint violations (Class 23).
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// MySQL error numbers for constraint violations.
const (
	mysqlNotNullViolation       = 1048
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

// classifyError maps driver-specific constraint violations to a
// tusk.ConstraintError so callers can detect them without importing the
// driver package. Any other error passes through unchanged.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		switch string(pqerr.Code) {
		case pgNotNullViolation, pgForeignKeyViolation, pgUniqueViolation, pgCheckViolation:
			return tusk.NewConstraintError(pqerr.Message, err)
		}
		return err
	}
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		switch myerr.Number {
		case mysqlNotNullViolation, mysqlDuplicateEntry, mysqlForeignKeyParent,
			mysqlForeignKeyChild, mysqlCheckConstraintViolate:
			return tusk.NewConstraintError(myerr.Message, err)
		}
		return err
	}
	// SQLite drivers report constraint violations in the message text.
	if msg := err.Error(); strings.Contains(msg, "constraint failed") {
		return tusk.NewConstraintError(msg, err)
	}
	return err
}

// IsUniqueConstraintError reports if the error resulted from a database
// uniqueness constraint violation.
func IsUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		return string(pqerr.Code) == pgUniqueViolation
	}
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		return myerr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyConstraintError reports if the error resulted from a
// database foreign-key constraint violation.
func IsForeignKeyConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		return string(pqerr.Code) == pgForeignKeyViolation
	}
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		return myerr.Number == mysqlForeignKeyParent || myerr.Number == mysqlForeignKeyChild
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// IsCheckConstraintError reports if the error resulted from a database
// check constraint violation.
func IsCheckConstraintError(err error) bool {
	if err == nil {
		return false
	}
	var pqerr *pq.Error
	if errors.As(err, &pqerr) {
		return string(pqerr.Code) == pgCheckViolation
	}
	var myerr *mysql.MySQLError
	if errors.As(err, &myerr) {
		return myerr.Number == mysqlCheckConstraintViolate
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}
