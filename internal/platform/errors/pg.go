package errors

// Postgres-specific helpers for mapping pgx errors raised by read-only source queries

import (
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes a SELECT against a source table can realistically hit
const (
	pgErrUndefinedColumn           = "42703"
	pgErrUndefinedTable            = "42P01"
	pgErrInsufficientPrivilege     = "42501"
	pgErrInvalidTextRepresentation = "22P02"
	pgErrInvalidDatetimeFormat     = "22007"
	pgErrQueryCanceled             = "57014"
	pgErrCannotConnectNow          = "57P03"
	pgErrAdminShutdown             = "57P01"
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// IsUndefinedColumn reports whether a query referenced a column the table lacks
func IsUndefinedColumn(err error) bool { return IsSQLState(err, pgErrUndefinedColumn) }

// IsUndefinedTable reports whether a query referenced a missing table
func IsUndefinedTable(err error) bool { return IsSQLState(err, pgErrUndefinedTable) }

// DBErrorCode maps a Postgres error to an ErrorCode with an ok flag
// !ok means err wasn't a PgError; caller may fall back to generic handling
func DBErrorCode(err error) (ErrorCode, bool) {
	var pgErr *pgconn.PgError
	if !stderrs.As(err, &pgErr) {
		return ErrorCodeUnknown, false
	}

	switch pgErr.Code {
	case pgErrUndefinedColumn, pgErrUndefinedTable:
		// the source does not have the shape of a dataset
		return ErrorCodeSchema, true

	case pgErrInvalidTextRepresentation, pgErrInvalidDatetimeFormat:
		return ErrorCodeInvalidArgument, true

	case pgErrInsufficientPrivilege:
		return ErrorCodeSource, true

	case pgErrQueryCanceled, pgErrCannotConnectNow, pgErrAdminShutdown:
		return ErrorCodeUnavailable, true
	}

	return ErrorCodeDB, true
}

// FromPostgres wraps a pg error with a mapped ErrorCode and message
// If err is nil, returns nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, _ := DBErrorCode(err)
	if code == ErrorCodeUnknown {
		code = ErrorCodeDB
	}
	return attachFieldFromPg(Wrap(err, code, msg))
}

// FromPostgresf is the formatted variant of FromPostgres
func FromPostgresf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromPostgres(err, fmt.Sprintf(format, a...))
}

// attachFieldFromPg names the offending column when the server reports one.
// For 42703 the column only appears in the message: column "x" does not exist
func attachFieldFromPg(err error) error {
	pgErr, ok := ExtractPgError(err)
	if !ok {
		return err
	}
	if col := strings.TrimSpace(pgErr.ColumnName); col != "" {
		return WithField(err, col)
	}
	if pgErr.Code == pgErrUndefinedColumn {
		if i := strings.Index(pgErr.Message, `"`); i >= 0 {
			rest := pgErr.Message[i+1:]
			if j := strings.Index(rest, `"`); j > 0 {
				return WithField(err, rest[:j])
			}
		}
	}
	return err
}
