package errors

// ClickHouse-specific helpers for mapping server exceptions raised by source queries

import (
	stderrs "errors"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// server exception codes a SELECT against a source table can hit
const (
	chErrUnknownIdentifier = 47
	chErrUnknownTable      = 60
	chErrUnknownDatabase   = 81
	chErrTimeoutExceeded   = 159
	chErrQueryCancelled    = 394
	chErrAccessDenied      = 497
	chErrAuthFailed        = 516
)

// ExtractChException returns the server exception behind err, if any
func ExtractChException(err error) (*clickhouse.Exception, bool) {
	var ex *clickhouse.Exception
	if stderrs.As(err, &ex) {
		return ex, true
	}
	return nil, false
}

// ChErrorCode maps a ClickHouse exception to an ErrorCode with an ok flag
func ChErrorCode(err error) (ErrorCode, bool) {
	ex, ok := ExtractChException(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch ex.Code {
	case chErrUnknownIdentifier, chErrUnknownTable, chErrUnknownDatabase:
		return ErrorCodeSchema, true
	case chErrAccessDenied, chErrAuthFailed:
		return ErrorCodeSource, true
	case chErrTimeoutExceeded, chErrQueryCancelled:
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromClickhouse wraps err with a mapped ErrorCode; transport failures become Source errors
func FromClickhouse(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := ChErrorCode(err)
	if !ok {
		code = ErrorCodeSource
	}
	return Wrap(err, code, msg)
}

// FromClickhousef is the formatted variant of FromClickhouse
func FromClickhousef(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}
	return FromClickhouse(err, fmt.Sprintf(format, a...))
}
