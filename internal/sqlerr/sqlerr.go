// Package sqlerr specifically handles database driver errors.
//
// The service only reads, so the SQLSTATE classes that matter are the ones
// a SELECT can raise: lost connections, exhausted connection slots and
// cancelled statements. Those become 503s; everything else is a 500.
package sqlerr

import "fmt"

// Code is the normalized category of a database error.
type Code string

const (
	Other              Code = "other"
	ConnectionFailure  Code = "connection_failure"
	TooManyConnections Code = "too_many_connections"
	QueryCanceled      Code = "query_canceled"
	AdminShutdown      Code = "admin_shutdown"
	UndefinedTable     Code = "undefined_table"
)

// MapCode maps a postgres SQLSTATE to a Code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func MapCode(sqlState string) Code {
	switch sqlState {
	case "53300":
		return TooManyConnections
	case "57014":
		return QueryCanceled
	case "57P01", "57P02", "57P03":
		return AdminShutdown
	case "42P01":
		return UndefinedTable
	}

	// Class 08: connection exception.
	if len(sqlState) == 5 && sqlState[:2] == "08" {
		return ConnectionFailure
	}

	return Other
}

// Transient reports whether a retry may succeed once the database recovers.
func (c Code) Transient() bool {
	switch c {
	case ConnectionFailure, TooManyConnections, QueryCanceled, AdminShutdown:
		return true
	default:
		return false
	}
}

// Severity is the postgres message severity.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityUnknown Severity = "UNKNOWN"
)

func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning, SeverityNotice:
		return Severity(severity)
	default:
		return SeverityUnknown
	}
}

// Error is a normalized postgres error. It keeps the driver error for Unwrap.
type Error struct {
	Code         Code
	Severity     Severity
	DatabaseCode string
	Message      string
	TableName    string
	driverErr    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Severity, e.DatabaseCode, e.Message)
}

func (e *Error) Unwrap() error {
	return e.driverErr
}
