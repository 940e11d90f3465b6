package sqlerr

import (
	"context"
	"errors"

	"github.com/deppfellow/student-service/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
)

const unavailableMessage = "The database is temporarily unavailable"

// ConvertPgError normalizes a raw postgres error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:         MapCode(src.Code),
		Severity:     MapSeverity(src.Severity),
		DatabaseCode: src.Code,
		Message:      src.Message,
		TableName:    src.TableName,
		driverErr:    src,
	}
}

// HandleError converts a low-level database error into an *errs.HTTPError.
//
//   - *errs.HTTPError: returned unchanged
//   - connection failures, exhausted slots, cancellations, deadlines: 503
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return handlePgError(ConvertPgError(pgErr))
	}

	var connectErr *pgconn.ConnectError
	switch {
	case errors.As(err, &connectErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return errs.NewServiceUnavailableError(unavailableMessage)
	}

	return errs.NewInternalServerError()
}

func handlePgError(sqlErr *Error) error {
	if sqlErr.Code.Transient() {
		return errs.NewServiceUnavailableError(unavailableMessage)
	}
	return errs.NewInternalServerError()
}
