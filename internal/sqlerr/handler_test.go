package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/deppfellow/student-service/internal/errs"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func httpError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	return httpErr
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, ConnectionFailure, MapCode("08001"))
	assert.Equal(t, TooManyConnections, MapCode("53300"))
	assert.Equal(t, QueryCanceled, MapCode("57014"))
	assert.Equal(t, AdminShutdown, MapCode("57P01"))
	assert.Equal(t, UndefinedTable, MapCode("42P01"))
	assert.Equal(t, Other, MapCode("23505"))
	assert.Equal(t, Other, MapCode("XX000"))
}

func TestHandleError_PgErrors(t *testing.T) {
	tests := []struct {
		name       string
		pgErr      *pgconn.PgError
		wantStatus int
		wantCode   string
	}{
		{"connection lost", &pgconn.PgError{Code: "08006"}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"too many connections", &pgconn.PgError{Code: "53300", Severity: "FATAL"}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{"server shutting down", &pgconn.PgError{Code: "57P01"}, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE"},
		{
			"undefined table",
			&pgconn.PgError{Code: "42P01", Message: `relation "students" does not exist`},
			http.StatusInternalServerError,
			"INTERNAL_SERVER_ERROR",
		},
		{"unexpected state", &pgconn.PgError{Code: "XX000"}, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := HandleError(fmt.Errorf("failed to query students: %w", tt.pgErr))

			httpErr := httpError(t, err)
			assert.Equal(t, tt.wantStatus, httpErr.Status)
			assert.Equal(t, tt.wantCode, httpErr.Code)
		})
	}
}

func TestHandleError_Unavailable(t *testing.T) {
	for _, err := range []error{
		fmt.Errorf("failed to query students: %w", context.DeadlineExceeded),
		context.Canceled,
	} {
		httpErr := httpError(t, HandleError(err))
		assert.Equal(t, http.StatusServiceUnavailable, httpErr.Status)
		assert.Equal(t, "The database is temporarily unavailable", httpErr.Message)
	}
}

func TestHandleError_PassThroughAndFallback(t *testing.T) {
	original := errs.NewEntityNotFoundError("student")
	assert.Same(t, original, HandleError(original))

	httpErr := httpError(t, HandleError(errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}

func TestConvertPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "53300", Severity: "FATAL", Message: "sorry, too many clients already"}

	sqlErr := ConvertPgError(pgErr)
	assert.Equal(t, TooManyConnections, sqlErr.Code)
	assert.Equal(t, SeverityFatal, sqlErr.Severity)
	assert.Equal(t, "FATAL 53300: sorry, too many clients already", sqlErr.Error())
	assert.ErrorIs(t, sqlErr, pgErr)
}
