package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/student-service/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type digestRequest struct {
	DelaySeconds int    `json:"delay_seconds" validate:"min=0,max=3600"`
	Label        string `json:"label" validate:"omitempty,min=3"`
}

func (r *digestRequest) Validate() error {
	return Struct(r)
}

type rejectingRequest struct{}

func (r *rejectingRequest) Validate() error {
	return errors.New("window is closed")
}

func newContext(method, body string) echo.Context {
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func badRequest(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate_Valid(t *testing.T) {
	req := &digestRequest{}
	require.NoError(t, BindAndValidate(newContext(http.MethodPost, `{"delay_seconds":60}`), req))
	assert.Equal(t, 60, req.DelaySeconds)
}

func TestBindAndValidate_EmptyBody(t *testing.T) {
	req := &digestRequest{}
	require.NoError(t, BindAndValidate(newContext(http.MethodPost, ""), req))
	assert.Zero(t, req.DelaySeconds)
}

func TestBindAndValidate_FieldErrors(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, `{"delay_seconds":7200,"label":"ab"}`), &digestRequest{})

	httpErr := badRequest(t, err)
	assert.True(t, httpErr.Override)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.ElementsMatch(t, []errs.FieldError{
		{Field: "delay_seconds", Error: "must not exceed 3600"},
		{Field: "label", Error: "must be at least 3 characters"},
	}, httpErr.Errors)
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, `{"delay_seconds":`), &digestRequest{})

	httpErr := badRequest(t, err)
	assert.False(t, httpErr.Override)
	assert.Empty(t, httpErr.Errors)
}

func TestBindAndValidate_PlainValidateError(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodGet, ""), &rejectingRequest{})

	httpErr := badRequest(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "request", Error: "window is closed"}}, httpErr.Errors)
}
