package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/student-service/internal/config"
	"github.com/deppfellow/student-service/internal/errs"
	"github.com/deppfellow/student-service/internal/middleware"
	"github.com/deppfellow/student-service/internal/model"
	"github.com/deppfellow/student-service/internal/server"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockStudentReader struct {
	mock.Mock
}

func (m *mockStudentReader) GetAllStudentsWithCourses(ctx context.Context) ([]model.StudentCourse, error) {
	args := m.Called(ctx)
	studentCourses, _ := args.Get(0).([]model.StudentCourse)
	return studentCourses, args.Error(1)
}

func (m *mockStudentReader) FindStudentWithHighestGpa(ctx context.Context) (*model.Student, error) {
	args := m.Called(ctx)
	student, _ := args.Get(0).(*model.Student)
	return student, args.Error(1)
}

func (m *mockStudentReader) JoinStudentNames(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockDigestEnqueuer struct {
	mock.Mock
}

func (m *mockDigestEnqueuer) EnqueueRosterDigest(ctx context.Context, requestID string, delay time.Duration) (string, error) {
	args := m.Called(ctx, requestID, delay)
	return args.String(0), args.Error(1)
}

func newTestServer() *server.Server {
	log := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &log,
	}
}

func newStudentEcho(students StudentReader, digests RosterDigestEnqueuer) *echo.Echo {
	s := newTestServer()
	h := NewStudentHandler(s, students, digests)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(s).GlobalErrorHandler
	e.Use(middleware.RequestID())

	g := e.Group("/api/v1/students")
	g.GET("/courses", Handle(h.Handler, h.GetAllStudentsWithCourses, http.StatusOK))
	g.GET("/highest-gpa", Handle(h.Handler, h.FindStudentWithHighestGpa, http.StatusOK))
	g.GET("/names", Handle(h.Handler, h.JoinStudentNames, http.StatusOK))
	g.POST("/roster-digest", Handle(h.Handler, h.EnqueueRosterDigest, http.StatusAccepted))
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetAllStudentsWithCourses(t *testing.T) {
	alice := model.Student{ID: 1, Name: "Alice", GPA: 3.5}
	records := []model.StudentCourse{
		{ID: 10, Student: alice, Course: model.Course{ID: 100, Name: "Math"}},
		{ID: 11, Student: alice, Course: model.Course{ID: 101, Name: "Physics"}},
	}

	students := new(mockStudentReader)
	students.On("GetAllStudentsWithCourses", mock.Anything).Return(records, nil).Once()

	rec := serve(newStudentEcho(students, nil), http.MethodGet, "/api/v1/students/courses", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got []model.StudentCourse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, records, got)
	students.AssertExpectations(t)
}

func TestGetAllStudentsWithCourses_Empty(t *testing.T) {
	students := new(mockStudentReader)
	students.On("GetAllStudentsWithCourses", mock.Anything).Return(nil, nil).Once()

	rec := serve(newStudentEcho(students, nil), http.MethodGet, "/api/v1/students/courses", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestFindStudentWithHighestGpa(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		students := new(mockStudentReader)
		students.On("FindStudentWithHighestGpa", mock.Anything).
			Return(&model.Student{ID: 2, Name: "Bob", GPA: 3.9}, nil).Once()

		rec := serve(newStudentEcho(students, nil), http.MethodGet, "/api/v1/students/highest-gpa", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"id":2,"name":"Bob","gpa":3.9}`, rec.Body.String())
	})

	t.Run("no students", func(t *testing.T) {
		students := new(mockStudentReader)
		students.On("FindStudentWithHighestGpa", mock.Anything).Return(nil, nil).Once()

		rec := serve(newStudentEcho(students, nil), http.MethodGet, "/api/v1/students/highest-gpa", "")

		require.Equal(t, http.StatusNotFound, rec.Code)
		var body errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "STUDENT_NOT_FOUND", body.Code)
		assert.Equal(t, "Student not found", body.Message)
		assert.True(t, body.Override)
	})

	t.Run("database error", func(t *testing.T) {
		students := new(mockStudentReader)
		students.On("FindStudentWithHighestGpa", mock.Anything).
			Return(nil, &pgconn.PgError{Code: "08006"}).Once()

		rec := serve(newStudentEcho(students, nil), http.MethodGet, "/api/v1/students/highest-gpa", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestJoinStudentNames(t *testing.T) {
	students := new(mockStudentReader)
	students.On("JoinStudentNames", mock.Anything).Return("Alice, Bob, Carol", nil).Once()

	rec := serve(newStudentEcho(students, nil), http.MethodGet, "/api/v1/students/names", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"names":"Alice, Bob, Carol"}`, rec.Body.String())
}

func TestJoinStudentNames_Error(t *testing.T) {
	students := new(mockStudentReader)
	students.On("JoinStudentNames", mock.Anything).Return("", errors.New("boom")).Once()

	rec := serve(newStudentEcho(students, nil), http.MethodGet, "/api/v1/students/names", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestEnqueueRosterDigest(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		digests := new(mockDigestEnqueuer)
		digests.On("EnqueueRosterDigest", mock.Anything, mock.AnythingOfType("string"), 90*time.Second).
			Return("task-1", nil).Once()

		rec := serve(newStudentEcho(nil, digests), http.MethodPost, "/api/v1/students/roster-digest", `{"delay_seconds":90}`)

		require.Equal(t, http.StatusAccepted, rec.Code)
		assert.JSONEq(t, `{"task_id":"task-1"}`, rec.Body.String())
		digests.AssertExpectations(t)
	})

	t.Run("empty body runs now", func(t *testing.T) {
		digests := new(mockDigestEnqueuer)
		digests.On("EnqueueRosterDigest", mock.Anything, mock.AnythingOfType("string"), time.Duration(0)).
			Return("task-2", nil).Once()

		rec := serve(newStudentEcho(nil, digests), http.MethodPost, "/api/v1/students/roster-digest", "")

		assert.Equal(t, http.StatusAccepted, rec.Code)
		digests.AssertExpectations(t)
	})

	t.Run("delay out of range", func(t *testing.T) {
		digests := new(mockDigestEnqueuer)

		rec := serve(newStudentEcho(nil, digests), http.MethodPost, "/api/v1/students/roster-digest", `{"delay_seconds":-1}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var body errs.HTTPError
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Errors, 1)
		assert.Equal(t, "delay_seconds", body.Errors[0].Field)
		digests.AssertNotCalled(t, "EnqueueRosterDigest", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("queue down", func(t *testing.T) {
		digests := new(mockDigestEnqueuer)
		digests.On("EnqueueRosterDigest", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("dial tcp: connection refused")).Once()

		rec := serve(newStudentEcho(nil, digests), http.MethodPost, "/api/v1/students/roster-digest", "")

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestCheckHealth(t *testing.T) {
	newHealth := func(checks map[string]pingFunc) *HealthHandler {
		return &HealthHandler{
			Handler: NewHandler(newTestServer()),
			checks:  checks,
			timeout: time.Second,
		}
	}
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("healthy", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

		require.NoError(t, newHealth(map[string]pingFunc{"database": ok, "redis": ok}).CheckHealth(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "healthy", body["status"])
		assert.Equal(t, "test", body["environment"])
		assert.Len(t, body["checks"], 2)
	})

	t.Run("dependency down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/status", nil), rec)

		require.NoError(t, newHealth(map[string]pingFunc{"database": ok, "redis": down}).CheckHealth(c))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "unhealthy", body["status"])
		redis := body["checks"].(map[string]any)["redis"].(map[string]any)
		assert.Equal(t, "connection refused", redis["error"])
	})
}

func TestNewHealthHandler_DisabledChecks(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Enabled = false

	h := NewHealthHandler(s)
	assert.Empty(t, h.checks)
	assert.Equal(t, s.Config.Observability.HealthChecks.Timeout, h.timeout)
}

func TestServeOpenAPIUI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "openapi.html")
	require.NoError(t, os.WriteFile(path, []byte("<html>docs</html>"), 0o600))

	h := NewOpenAPIHandler(newTestServer())
	h.uiPath = path

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)

	require.NoError(t, h.ServeOpenAPIUI(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.True(t, bytes.Contains(rec.Body.Bytes(), []byte("docs")))

	h.uiPath = filepath.Join(t.TempDir(), "missing.html")
	assert.Error(t, h.ServeOpenAPIUI(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder())))
}
