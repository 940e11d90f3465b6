package handler

import (
	"context"
	"time"

	"github.com/deppfellow/student-service/internal/errs"
	"github.com/deppfellow/student-service/internal/middleware"
	"github.com/deppfellow/student-service/internal/model"
	"github.com/deppfellow/student-service/internal/server"
	"github.com/labstack/echo/v4"
)

// StudentReader is the service surface the student endpoints call.
type StudentReader interface {
	GetAllStudentsWithCourses(ctx context.Context) ([]model.StudentCourse, error)
	FindStudentWithHighestGpa(ctx context.Context) (*model.Student, error)
	JoinStudentNames(ctx context.Context) (string, error)
}

// RosterDigestEnqueuer schedules roster digest jobs.
type RosterDigestEnqueuer interface {
	EnqueueRosterDigest(ctx context.Context, requestID string, delay time.Duration) (string, error)
}

type StudentHandler struct {
	Handler
	students StudentReader
	digests  RosterDigestEnqueuer
}

func NewStudentHandler(s *server.Server, students StudentReader, digests RosterDigestEnqueuer) *StudentHandler {
	return &StudentHandler{
		Handler:  NewHandler(s),
		students: students,
		digests:  digests,
	}
}

func (h *StudentHandler) GetAllStudentsWithCourses(c echo.Context, _ *model.ListStudentCoursesRequest) ([]model.StudentCourse, error) {
	studentCourses, err := h.students.GetAllStudentsWithCourses(c.Request().Context())
	if err != nil {
		return nil, err
	}

	if studentCourses == nil {
		studentCourses = []model.StudentCourse{}
	}
	return studentCourses, nil
}

// FindStudentWithHighestGpa answers 404 when there are no students.
func (h *StudentHandler) FindStudentWithHighestGpa(c echo.Context, _ *model.HighestGpaRequest) (*model.Student, error) {
	student, err := h.students.FindStudentWithHighestGpa(c.Request().Context())
	if err != nil {
		return nil, err
	}

	if student == nil {
		return nil, errs.NewEntityNotFoundError("student")
	}
	return student, nil
}

func (h *StudentHandler) JoinStudentNames(c echo.Context, _ *model.StudentNamesRequest) (model.StudentNamesResponse, error) {
	names, err := h.students.JoinStudentNames(c.Request().Context())
	if err != nil {
		return model.StudentNamesResponse{}, err
	}
	return model.StudentNamesResponse{Names: names}, nil
}

func (h *StudentHandler) EnqueueRosterDigest(c echo.Context, req *model.RosterDigestRequest) (model.RosterDigestResponse, error) {
	delay := time.Duration(req.DelaySeconds) * time.Second

	taskID, err := h.digests.EnqueueRosterDigest(c.Request().Context(), middleware.GetRequestID(c), delay)
	if err != nil {
		middleware.GetLogger(c).Error().Err(err).Msg("failed to enqueue roster digest")
		return model.RosterDigestResponse{}, errs.NewServiceUnavailableError("Roster digest queue is unavailable")
	}
	return model.RosterDigestResponse{TaskID: taskID}, nil
}
