package router

import (
	"net/http"

	"github.com/deppfellow/student-service/internal/handler"
	"github.com/labstack/echo/v4"
)

func registerStudentRoutes(r *echo.Group, h *handler.Handlers) {
	students := h.Student
	g := r.Group("/students")

	g.GET("/courses", handler.Handle(students.Handler, students.GetAllStudentsWithCourses, http.StatusOK))
	g.GET("/highest-gpa", handler.Handle(students.Handler, students.FindStudentWithHighestGpa, http.StatusOK))
	g.GET("/names", handler.Handle(students.Handler, students.JoinStudentNames, http.StatusOK))
	g.POST("/roster-digest", handler.Handle(students.Handler, students.EnqueueRosterDigest, http.StatusAccepted))
}
