package repository

import (
	"github.com/deppfellow/student-service/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Student       *StudentRepository
	StudentCourse *StudentCourseRepository
}

// NewRepositories builds every repository on the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	ql := queryLogger{
		log:       s.Logger,
		threshold: s.Config.Observability.Logging.SlowQueryThreshold,
	}

	return &Repositories{
		Student:       newStudentRepository(s.DB.Pool, ql),
		StudentCourse: newStudentCourseRepository(s.DB.Pool, ql),
	}
}
