package service

import (
	"github.com/deppfellow/student-service/internal/lib/job"
	"github.com/deppfellow/student-service/internal/repository"
	"github.com/deppfellow/student-service/internal/server"
)

type Services struct {
	Student *StudentService
	Job     *job.JobService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	studentService := NewStudentService(repos.Student, repos.StudentCourse, s.Logger)

	return &Services{
		Student: studentService,
		Job:     s.Job,
	}, nil
}
