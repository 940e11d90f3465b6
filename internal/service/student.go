package service

import (
	"context"
	"strings"

	"github.com/deppfellow/student-service/internal/model"
	"github.com/rs/zerolog"
)

// StudentRepository is the student data-access capability.
type StudentRepository interface {
	FindAll(ctx context.Context) ([]model.Student, error)
	// FindTopByOrderByGpaDesc returns nil when there are no students.
	FindTopByOrderByGpaDesc(ctx context.Context) (*model.Student, error)
}

// StudentCourseRepository is the enrollment data-access capability.
type StudentCourseRepository interface {
	FindAll(ctx context.Context) ([]model.StudentCourse, error)
}

// StudentService is a stateless facade over the two repositories.
// Every method issues exactly one query and returns repository errors unchanged.
type StudentService struct {
	students       StudentRepository
	studentCourses StudentCourseRepository
	logger         *zerolog.Logger
}

// NewStudentService wires the service to its repositories.
// A nil logger discards log output.
func NewStudentService(students StudentRepository, studentCourses StudentCourseRepository, logger *zerolog.Logger) *StudentService {
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &StudentService{
		students:       students,
		studentCourses: studentCourses,
		logger:         logger,
	}
}

// GetAllStudentsWithCourses returns every enrollment record exactly as the
// repository returned it, in the same order.
func (s *StudentService) GetAllStudentsWithCourses(ctx context.Context) ([]model.StudentCourse, error) {
	studentCourses, err := s.studentCourses.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Int("enrollments", len(studentCourses)).
		Int("distinct_students", len(distinctStudents(studentCourses))).
		Msg("fetched student courses")

	return studentCourses, nil
}

// distinctStudents maps student id to the first Student seen for that id.
func distinctStudents(studentCourses []model.StudentCourse) map[int64]model.Student {
	students := make(map[int64]model.Student, len(studentCourses))
	for _, sc := range studentCourses {
		if _, ok := students[sc.Student.ID]; !ok {
			students[sc.Student.ID] = sc.Student
		}
	}
	return students
}

// FindStudentWithHighestGpa returns the student with the highest GPA, or nil
// when no students exist. Ties go to the lowest student id.
func (s *StudentService) FindStudentWithHighestGpa(ctx context.Context) (*model.Student, error) {
	return s.students.FindTopByOrderByGpaDesc(ctx)
}

// JoinStudentNames joins all student names with ", " in repository order.
func (s *StudentService) JoinStudentNames(ctx context.Context) (string, error) {
	students, err := s.students.FindAll(ctx)
	if err != nil {
		return "", err
	}

	names := make([]string, len(students))
	for i, student := range students {
		names[i] = student.Name
	}

	return strings.Join(names, ", "), nil
}
