package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/student-service/internal/model"
	"github.com/jackc/pgx/v5"
)

// One bulk query: the student and course of every enrollment are joined in.
const findAllStudentCoursesQuery = `
	SELECT sc.id,
	       s.id, s.name, s.gpa,
	       c.id, c.name, c.description
	FROM student_courses sc
	JOIN students s ON s.id = sc.student_id
	JOIN courses c ON c.id = sc.course_id
	ORDER BY sc.id ASC`

type StudentCourseRepository struct {
	db DBTX
	ql queryLogger
}

// NewStudentCourseRepository creates a StudentCourseRepository without slow query logging.
func NewStudentCourseRepository(db DBTX) *StudentCourseRepository {
	return newStudentCourseRepository(db, queryLogger{})
}

func newStudentCourseRepository(db DBTX, ql queryLogger) *StudentCourseRepository {
	return &StudentCourseRepository{db: db, ql: ql}
}

// FindAll returns every enrollment ordered by enrollment id.
func (r *StudentCourseRepository) FindAll(ctx context.Context) ([]model.StudentCourse, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, findAllStudentCoursesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query student courses: %w", err)
	}

	studentCourses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.StudentCourse, error) {
		var sc model.StudentCourse
		err := row.Scan(
			&sc.ID,
			&sc.Student.ID, &sc.Student.Name, &sc.Student.GPA,
			&sc.Course.ID, &sc.Course.Name, &sc.Course.Description,
		)
		return sc, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to collect student courses: %w", err)
	}

	r.ql.observe(findAllStudentCoursesQuery, start, len(studentCourses))

	return studentCourses, nil
}
