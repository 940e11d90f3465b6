package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deppfellow/student-service/internal/model"
	"github.com/jackc/pgx/v5"
)

const (
	findAllStudentsQuery = `
		SELECT id, name, gpa
		FROM students
		ORDER BY id ASC`

	// Equal GPAs resolve to the lowest id.
	findTopStudentByGpaQuery = `
		SELECT id, name, gpa
		FROM students
		ORDER BY gpa DESC, id ASC
		LIMIT 1`
)

type StudentRepository struct {
	db DBTX
	ql queryLogger
}

// NewStudentRepository creates a StudentRepository without slow query logging.
func NewStudentRepository(db DBTX) *StudentRepository {
	return newStudentRepository(db, queryLogger{})
}

func newStudentRepository(db DBTX, ql queryLogger) *StudentRepository {
	return &StudentRepository{db: db, ql: ql}
}

// FindAll returns every student ordered by id.
func (r *StudentRepository) FindAll(ctx context.Context) ([]model.Student, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, findAllStudentsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query students: %w", err)
	}

	students, err := pgx.CollectRows(rows, scanStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to collect students: %w", err)
	}

	r.ql.observe(findAllStudentsQuery, start, len(students))

	return students, nil
}

// FindTopByOrderByGpaDesc returns the student with the highest GPA,
// or nil when the table is empty.
func (r *StudentRepository) FindTopByOrderByGpaDesc(ctx context.Context) (*model.Student, error) {
	start := time.Now()

	rows, err := r.db.Query(ctx, findTopStudentByGpaQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query top student: %w", err)
	}

	student, err := pgx.CollectOneRow(rows, scanStudent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.ql.observe(findTopStudentByGpaQuery, start, 0)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to collect top student: %w", err)
	}

	r.ql.observe(findTopStudentByGpaQuery, start, 1)

	return &student, nil
}

func scanStudent(row pgx.CollectableRow) (model.Student, error) {
	var s model.Student
	err := row.Scan(&s.ID, &s.Name, &s.GPA)
	return s, err
}
