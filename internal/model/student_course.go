package model

// Course is an opaque course record attached to an enrollment.
type Course struct {
	ID          int64  `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}

// StudentCourse is one enrollment: exactly one Student in one Course.
// A student may have any number of enrollments.
type StudentCourse struct {
	ID      int64   `json:"id" db:"id"`
	Student Student `json:"student"`
	Course  Course  `json:"course"`
}
