package model

// Student is a student record with its grade point average.
type Student struct {
	ID   int64   `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	GPA  float64 `json:"gpa" db:"gpa"`
}
