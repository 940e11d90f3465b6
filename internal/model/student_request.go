package model

import "github.com/deppfellow/student-service/internal/validation"

type ListStudentCoursesRequest struct{}

func (r *ListStudentCoursesRequest) Validate() error {
	return validation.Struct(r)
}

type HighestGpaRequest struct{}

func (r *HighestGpaRequest) Validate() error {
	return validation.Struct(r)
}

type StudentNamesRequest struct{}

func (r *StudentNamesRequest) Validate() error {
	return validation.Struct(r)
}

// StudentNamesResponse wraps the joined names so the body stays a JSON object.
type StudentNamesResponse struct {
	Names string `json:"names"`
}

// RosterDigestRequest optionally delays the digest by up to an hour.
type RosterDigestRequest struct {
	DelaySeconds int `json:"delay_seconds" validate:"min=0,max=3600"`
}

func (r *RosterDigestRequest) Validate() error {
	return validation.Struct(r)
}

type RosterDigestResponse struct {
	TaskID string `json:"task_id"`
}
