package handler

import (
	"github.com/deppfellow/student-service/internal/server"
	"github.com/deppfellow/student-service/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Student *StudentHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
		Student: NewStudentHandler(s, services.Student, services.Job),
	}
}
