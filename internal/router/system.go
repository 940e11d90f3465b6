package router

import (
	"github.com/deppfellow/student-service/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes mounts the health check and the API docs.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
