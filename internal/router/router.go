// Package router builds the echo instance: global middleware in order,
// the system routes and the versioned API groups.
package router

import (
	"net/http"

	"github.com/deppfellow/student-service/internal/handler"
	"github.com/deppfellow/student-service/internal/middleware"
	"github.com/deppfellow/student-service/internal/server"
	"github.com/labstack/echo/v4"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	// Rate limiting runs after the request id and logger are attached, so
	// rejected requests are still traceable.
	router.Use(
		middleware.RequestID(),
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.RateLimit.Limit(),
		middlewares.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	v1 := router.Group("/api/v1")
	registerStudentRoutes(v1, h)

	router.RouteNotFound("/*", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound)
	})

	return router
}
