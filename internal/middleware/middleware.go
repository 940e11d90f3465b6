// Package middleware holds the echo middleware shared by every route:
// rate limiting, request ids, New Relic tracing, the request-scoped
// logger, request logging and the global error handler.
package middleware
