// Package errs defines the error shapes returned to API clients.
//
// Every failure that leaves the HTTP layer is rendered as an HTTPError so
// clients receive consistent, machine-readable bodies:
//
//	{ "code": "NOT_FOUND", "message": "Student not found", "status": 404, ... }
package errs
