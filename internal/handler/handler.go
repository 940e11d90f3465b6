// Package handler is the HTTP layer. Handlers bind and validate requests
// through the validation package, call the service layer and shape the
// JSON responses.
package handler
