// Package lib groups supporting libraries that are not part of
// the request path, such as the background job worker.
package lib
