// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives requests from the handler, performs
// business operations, and calls repository methods to read
// the data.
package service
