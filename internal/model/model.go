// Package model defines the entities read from the database.
//
// The persistence layer owns their lifecycle; the service layer only reads them.
package model
