// Package errs defines the error kinds shared by the store, the services and
// the HTTP layer. Callers wrap them with context and match with errors.Is.
package errs

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrReferenceNotFound    = errors.New("reference not found")
	ErrDuplicateName        = errors.New("duplicate name")
	ErrDuplicateAssociation = errors.New("duplicate association")
	ErrValidation           = errors.New("validation error")
	ErrHasDependents        = errors.New("has dependents")
)
