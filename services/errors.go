package services

import "fmt"

// ValidationError reports a payload that failed a validation rule. It maps
// to a 400 response.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// NotFoundError reports an entity that does not exist. It maps to a 404
// response.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Resource, e.ID)
}

// ConflictError reports a uniqueness clash, currently only duplicate
// category names. It maps to a 400 response.
type ConflictError struct {
	Resource string
	Name     string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with name '%s' already exists", e.Resource, e.Name)
}

// UnexpectedError wraps any failure that is not part of the expected
// taxonomy. The cause is kept for logging but never shown to callers.
type UnexpectedError struct {
	Op  string
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}
