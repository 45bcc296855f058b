package core

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrPermissionDenied is returned when the acting user has no zone link to
	// the domain an operation targets.
	ErrPermissionDenied = errors.New("you do not have permission to perform this action")

	// ErrNotFound is returned by read paths when the requested entity does not exist.
	ErrNotFound = errors.New("not found")
)

// uniqueViolation is the Postgres SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// ValidationError reports a request that cannot be applied as submitted:
// a missing or malformed field, an unknown domain reference or a uniqueness
// conflict. Field names the offending input field when there is one.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func requiredField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: "this field is required"}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
