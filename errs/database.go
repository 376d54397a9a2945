package errs

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDuplicate          = errors.New("already exists")
)

// NewNotFound builds the 404 for a missing entity, e.g. NewNotFound("Profile")
// yields "Profile not found".
func NewNotFound(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        fmt.Errorf("%s %w", entity, ErrNotFound),
	}
}

// NewDatabaseError turns a storage fault into a 500. The client only sees
// "Failed to <operation> <entity>"; the cause is kept for the server log.
// A not-found cause is reported as a 404 instead.
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	if IsNotFound(cause) {
		notFound := NewNotFound(entity)
		notFound.Cause = cause
		return notFound
	}

	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        withSentinel{fmt.Sprintf("Failed to %s %s", operation, entity), ErrDatabaseQuery},
		Cause:      cause,
	}
}

// NewDatabaseUnavailable is used by the health check when the store cannot be reached
func NewDatabaseUnavailable(cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrDatabaseConnection,
		Cause:      cause,
	}
}
