package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDatabaseError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

	err := NewDatabaseError("fetch", "skills", cause)

	assert.Equal(t, http.StatusInternalServerError, err.StatusCode)
	assert.Equal(t, "Failed to fetch skills", err.Error())
	assert.Contains(t, err.GetFullError(), "connection refused")
	assert.ErrorIs(t, err, ErrDatabaseQuery)
}

func TestNewDatabaseErrorNotFoundCause(t *testing.T) {
	cause := fmt.Errorf("profile repo: first: %w", ErrNotFound)

	err := NewDatabaseError("fetch", "Profile", cause)

	assert.Equal(t, http.StatusNotFound, err.StatusCode)
	assert.Equal(t, "Profile not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Profile not found -> profile repo: first: not found", err.GetFullError())
}

func TestSentinelMatching(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFound("Project")))
	assert.Equal(t, "Project not found", NewNotFound("Project").Error())

	bad := NewBadRequestError("missing projectID")
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	assert.Equal(t, "missing projectID", bad.Error())
	assert.ErrorIs(t, bad, ErrBadRequest)
	assert.False(t, IsNotFound(bad))

	invalid := NewValidationError("projectID", "too long")
	assert.Equal(t, "projectID", invalid.Field)
	assert.ErrorIs(t, invalid, ErrInvalidField)
}

func TestGetFullErrorChain(t *testing.T) {
	inner := NewInternalErrorWithCause("inner", errors.New("root cause"))
	outer := NewInternalErrorWithCause("outer", inner)

	assert.Equal(t, "outer -> inner -> root cause", outer.GetFullError())

	limited := NewRateLimitError(30)
	assert.Equal(t, http.StatusTooManyRequests, limited.StatusCode)
	assert.Equal(t, "too many requests: retry in 30 seconds", limited.GetFullError())
}
