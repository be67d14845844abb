package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storerating/internal/errors"
)

func TestWithDetailsKeepsIdentity(t *testing.T) {
	err := ErrStoreNotFound.WithDetails("store 7")

	assert.True(t, errors.Is(err, ErrStoreNotFound))
	assert.False(t, errors.Is(err, ErrAccountNotFound))
	assert.Equal(t, "store 7", err.Details())
	assert.Nil(t, ErrStoreNotFound.Details())
}

func TestWrapMessageIsMatchable(t *testing.T) {
	err := ErrInvalidCredentials.WrapMessage("login failed")

	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	appErr, ok := errors.AsType[AppError](err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(
		FieldError{Field: "password", Message: "must be 8-16 characters"},
		FieldError{Field: "email", Message: "must be a valid email"},
	)

	assert.True(t, errors.Is(err, ErrValidationFailed))

	fields := ValidationFields(errors.Wrap(err, "register"))
	require.Len(t, fields, 2)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "email,password", FieldNames(fields))

	assert.Nil(t, ValidationFields(ErrForbidden))
}

func TestDatabaseExecuteErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "upsert rating")

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "upsert rating", err.Details())
}
