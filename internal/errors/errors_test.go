package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	apperrors "github.com/vytor/eduplay/internal/errors"
)

func TestAppError_Format(t *testing.T) {
	err := apperrors.NewNotFoundError("user", 7)
	assert.Equal(t, "NOT_FOUND: user not found: 7", err.Error())
	assert.Equal(t, http.StatusNotFound, err.Status)

	cause := stderrors.New("disk full")
	internal := apperrors.NewInternalError(cause)
	assert.Contains(t, internal.Error(), "disk full")
	assert.ErrorIs(t, internal, cause)
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", apperrors.NewInvalidCredentialsError())

	assert.True(t, apperrors.HasCode(wrapped, apperrors.ErrCodeInvalidCredentials))
	assert.False(t, apperrors.HasCode(wrapped, apperrors.ErrCodeNotFound))
	assert.False(t, apperrors.HasCode(stderrors.New("plain"), apperrors.ErrCodeInternal))
}
