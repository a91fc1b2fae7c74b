package validator

import (
	"testing"

	domainerrors "backoffice/internal/domain/errors"
	"backoffice/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notesRequest struct {
	Notes string `json:"notes" validate:"required"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&notesRequest{Notes: "paid in cash"}))

	err := v.Validate(&notesRequest{Email: "not-an-email"})
	require.Error(t, err)

	appErr, ok := errors.AsType[domainerrors.AppError](err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_FAILED", appErr.ErrorCode())
	assert.Contains(t, appErr.Details(), "notes failed required")
	assert.Contains(t, appErr.Details(), "email failed email")
}
