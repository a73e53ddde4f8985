package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsWrapsUnknownErrors(t *testing.T) {
	raw := errors.New("boom")
	e := As(raw)
	require.NotNil(t, e)
	assert.Equal(t, CodeInternalError, e.Code)
	assert.Equal(t, http.StatusInternalServerError, e.Status)
	assert.ErrorIs(t, e, raw)
}

func TestAsFindsWrappedAppError(t *testing.T) {
	nf := NotFound("resume")
	wrapped := fmt.Errorf("usecase: %w", nf)

	e := As(wrapped)
	assert.Same(t, nf, e)
	assert.Equal(t, "resume not found", e.Message)
	assert.True(t, Is(wrapped, CodeNotFound))
	assert.False(t, Is(wrapped, CodeConflict))
}

func TestValidationDetails(t *testing.T) {
	e := Validation("invalid resume", []string{"a", "b"})
	assert.Equal(t, http.StatusBadRequest, e.Status)
	assert.Equal(t, []string{"a", "b"}, e.Details["problems"])

	assert.Nil(t, Validation("x", nil).Details)
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "[BAD_REQUEST] nope", BadRequest("nope").Error())
	assert.Equal(t, "[UNAUTHORIZED] unauthorized: expired", Unauthorized("").WithError(errors.New("expired")).Error())
}
