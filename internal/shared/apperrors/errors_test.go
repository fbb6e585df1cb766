package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("bad input")))
	assert.Equal(t, KindConflict, KindOf(Conflict("seat taken")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("no booking")))
	assert.Equal(t, KindUpstream, KindOf(Upstream("gateway down", errors.New("dial tcp"))))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain error")))
}

func TestKindOf_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("handling webhook: %w", Conflict("already settled"))
	assert.Equal(t, KindConflict, KindOf(wrapped))
	assert.True(t, IsKind(wrapped, KindConflict))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err      error
		expected int
	}{
		{Validation("bad"), http.StatusBadRequest},
		{Conflict("taken"), http.StatusConflict},
		{NotFound("missing"), http.StatusNotFound},
		{Upstream("down", nil), http.StatusBadGateway},
		{Internal("boom", nil), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HTTPStatus(tt.err))
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("gateway unreachable", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "gateway unreachable")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "seat taken", Message(Conflict("seat taken")))
	assert.Equal(t, "internal server error", Message(errors.New("secret detail")))
}
