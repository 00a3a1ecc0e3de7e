package utils

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid argument", E(CodeInvalidArgument, "Op", "bad", nil), http.StatusBadRequest},
		{"unauthorized", E(CodeUnauthorized, "Op", "no", nil), http.StatusUnauthorized},
		{"forbidden", E(CodeForbidden, "Op", "no", nil), http.StatusForbidden},
		{"not found", E(CodeNotFound, "Op", "missing", nil), http.StatusNotFound},
		{"conflict", E(CodeConflict, "Op", "raced", nil), http.StatusConflict},
		{"unavailable", E(CodeUnavailable, "Op", "down", nil), http.StatusServiceUnavailable},
		{"timeout", E(CodeTimeout, "Op", "slow", nil), http.StatusGatewayTimeout},
		{"internal", E(CodeInternal, "Op", "boom", nil), http.StatusInternalServerError},
		{"bare not found sentinel", ErrNotFound, http.StatusNotFound},
		{"bare conflict sentinel", ErrConflict, http.StatusConflict},
		{"unknown error", errors.New("mystery"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestIsCode(t *testing.T) {
	err := E(CodeConflict, "Svc.Op", "raced", ErrConflict)

	assert.True(t, IsCode(err, CodeConflict))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.False(t, IsCode(errors.New("plain"), CodeConflict))

	// codes survive wrapping
	wrapped := E(CodeInternal, "Outer.Op", "wrapped", err)
	assert.True(t, IsCode(wrapped, CodeInternal))
}

func TestAppErrorMessage(t *testing.T) {
	inner := errors.New("dial tcp: refused")
	err := E(CodeUnavailable, "JobService.Search", "provider failed", inner)

	assert.Equal(t, "JobService.Search: provider failed: dial tcp: refused", err.Error())
	assert.True(t, errors.Is(err, inner))
}
