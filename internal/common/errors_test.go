package common

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"not found", ErrNotFound, http.StatusNotFound},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized},
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"invalid token", ErrInvalidToken, http.StatusForbidden},
		{"bad request", ErrBadRequest, http.StatusBadRequest},
		{"conflict", ErrConflict, http.StatusConflict},
		{"internal", ErrInternalServer, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", Errorf("user %q already exists: %w", "a", ErrConflict), http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatusFromError(tt.err))
		})
	}
}
