package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/matching"
	"github.com/jonathan/resume-forge/internal/rendering"
	"github.com/jonathan/resume-forge/internal/sections"
)

func TestHTTPStatus(t *testing.T) {
	addr := sections.Address{Type: "experience", Key: "acme", Flavor: "backend"}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "section not found",
			err:  &sections.ErrNotFound{Address: addr},
			want: http.StatusNotFound,
		},
		{
			name: "duplicate version",
			err:  &sections.ErrDuplicateVersion{},
			want: http.StatusConflict,
		},
		{
			name: "version conflict",
			err:  &sections.ErrConflict{},
			want: http.StatusConflict,
		},
		{
			name: "invalid section type",
			err:  &sections.ErrInvalidType{Type: "bogus"},
			want: http.StatusBadRequest,
		},
		{
			name: "invalid content",
			err:  &sections.ErrInvalidContent{Type: "experience"},
			want: http.StatusBadRequest,
		},
		{
			name: "malformed version",
			err:  &sections.ErrInvalidVersion{Version: "1.x"},
			want: http.StatusBadRequest,
		},
		{
			name: "selection config error",
			err:  &matching.ErrConfig{Type: "experience", Key: "acme"},
			want: http.StatusBadRequest,
		},
		{
			name: "extraction unavailable",
			err:  &matching.ErrExtractionUnavailable{Err: errors.New("timeout")},
			want: http.StatusServiceUnavailable,
		},
		{
			name: "model unavailable",
			err:  fmt.Errorf("%w: quota exceeded", llm.ErrUnavailable),
			want: http.StatusServiceUnavailable,
		},
		{
			name: "render failure",
			err:  &rendering.RenderError{Message: "pdflatex failed"},
			want: http.StatusInternalServerError,
		},
		{
			name: "email already registered",
			err:  &ErrEmailAlreadyExists{Email: "a@b.com"},
			want: http.StatusConflict,
		},
		{
			name: "invalid credentials",
			err:  &ErrInvalidCredentials{},
			want: http.StatusUnauthorized,
		},
		{
			name: "password mismatch",
			err:  &ErrPasswordMismatch{},
			want: http.StatusUnauthorized,
		},
		{
			name: "user not found",
			err:  &ErrUserNotFound{},
			want: http.StatusNotFound,
		},
		{
			name: "validation error",
			err:  &ErrValidation{Field: "email", Message: "required"},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatusWrappedErrors(t *testing.T) {
	// Wrapped service errors still map to their status
	err := fmt.Errorf("handler: %w", &sections.ErrConflict{})
	assert.Equal(t, http.StatusConflict, HTTPStatus(err))

	err = fmt.Errorf("handler: %w", &matching.ErrExtractionUnavailable{Err: llm.ErrUnavailable})
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}
