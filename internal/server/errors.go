// Package server provides the HTTP REST API for resume building and
// application tracking.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/matching"
	"github.com/jonathan/resume-forge/internal/rendering"
	"github.com/jonathan/resume-forge/internal/sections"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		notFound       *sections.ErrNotFound
		duplicate      *sections.ErrDuplicateVersion
		conflict       *sections.ErrConflict
		invalidType    *sections.ErrInvalidType
		invalidContent *sections.ErrInvalidContent
		versionErr     *sections.ErrInvalidVersion
		configErr      *matching.ErrConfig
		extraction     *matching.ErrExtractionUnavailable
		render         *rendering.RenderError
		tmplErr        *rendering.TemplateError
	)

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &duplicate), errors.As(err, &conflict):
		return http.StatusConflict
	case errors.As(err, &invalidType), errors.As(err, &invalidContent),
		errors.As(err, &versionErr), errors.As(err, &configErr):
		return http.StatusBadRequest
	case errors.As(err, &extraction), errors.Is(err, llm.ErrUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &render), errors.As(err, &tmplErr):
		return http.StatusInternalServerError
	}

	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
