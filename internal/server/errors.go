package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/Meet-08/SIH2025-Prototype/internal/recommend"
	"github.com/Meet-08/SIH2025-Prototype/internal/types"
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

// ErrStudentNotFound indicates student was not found
type ErrStudentNotFound struct {
	StudentID int64
}

func (e *ErrStudentNotFound) Error() string {
	return fmt.Sprintf("student not found: %d", e.StudentID)
}

// ErrNotFound indicates a catalog record was not found
type ErrNotFound struct {
	Resource string
	Key      string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
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
		emailExists  *ErrEmailAlreadyExists
		invalidCreds *ErrInvalidCredentials
		studentNF    *ErrStudentNotFound
		notFound     *ErrNotFound
		validation   *ErrValidation
		answerErr    *recommend.ValidationError
		fieldErr     *types.FieldError
		tagErrs      validator.ValidationErrors
		explainErr   *recommend.ExplanationError
	)

	switch {
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &invalidCreds):
		return http.StatusUnauthorized
	case errors.As(err, &studentNF), errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &validation), errors.As(err, &answerErr),
		errors.As(err, &fieldErr), errors.As(err, &tagErrs),
		errors.Is(err, bcrypt.ErrPasswordTooLong):
		return http.StatusBadRequest
	case errors.Is(err, recommend.ErrExplainerUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &explainErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// errorMessage returns the client-facing message for err. Server faults are
// not described to the client.
func errorMessage(err error, status int) string {
	switch status {
	case http.StatusInternalServerError:
		return "internal server error"
	case http.StatusBadGateway:
		return "failed to generate explanation"
	case http.StatusServiceUnavailable:
		return "explanation service temporarily unavailable"
	}

	var tagErrs validator.ValidationErrors
	if errors.As(err, &tagErrs) && len(tagErrs) > 0 {
		// Report the first failing field
		for _, msg := range types.ValidationMessages(tagErrs[:1]) {
			return "validation error: " + msg
		}
	}
	var fieldErr *types.FieldError
	if errors.As(err, &fieldErr) {
		return "validation error: " + fieldErr.Message
	}
	return err.Error()
}
