// Package types defines the request and response bodies of the career
// guidance API, with their validation rules.
package types

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validator returns the shared validator instance.
func Validator() *validator.Validate {
	return validate
}

// RegisterStudentRequest represents the request to create a student account.
type RegisterStudentRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=120"`
	Email     string  `json:"email" validate:"required,email"`
	Password  string  `json:"password" validate:"required,min=8,max=64"`
	Age       *int32  `json:"age,omitempty" validate:"omitempty,min=5,max=120"`
	ClassName *string `json:"class_name,omitempty" validate:"omitempty,max=50"`
	City      *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// LoginRequest represents the login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Student is the public view of a student account.
type Student struct {
	ID        int64     `json:"student_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       *int32    `json:"age"`
	ClassName *string   `json:"class_name"`
	City      *string   `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginResponse is returned by register and login.
type LoginResponse struct {
	Student *Student `json:"student"`
	Token   string   `json:"token"`
}

// Validate validates the RegisterStudentRequest.
func (r *RegisterStudentRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the LoginRequest.
func (r *LoginRequest) Validate() error {
	return validate.Struct(r)
}
