package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CourseRequest creates a course.
type CourseRequest struct {
	CourseName  string `json:"course_name" validate:"required,max=200"`
	Stream      string `json:"stream" validate:"required,max=100"`
	Description string `json:"description" validate:"max=5000"`
}

// Validate validates the CourseRequest.
func (r *CourseRequest) Validate() error {
	return validate.Struct(r)
}

// CareerRequest creates a career.
type CareerRequest struct {
	CareerName         string   `json:"career_name" validate:"required,max=200"`
	Sector             string   `json:"sector" validate:"required,max=200"`
	HigherStudyOptions []string `json:"higher_study_options" validate:"dive,required"`
	ExamOptions        []string `json:"exam_options" validate:"dive,required"`
}

// Validate validates the CareerRequest.
func (r *CareerRequest) Validate() error {
	return validate.Struct(r)
}

// DegreeInfo describes a degree offered by a college.
type DegreeInfo struct {
	DegreeName   string  `json:"degree_name" validate:"required"`
	Cutoff       *int    `json:"cutoff,omitempty" validate:"omitempty,min=0"`
	CutoffStream *string `json:"cutoff_stream,omitempty"`
}

// CollegeRequest creates a college.
type CollegeRequest struct {
	CollegeName string       `json:"college_name" validate:"required,max=300"`
	Location    string       `json:"location" validate:"required"`
	District    string       `json:"district" validate:"required"`
	State       string       `json:"state" validate:"required"`
	Facilities  []string     `json:"facilities" validate:"dive,required"`
	Degrees     []DegreeInfo `json:"degrees" validate:"dive"`
}

// Validate validates the CollegeRequest.
func (r *CollegeRequest) Validate() error {
	return validate.Struct(r)
}

// ScholarshipRequest creates a scholarship.
type ScholarshipRequest struct {
	ScholarshipName   string   `json:"scholarship_name" validate:"required,max=300"`
	StartingDate      Date     `json:"starting_date"`
	EndingDate        Date     `json:"ending_date"`
	Amount            float64  `json:"amount" validate:"gte=0"`
	Eligibility       []string `json:"eligibility" validate:"dive,required"`
	RequiredDocuments []string `json:"required_documents" validate:"dive,required"`
}

// Validate validates the ScholarshipRequest. Dates are required and the
// window may not end before it starts.
func (r *ScholarshipRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.StartingDate.IsZero() {
		return &FieldError{Field: "starting_date", Message: "starting_date is required"}
	}
	if r.EndingDate.IsZero() {
		return &FieldError{Field: "ending_date", Message: "ending_date is required"}
	}
	if r.EndingDate.Before(r.StartingDate.Time) {
		return &FieldError{Field: "ending_date", Message: "ending_date must not be before starting_date"}
	}
	return nil
}

// FieldError is a validation failure detected outside struct tags.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// ValidationMessages flattens a validation error into per-field messages.
func ValidationMessages(err error) map[string]string {
	out := make(map[string]string)
	switch e := err.(type) {
	case validator.ValidationErrors:
		for _, fe := range e {
			out[fe.Field()] = describe(fe)
		}
	case *FieldError:
		out[e.Field] = e.Message
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
