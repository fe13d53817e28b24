package db

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/Meet-08/SIH2025-Prototype/internal/types"
)

// Student is a registered student account
type Student struct {
	ID           int64     `json:"student_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	Age          *int32    `json:"age"`
	ClassName    *string   `json:"class_name"`
	City         *string   `json:"city"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Course is an academic course within a stream
type Course struct {
	ID          int64     `json:"course_id"`
	CourseName  string    `json:"course_name"`
	Stream      string    `json:"stream"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Career is a career path, linked to the courses leading to it
type Career struct {
	ID                 int64       `json:"career_id"`
	CareerName         string      `json:"career_name"`
	Sector             string      `json:"sector"`
	HigherStudyOptions StringArray `json:"higher_study_options"`
	ExamOptions        StringArray `json:"exam_options"`
	Courses            []Course    `json:"courses"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// Degree is a degree offered by a college, with an optional admission cutoff
type Degree struct {
	DegreeName   string  `json:"degree_name"`
	Cutoff       *int    `json:"cutoff"`
	CutoffStream *string `json:"cutoff_stream"`
}

// College is a higher-education institution
type College struct {
	ID          int64       `json:"college_id"`
	CollegeName string      `json:"college_name"`
	Location    string      `json:"location"`
	District    string      `json:"district"`
	State       string      `json:"state"`
	Facilities  StringArray `json:"facilities"`
	Degrees     Degrees     `json:"degrees"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CollegeFilter narrows a college listing. Empty fields are ignored.
type CollegeFilter struct {
	City  string
	State string
}

// Scholarship is a funding opportunity with an application window
type Scholarship struct {
	ID                int64       `json:"scholarship_id"`
	ScholarshipName   string      `json:"scholarship_name"`
	StartingDate      types.Date  `json:"starting_date"`
	EndingDate        types.Date  `json:"ending_date"`
	Amount            float64     `json:"amount"`
	Eligibility       StringArray `json:"eligibility"`
	RequiredDocuments StringArray `json:"required_documents"`
}

// ScholarshipFilter narrows a scholarship listing. Zero fields are ignored.
type ScholarshipFilter struct {
	Eligibility string
	StartAfter  *types.Date
	EndBefore   *types.Date
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	out := []string{}
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	*a = out
	return nil
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(a))
}

// Degrees handles the JSONB degree list of a college
type Degrees []Degree

// Scan implements the Scanner interface for Degrees
func (d *Degrees) Scan(src interface{}) error {
	out := []Degree{}
	if err := scanJSON(src, &out); err != nil {
		return err
	}
	*d = out
	return nil
}

// Value implements the Valuer interface for Degrees
func (d Degrees) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Degree(d))
}

// scanJSON decodes a JSONB column delivered as bytes or text. NULL leaves dst untouched.
func scanJSON(src interface{}, dst any) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("cannot scan %T into JSON column", src)
	}
}
