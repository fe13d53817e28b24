// Package schemas validates catalog seed files against embedded JSON Schemas.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed seed/*.schema.json
var seedSchemas embed.FS

// Dataset names a seedable catalog collection.
type Dataset string

// Seedable datasets.
const (
	Colleges     Dataset = "colleges"
	Scholarships Dataset = "scholarships"
	Courses      Dataset = "courses"
	Careers      Dataset = "careers"
)

// Datasets returns every seedable dataset in load order. Courses precede
// careers so career seeds can link courses by name.
func Datasets() []Dataset {
	return []Dataset{Colleges, Scholarships, Courses, Careers}
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Dataset Dataset
	Errors  []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	if ve.Dataset != "" {
		sb.WriteString(fmt.Sprintf("%s validation failed:\n", ve.Dataset))
	} else {
		sb.WriteString("validation failed:\n")
	}
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Schema returns the embedded JSON Schema for dataset.
func Schema(dataset Dataset) ([]byte, error) {
	path := "seed/" + string(dataset) + ".schema.json"
	data, err := seedSchemas.ReadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "unknown dataset", Cause: err}
	}
	return data, nil
}

// ValidateSeed validates a seed document against the schema of dataset.
func ValidateSeed(dataset Dataset, document []byte) error {
	schema, err := Schema(dataset)
	if err != nil {
		return err
	}
	err = validate(gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document), string(dataset))
	if ve, ok := err.(*ValidationError); ok {
		ve.Dataset = dataset
	}
	return err
}

// ValidateSeedFile reads path and validates it against the schema of dataset.
// It returns the raw document so callers decode exactly what was validated.
func ValidateSeedFile(dataset Dataset, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("seed file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	if err := ValidateSeed(dataset, data); err != nil {
		return nil, err
	}
	return data, nil
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate(gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent), "(string schema)")
}

func validate(schemaLoader, documentLoader gojsonschema.JSONLoader, schemaName string) error {
	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	sort.SliceStable(validationErr.Errors, func(i, j int) bool {
		return validationErr.Errors[i].Field < validationErr.Errors[j].Field
	})

	return validationErr
}
