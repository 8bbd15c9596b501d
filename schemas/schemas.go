// Package schemas provides embedded JSON Schema documents for the engine's
// wire inputs and validation of JSON payloads against them.
package schemas

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFS embed.FS

// Schema document names.
const (
	RubricSchema          = "rubric.schema.json"
	ExtractedScoresSchema = "extracted_scores.schema.json"
	RawAnnotationsSchema  = "raw_annotations.schema.json"
)

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents a failure loading or parsing a schema document
// itself, as opposed to a payload failing validation.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Get returns the raw content of an embedded schema document.
func Get(name string) ([]byte, error) {
	data, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema not embedded", Cause: err}
	}
	return data, nil
}

// Validate validates a JSON payload against a named embedded schema. A
// payload that does not conform returns a *ValidationError; problems with the
// schema itself return a *SchemaLoadError.
func Validate(name string, document []byte) error {
	schemaContent, err := Get(name)
	if err != nil {
		return err
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaContent)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "schema validation failed during load", Cause: err}
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
	return validationErr
}
