// Package schemas provides JSON Schema validation for structured responses
// returned by the delegated scoring backend.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed match_response.schema.json
var matchResponseSchema []byte

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("response validation failed:")
	for _, fe := range ve.Errors {
		sb.WriteString("\n  ")
		if fe.Field != "" {
			sb.WriteString(fe.Field)
			sb.WriteString(": ")
		}
		sb.WriteString(fe.Message)
	}
	return sb.String()
}

// ValidateMatchResponse checks a raw delegated-scoring response document
// against the embedded schema. A nil error means the document is structurally
// sound; fields may still be absent and default to zero values downstream.
func ValidateMatchResponse(doc []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(matchResponseSchema)
	docLoader := gojsonschema.NewBytesLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("failed to validate response: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, e := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   e.Field(),
			Message: e.Description(),
		})
	}
	return ve
}
