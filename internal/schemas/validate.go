// Package schemas validates profile documents against JSON Schema.
package schemas

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed profile.schema.json
var profileSchema []byte

// DefaultProfileSchema returns the built-in permissive profile schema.
func DefaultProfileSchema() []byte {
	out := make([]byte, len(profileSchema))
	copy(out, profileSchema)
	return out
}

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
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

// ValidateProfile checks a profile against the built-in schema.
func ValidateProfile(doc map[string]any) error {
	return validate("(built-in profile schema)", gojsonschema.NewBytesLoader(profileSchema), doc)
}

// ValidateProfileWithSchema checks a profile against the JSON Schema file at schemaPath.
func ValidateProfileWithSchema(schemaPath string, doc map[string]any) error {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	if _, err := os.Stat(absPath); errors.Is(err, fs.ErrNotExist) {
		return &SchemaLoadError{Path: absPath, Message: "schema file not found"}
	}
	return validate(absPath, gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(absPath)), doc)
}

func validate(schemaName string, schemaLoader gojsonschema.JSONLoader, doc map[string]any) error {
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
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

	return validationErr
}
