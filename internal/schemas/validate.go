// Package schemas provides JSON Schema validation functionality for structured data artifacts.
package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/jonathan/resume-structurer/internal/types"
	schemafiles "github.com/jonathan/resume-structurer/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
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
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	compiledMu sync.Mutex
	compiled   = map[string]*gojsonschema.Schema{}
)

// embeddedSchema compiles an embedded schema once and caches it.
func embeddedSchema(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if schema, ok := compiled[name]; ok {
		return schema, nil
	}

	data, err := schemafiles.Read(name)
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "embedded schema not found", Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: name, Message: "failed to compile schema", Cause: err}
	}

	compiled[name] = schema
	return schema, nil
}

// ValidateBytes validates JSON content against one of the embedded schemas.
func ValidateBytes(schemaName string, data []byte) error {
	schema, err := embeddedSchema(schemaName)
	if err != nil {
		return err
	}
	return validateWith(schema, schemaName, data)
}

// ValidateDocument validates an in-memory document against the embedded
// ResumeDocument schema.
func ValidateDocument(doc types.ResumeDocument) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}
	return ValidateBytes(schemafiles.ResumeDocument, data)
}

// ValidateResumeFile validates a JSON file against the embedded ResumeDocument schema.
func ValidateResumeFile(path string) error {
	data, err := readJSONFile(path)
	if err != nil {
		return err
	}
	return ValidateBytes(schemafiles.ResumeDocument, data)
}

// ValidateJSON validates a JSON file against a schema file on disk, for
// callers that extend the document with fields of their own.
func ValidateJSON(schemaPath, jsonPath string) error {
	raw, err := os.ReadFile(schemaPath)
	if err != nil {
		message := "failed to read schema file"
		if errors.Is(err, fs.ErrNotExist) {
			message = "schema file not found"
		}
		return &SchemaLoadError{Path: schemaPath, Message: message, Cause: err}
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return &SchemaLoadError{Path: schemaPath, Message: "failed to compile schema", Cause: err}
	}

	data, err := readJSONFile(jsonPath)
	if err != nil {
		return err
	}
	return validateWith(schema, schemaPath, data)
}

func readJSONFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("JSON file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}
	return data, nil
}

func validateWith(schema *gojsonschema.Schema, schemaName string, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "document could not be loaded", Cause: err}
	}
	return resultError(result)
}

// resultError converts a failed result into a *ValidationError, or nil when valid.
func resultError(result *gojsonschema.Result) error {
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
