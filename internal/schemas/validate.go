// Package schemas provides JSON Schema validation for resume documents and other JSON files.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	embedded "github.com/jonathan/resume-builder/schemas"
	"github.com/jonathan/resume-builder/internal/types"
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

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	// Resolve absolute paths to handle relative paths correctly
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}

	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}

	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaAbsPath)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + jsonAbsPath)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaAbsPath,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return resultError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}
	return resultError(result)
}

var (
	documentSchemaOnce sync.Once
	documentSchema     *gojsonschema.Schema
	documentSchemaErr  error
)

func loadDocumentSchema() (*gojsonschema.Schema, error) {
	documentSchemaOnce.Do(func() {
		data, err := embedded.FS.ReadFile(embedded.ResumeDocument)
		if err != nil {
			documentSchemaErr = &SchemaLoadError{Path: embedded.ResumeDocument, Message: "embedded schema missing", Cause: err}
			return
		}
		documentSchema, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			documentSchemaErr = &SchemaLoadError{Path: embedded.ResumeDocument, Message: "invalid schema", Cause: err}
		}
	})
	return documentSchema, documentSchemaErr
}

// ValidateDocument checks raw JSON against the embedded resume document schema
// and that entry ids are unique within each collection.
func ValidateDocument(data []byte) error {
	schema, err := loadDocumentSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to parse document JSON: %w", err)
	}
	if err := resultError(result); err != nil {
		return err
	}

	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse document JSON: %w", err)
	}
	if errs := duplicateIDs(&doc); len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// DecodeDocument validates data and decodes it into a structurally total document.
// A missing template falls back to the default.
func DecodeDocument(data []byte) (*types.ResumeDocument, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	var doc types.ResumeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document JSON: %w", err)
	}
	return doc.Normalize(), nil
}

// LoadDocument reads and decodes a document file.
func LoadDocument(path string) (*types.ResumeDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	doc, err := DecodeDocument(data)
	if err != nil {
		return nil, fmt.Errorf("invalid document %s: %w", path, err)
	}
	return doc, nil
}

func duplicateIDs(doc *types.ResumeDocument) []FieldError {
	var errs []FieldError
	check := func(field string, ids []string) {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				errs = append(errs, FieldError{Field: field, Message: fmt.Sprintf("duplicate id %q", id)})
			}
			seen[id] = true
		}
	}

	ids := make([]string, 0, len(doc.Education))
	for _, e := range doc.Education {
		ids = append(ids, e.ID)
	}
	check("education", ids)

	ids = ids[:0]
	for _, e := range doc.Experience {
		ids = append(ids, e.ID)
	}
	check("experience", ids)

	ids = ids[:0]
	for _, p := range doc.Projects {
		ids = append(ids, p.ID)
	}
	check("projects", ids)

	ids = ids[:0]
	for _, c := range doc.SkillCategories {
		ids = append(ids, c.ID)
	}
	check("skill_categories", ids)

	for i, c := range doc.SkillCategories {
		skillIDs := make([]string, 0, len(c.Skills))
		for _, s := range c.Skills {
			skillIDs = append(skillIDs, s.ID)
		}
		check(fmt.Sprintf("skill_categories.%d.skills", i), skillIDs)
	}
	return errs
}

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
