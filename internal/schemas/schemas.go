// Package schemas validates output documents against their JSON Schemas
// before they are written or returned.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationError carries per-field schema violations.
type ValidationError struct {
	Errors []FieldError
}

// FieldError is a single violation at a specific field path.
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

// ValidateOutline checks an outline document against its schema.
func ValidateOutline(data []byte) error {
	return validate(outlineSchema, data)
}

// ValidateRelevance checks a relevance report against its schema.
func ValidateRelevance(data []byte) error {
	return validate(relevanceSchema, data)
}

func validate(schema string, data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

const outlineSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["title", "outline"],
  "properties": {
    "title": {"type": "string"},
    "outline": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["level", "text", "page"],
        "properties": {
          "level": {"type": "string", "enum": ["H1", "H2", "H3"]},
          "text": {"type": "string", "minLength": 1},
          "page": {"type": "integer", "minimum": 1}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

const relevanceSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["metadata", "extracted_sections", "subsection_analysis"],
  "properties": {
    "metadata": {
      "type": "object",
      "required": ["input_documents", "persona", "job_to_be_done", "processing_timestamp"],
      "properties": {
        "input_documents": {"type": "array", "items": {"type": "string"}},
        "persona": {"type": "string", "minLength": 1},
        "job_to_be_done": {"type": "string", "minLength": 1},
        "processing_timestamp": {"type": "string"}
      },
      "additionalProperties": false
    },
    "extracted_sections": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["document", "section_title", "importance_rank", "page_number"],
        "properties": {
          "document": {"type": "string"},
          "section_title": {"type": "string"},
          "importance_rank": {"type": "integer", "minimum": 1},
          "page_number": {"type": "integer", "minimum": 1}
        },
        "additionalProperties": false
      }
    },
    "subsection_analysis": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["document", "refined_text", "page_number"],
        "properties": {
          "document": {"type": "string"},
          "refined_text": {"type": "string"},
          "page_number": {"type": "integer", "minimum": 1}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`
