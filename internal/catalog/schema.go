package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://knowduel-catalog.json"

// fileSchema is the JSON schema every catalog file must satisfy before
// it is decoded.
var fileSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"categories": map[string]any{
			"type":  "array",
			"items": categorySchema,
		},
	},
	"required": []any{"categories"},
}

var categorySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name": map[string]any{"type": "string", "minLength": 1},
		"topics": map[string]any{
			"type":  "array",
			"items": topicSchema,
		},
	},
	"required":             []any{"name", "topics"},
	"additionalProperties": false,
}

var topicSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"topic": map[string]any{"type": "string", "minLength": 1},
		"degrees": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"degree":    map[string]any{"type": "integer", "minimum": 1},
					"questions": map[string]any{"type": "array", "items": questionSchema},
				},
				"required":             []any{"degree", "questions"},
				"additionalProperties": false,
			},
		},
	},
	"required":             []any{"topic", "degrees"},
	"additionalProperties": false,
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"kind": map[string]any{
			"type": "string",
			"enum": []any{string(KindMultipleChoice), string(KindFreeText)},
		},
		"prompt":  map[string]any{"type": "string", "minLength": 1},
		"answers": map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "minItems": 1},
		"choices": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
	},
	"required":             []any{"kind", "prompt", "answers"},
	"additionalProperties": false,
	"if": map[string]any{
		"properties": map[string]any{"kind": map[string]any{"const": string(KindMultipleChoice)}},
	},
	"then": map[string]any{
		"properties": map[string]any{"choices": map[string]any{"minItems": 2}},
		"required":   []any{"choices"},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants plain decoded JSON, not Go literals.
		var def any
		def, compileErr = roundTripJSON(fileSchema)
		if compileErr != nil {
			return
		}
		c := jsonschema.NewCompiler()
		if compileErr = c.AddResource(schemaURL, def); compileErr != nil {
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// ValidateDocument checks a decoded catalog document (as produced by
// yaml or json unmarshalling into any) against the catalog schema.
func ValidateDocument(doc any) error {
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	normalized, err := roundTripJSON(doc)
	if err != nil {
		return fmt.Errorf("normalize document: %w", err)
	}
	if err := sch.Validate(normalized); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func roundTripJSON(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
