package advisor

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildQuerySchema returns the JSON Schema (draft 2020-12 subset) for the
// advisor request payload. Every expense must carry the fields the analysis
// depends on; partial rows are rejected before any processing starts.
func BuildQuerySchema() map[string]any {
	expense := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"user_id":     map[string]any{"type": "string", "minLength": 1},
			"amount":      map[string]any{"type": "number"},
			"category":    map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"date":        map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"user_id", "amount", "category", "description", "date"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"expenses": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    expense,
			},
		},
		"required": []string{"question", "expenses"},
	}
}

// ValidateAgainstSchema validates "data" against "schemaMap".
func ValidateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
