// Package schema enforces the output contract: every serialized record must
// match the published JSON shape before it leaves the pipeline.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// BuildRecordJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map describing the serialized NormalizedRecord. Weights are decimal
// strings; the date is RFC 3339.
func BuildRecordJSONSchema() map[string]any {
	props := map[string]any{
		"gross_weight_kg":  weightProp(),
		"tare_weight_kg":   weightProp(),
		"net_weight_kg":    weightProp(),
		"vehicle_number":   map[string]any{"type": "string", "minLength": 1, "maxLength": 32},
		"measurement_date": map[string]any{"type": "string", "format": "date-time"},
		"measurement_time": map[string]any{"type": "string", "pattern": `^\d{2}:\d{2}(:\d{2})?$`},
		"customer_name":    map[string]any{"type": "string", "minLength": 1},
		"product_name":     map[string]any{"type": "string", "minLength": 1},
		"transaction_type": map[string]any{"type": "string", "enum": []string{"입고", "출고"}},
		"measurement_id":   map[string]any{"type": "string", "minLength": 1},
		"location":         map[string]any{"type": "string", "minLength": 1},
		"raw_text":         map[string]any{"type": "string"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             []string{"raw_text"},
	}
}

func weightProp() map[string]any {
	return map[string]any{
		"type":    "string",
		"pattern": `^\d+(\.\d+)?$`, // non-negative exact decimal
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
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
