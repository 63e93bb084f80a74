package tool

import (
	"encoding/json"

	"github.com/xeipuuv/gojsonschema"
)

// Schema wraps a JSON Schema used to validate tool arguments and results.
type Schema struct {
	raw json.RawMessage
}

// NewSchema creates a schema from raw JSON.
func NewSchema(raw json.RawMessage) Schema {
	return Schema{raw: raw}
}

// EmptySchema returns a schema that accepts any input.
func EmptySchema() Schema {
	return Schema{raw: json.RawMessage(`{}`)}
}

// ObjectSchema returns a schema for an object with the given properties.
func ObjectSchema(properties map[string]json.RawMessage, required []string) Schema {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	raw, _ := json.Marshal(schema)
	return Schema{raw: raw}
}

// Raw returns the underlying JSON schema.
func (s Schema) Raw() json.RawMessage {
	return s.raw
}

// IsEmpty returns true if the schema is empty or nil.
func (s Schema) IsEmpty() bool {
	return len(s.raw) == 0 || string(s.raw) == "{}" || string(s.raw) == "null"
}

// Validate checks data against the schema. On violation it returns a
// *ValidationError listing every violated field, not just the first.
func (s Schema) Validate(data json.RawMessage) error {
	if s.IsEmpty() {
		return nil
	}
	if len(data) == 0 {
		data = json.RawMessage(`null`)
	}
	if !json.Valid(data) {
		return &ValidationError{
			Violations: []Violation{{Field: "(document)", Description: "arguments are not valid JSON"}},
		}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(s.raw),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return &ValidationError{
			Violations: []Violation{{Field: "(schema)", Description: err.Error()}},
		}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{}
	for _, re := range result.Errors() {
		verr.Violations = append(verr.Violations, Violation{
			Field:       re.Field(),
			Description: re.Description(),
		})
	}
	return verr
}

// MarshalJSON implements json.Marshaler.
func (s Schema) MarshalJSON() ([]byte, error) {
	if s.raw == nil {
		return []byte("{}"), nil
	}
	return s.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	s.raw = data
	return nil
}
