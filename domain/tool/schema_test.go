package tool_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
)

func numbersSchema() tool.Schema {
	return tool.ObjectSchema(map[string]json.RawMessage{
		"a": json.RawMessage(`{"type": "number"}`),
		"b": json.RawMessage(`{"type": "number"}`),
	}, []string{"a", "b"})
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		schema  tool.Schema
		data    string
		wantErr bool
	}{
		{
			name:   "valid arguments",
			schema: numbersSchema(),
			data:   `{"a": 1, "b": 2}`,
		},
		{
			name:    "wrong type",
			schema:  numbersSchema(),
			data:    `{"a": "x", "b": 2}`,
			wantErr: true,
		},
		{
			name:    "missing required field",
			schema:  numbersSchema(),
			data:    `{"a": 1}`,
			wantErr: true,
		},
		{
			name:   "empty schema accepts anything",
			schema: tool.EmptySchema(),
			data:   `{"whatever": true}`,
		},
		{
			name:    "invalid JSON document",
			schema:  numbersSchema(),
			data:    `{not json`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.schema.Validate(json.RawMessage(tt.data))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, tool.ErrInvalidArgs) {
				t.Errorf("Validate() error should match ErrInvalidArgs, got %v", err)
			}
		})
	}
}

func TestSchema_ValidateReportsAllViolations(t *testing.T) {
	t.Parallel()

	err := numbersSchema().Validate(json.RawMessage(`{"a": "x"}`))
	if err == nil {
		t.Fatal("Validate() should fail")
	}

	var verr *tool.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error should be *ValidationError, got %T", err)
	}

	// Both the type violation on "a" and the missing "b" must be reported
	// in a single pass.
	if len(verr.Violations) < 2 {
		t.Errorf("Violations = %v, want both failures reported", verr.Violations)
	}

	fields := verr.Fields()
	var sawA, sawB bool
	for _, f := range fields {
		if f == "a" {
			sawA = true
		}
		// The missing-property violation is reported against the document
		// root, naming b in the description.
		if f == "b" || f == "(root)" {
			sawB = true
		}
	}
	if !sawA || !sawB {
		t.Errorf("Fields() = %v, want violations for both a and b", fields)
	}
}
