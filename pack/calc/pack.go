// Package calc provides arithmetic tools.
package calc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/dop251/goja"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
)

// New creates the calc pack.
func New() *pack.Pack {
	return pack.NewBuilder("calc").
		WithDescription("Arithmetic and expression evaluation").
		WithVersion("1.0.0").
		AddTools(
			addTool(),
			evalTool(),
		).
		Build()
}

type binaryInput struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

type numberOutput struct {
	Result float64 `json:"result"`
}

func binarySchema() tool.Schema {
	return tool.ObjectSchema(map[string]json.RawMessage{
		"a": json.RawMessage(`{"type": "number"}`),
		"b": json.RawMessage(`{"type": "number"}`),
	}, []string{"a", "b"})
}

func addTool() tool.Tool {
	return tool.NewBuilder("calculator.add").
		WithDescription("Add two numbers").
		WithInputSchema(binarySchema()).
		ReadOnly().
		Idempotent().
		Cacheable().
		WithHandler(func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in binaryInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}
			return json.Marshal(numberOutput{Result: in.A + in.B})
		}).
		MustBuild()
}

type evalInput struct {
	Expression string `json:"expression"`
}

func evalSchema() tool.Schema {
	return tool.ObjectSchema(map[string]json.RawMessage{
		"expression": json.RawMessage(`{"type": "string", "minLength": 1}`),
	}, []string{"expression"})
}

func evalTool() tool.Tool {
	return tool.NewBuilder("calculator.eval").
		WithDescription("Evaluate an arithmetic expression, e.g. \"(2+3)*4\"").
		WithInputSchema(evalSchema()).
		ReadOnly().
		Idempotent().
		Cacheable().
		WithTimeout(5).
		WithHandler(func(ctx context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in evalInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			vm := goja.New()

			// Kill the script when the call deadline hits.
			if deadline, ok := ctx.Deadline(); ok {
				timer := newInterruptTimer(vm, deadline)
				defer timer.Stop()
			}

			value, err := vm.RunString(in.Expression)
			if err != nil {
				return nil, tool.Permanent(fmt.Errorf("evaluate %q: %w", in.Expression, err))
			}

			result := value.ToFloat()
			if math.IsNaN(result) || math.IsInf(result, 0) {
				return nil, tool.Permanent(errors.New("expression did not produce a finite number"))
			}

			return json.Marshal(numberOutput{Result: result})
		}).
		MustBuild()
}
