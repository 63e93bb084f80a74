// Package clock provides date and time tools.
package clock

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/pack"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
)

// New creates the clock pack.
func New() *pack.Pack {
	return pack.NewBuilder("clock").
		WithDescription("Date and time lookup").
		WithVersion("1.0.0").
		AddTools(
			nowTool(),
			elapsedTool(),
		).
		Build()
}

type nowInput struct {
	Timezone string `json:"timezone,omitempty"`
}

type nowOutput struct {
	Time     string `json:"time"`
	Unix     int64  `json:"unix"`
	Timezone string `json:"timezone"`
	Weekday  string `json:"weekday"`
}

func nowTool() tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"timezone": json.RawMessage(`{"type": "string"}`),
	}, nil)

	return tool.NewBuilder("clock.now").
		WithDescription("Current date and time, optionally in a named timezone").
		WithInputSchema(schema).
		ReadOnly().
		WithHandler(func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in nowInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			loc := time.Local
			if in.Timezone != "" {
				var err error
				loc, err = time.LoadLocation(in.Timezone)
				if err != nil {
					return nil, tool.Permanent(fmt.Errorf("unknown timezone %q: %w", in.Timezone, err))
				}
			}

			now := time.Now().In(loc)
			return json.Marshal(nowOutput{
				Time:     now.Format(time.RFC3339),
				Unix:     now.Unix(),
				Timezone: loc.String(),
				Weekday:  now.Weekday().String(),
			})
		}).
		MustBuild()
}

type elapsedInput struct {
	From string `json:"from"`
	To   string `json:"to,omitempty"`
}

type elapsedOutput struct {
	Seconds float64 `json:"seconds"`
	Human   string  `json:"human"`
}

func elapsedTool() tool.Tool {
	schema := tool.ObjectSchema(map[string]json.RawMessage{
		"from": json.RawMessage(`{"type": "string"}`),
		"to":   json.RawMessage(`{"type": "string"}`),
	}, []string{"from"})

	return tool.NewBuilder("clock.elapsed").
		WithDescription("Seconds between two RFC3339 timestamps (to defaults to now)").
		WithInputSchema(schema).
		ReadOnly().
		Idempotent().
		WithHandler(func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			var in elapsedInput
			if err := json.Unmarshal(args, &in); err != nil {
				return nil, tool.Permanent(err)
			}

			from, err := time.Parse(time.RFC3339, in.From)
			if err != nil {
				return nil, tool.Permanent(fmt.Errorf("parse from: %w", err))
			}

			to := time.Now()
			if in.To != "" {
				to, err = time.Parse(time.RFC3339, in.To)
				if err != nil {
					return nil, tool.Permanent(fmt.Errorf("parse to: %w", err))
				}
			}

			d := to.Sub(from)
			return json.Marshal(elapsedOutput{
				Seconds: d.Seconds(),
				Human:   d.String(),
			})
		}).
		MustBuild()
}
