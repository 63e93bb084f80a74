package clock_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/domain/tool"
	"github.com/ShivanshDubey1704/agentic-ai-assistant/pack/clock"
)

func TestNow(t *testing.T) {
	t.Parallel()

	now, _ := clock.New().GetTool("clock.now")

	out, err := now.Invoke(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	var result struct {
		Time     string `json:"time"`
		Unix     int64  `json:"unix"`
		Timezone string `json:"timezone"`
		Weekday  string `json:"weekday"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	parsed, err := time.Parse(time.RFC3339, result.Time)
	if err != nil {
		t.Fatalf("time %q is not RFC3339: %v", result.Time, err)
	}
	if delta := time.Since(parsed); delta < 0 || delta > time.Minute {
		t.Errorf("reported time %v is not close to now", parsed)
	}
	if result.Weekday == "" {
		t.Error("weekday is empty")
	}
}

func TestNow_Timezone(t *testing.T) {
	t.Parallel()

	now, _ := clock.New().GetTool("clock.now")

	out, err := now.Invoke(context.Background(), json.RawMessage(`{"timezone":"UTC"}`))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	var result struct {
		Timezone string `json:"timezone"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if result.Timezone != "UTC" {
		t.Errorf("timezone = %q, want UTC", result.Timezone)
	}

	_, err = now.Invoke(context.Background(), json.RawMessage(`{"timezone":"Atlantis/Lost"}`))
	if !tool.IsPermanent(err) {
		t.Errorf("Invoke(unknown timezone) error = %v, want permanent", err)
	}
}

func TestElapsed(t *testing.T) {
	t.Parallel()

	elapsed, _ := clock.New().GetTool("clock.elapsed")

	args := json.RawMessage(`{"from":"2026-03-01T12:00:00Z","to":"2026-03-01T12:05:30Z"}`)
	out, err := elapsed.Invoke(context.Background(), args)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	var result struct {
		Seconds float64 `json:"seconds"`
		Human   string  `json:"human"`
	}
	if err := json.Unmarshal(out, &result); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if result.Seconds != 330 {
		t.Errorf("seconds = %v, want 330", result.Seconds)
	}
	if result.Human != "5m30s" {
		t.Errorf("human = %q, want 5m30s", result.Human)
	}
}

func TestElapsed_BadTimestamps(t *testing.T) {
	t.Parallel()

	elapsed, _ := clock.New().GetTool("clock.elapsed")

	tests := []struct {
		name string
		args string
	}{
		{name: "bad from", args: `{"from":"yesterday"}`},
		{name: "bad to", args: `{"from":"2026-03-01T12:00:00Z","to":"tomorrow"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := elapsed.Invoke(context.Background(), json.RawMessage(tt.args))
			if !tool.IsPermanent(err) {
				t.Errorf("Invoke() error = %v, want permanent", err)
			}
		})
	}
}
