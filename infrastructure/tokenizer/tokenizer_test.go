package tokenizer_test

import (
	"testing"

	"github.com/ShivanshDubey1704/agentic-ai-assistant/infrastructure/tokenizer"
)

func TestCounter_Count(t *testing.T) {
	c, err := tokenizer.New("")
	if err != nil {
		t.Skipf("encoding unavailable: %v", err)
	}

	if got := c.Count(""); got != 0 {
		t.Errorf("Count(empty) = %d, want 0", got)
	}

	short := c.Count("hello")
	long := c.Count("hello there, how is the weather today in Berlin?")
	if short == 0 {
		t.Error("Count(hello) = 0, want > 0")
	}
	if long <= short {
		t.Errorf("Count(long) = %d, want > %d", long, short)
	}
}

func TestNew_UnknownEncoding(t *testing.T) {
	t.Parallel()

	if _, err := tokenizer.New("rot13"); err == nil {
		t.Error("New(rot13) = nil error, want error")
	}
}
