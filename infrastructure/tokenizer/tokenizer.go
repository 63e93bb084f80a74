// Package tokenizer provides token counting backed by tiktoken.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// DefaultEncoding is the encoding shared by current chat models.
const DefaultEncoding = "cl100k_base"

// Counter counts tokens with a tiktoken encoding. It satisfies the memory
// package's TokenCounter.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// New creates a counter for the given encoding name.
func New(encoding string) (*Counter, error) {
	if encoding == "" {
		encoding = DefaultEncoding
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("load encoding %s: %w", encoding, err)
	}
	return &Counter{enc: enc}, nil
}

// Count returns the number of tokens in text.
func (c *Counter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}
