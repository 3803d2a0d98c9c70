// Package tokenizer wraps tiktoken for token budgeting and truncation.
// Counts are budget estimates only; the serving model remains the source
// of truth for its own context window.
package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"
)

// Counter counts and truncates text by tokens of a fixed encoding.
type Counter struct {
	enc *tiktoken.Tiktoken
}

// New creates a counter for the named tiktoken encoding (e.g. cl100k_base).
func New(encoding string) (*Counter, error) {
	if encoding == "" {
		encoding = "cl100k_base"
	}
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, fmt.Errorf("get encoding %q: %w", encoding, err)
	}
	return &Counter{enc: enc}, nil
}

// Count returns the token count of text.
func (c *Counter) Count(text string) int {
	return len(c.enc.Encode(text, nil, nil))
}

// Truncate returns text cut to at most maxTokens tokens.
func (c *Counter) Truncate(text string, maxTokens int) string {
	if maxTokens <= 0 {
		return text
	}
	tokens := c.enc.Encode(text, nil, nil)
	if len(tokens) <= maxTokens {
		return text
	}
	return c.enc.Decode(tokens[:maxTokens])
}
