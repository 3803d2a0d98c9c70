package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnparsableResponse indicates no valid decision JSON could be pulled
// out of the routing model's reply.
var ErrUnparsableResponse = errors.New("unparsable router response")

// Decision is the JSON contract the routing model is instructed to emit.
type Decision struct {
	Function    string         `json:"function"`
	Arguments   map[string]any `json:"arguments"`
	MissingInfo []string       `json:"missing_info"`
}

// ExtractDecision pulls the decision JSON out of a model reply. Models
// often wrap the JSON in prose or emit several candidate objects, so after
// a direct parse it falls back to scanning for balanced objects (taking the
// last one) and finally to the widest first-to-last brace span.
func ExtractDecision(response string) (*Decision, error) {
	if d := tryParse(strings.TrimSpace(response)); d != nil {
		return d, nil
	}

	blocks := balancedObjects(response)
	for i := len(blocks) - 1; i >= 0; i-- {
		if d := tryParse(blocks[i]); d != nil {
			return d, nil
		}
	}

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		if d := tryParse(response[start : end+1]); d != nil {
			return d, nil
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrUnparsableResponse, truncateForError(response))
}

func tryParse(candidate string) *Decision {
	var d Decision
	if err := json.Unmarshal([]byte(candidate), &d); err != nil {
		return nil
	}
	if d.Function == "" {
		return nil
	}
	if d.Arguments == nil {
		d.Arguments = map[string]any{}
	}
	return &d
}

// balancedObjects returns every top-level {...} span in s, ignoring braces
// inside JSON strings.
func balancedObjects(s string) []string {
	var blocks []string
	depth := 0
	start := -1
	inString := false
	escaped := false
	for i, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					blocks = append(blocks, s[start:i+1])
					start = -1
				}
			}
		}
	}
	return blocks
}

func truncateForError(s string) string {
	const limit = 200
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
