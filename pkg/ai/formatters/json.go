package formatters

import (
	"context"
	"encoding/json"
	"fmt"
)

// Chatter sends one prompt and returns the raw model output.
type Chatter interface {
	Chat(ctx context.Context, input string) (string, error)
}

// decodeObject unmarshals output, falling back to the outermost {...}
// substring when the model wrapped its JSON in prose or fences.
func decodeObject(output string, out interface{}) error {
	err := json.Unmarshal([]byte(output), out)
	if err == nil {
		return nil
	}
	start := -1
	end := -1
	for i, r := range output {
		if r == '{' {
			start = i
			break
		}
	}
	for i := len(output) - 1; i >= 0; i-- {
		if output[i] == '}' {
			end = i
			break
		}
	}
	if start >= 0 && end > start {
		if err2 := json.Unmarshal([]byte(output[start:end+1]), out); err2 == nil {
			return nil
		}
	}
	return fmt.Errorf("ai-service returned non-json content: %w", err)
}

// mustMarshal is a helper for embedding payloads in prompts
func mustMarshal(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
