package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripCodeFences removes a surrounding markdown code fence, if any. Models
// routinely wrap JSON answers in ```json ... ``` even when told not to.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// Drop the opening fence line (``` or ```json etc).
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// ParseStringList parses a model response expected to be a JSON array of
// strings (hooks, titles, tags). A parse failure here is a generation
// failure — we never hand the caller half-parsed content.
func ParseStringList(raw string) ([]string, error) {
	cleaned := StripCodeFences(raw)

	var items []string
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		return nil, fmt.Errorf("response is not a JSON string array: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("response array is empty")
	}
	return items, nil
}
