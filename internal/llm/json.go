package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON recovers a JSON object from free model text: it strips
// markdown code fences and slices the outermost brace pair. When no object
// can be located the original text is returned unchanged so the validator
// can report it.
func ExtractJSON(text string) json.RawMessage {
	clean := strings.TrimSpace(text)

	if strings.HasPrefix(clean, "```json") {
		clean = strings.TrimPrefix(clean, "```json")
	} else if strings.HasPrefix(clean, "```") {
		clean = strings.TrimPrefix(clean, "```")
	}
	clean = strings.TrimSuffix(strings.TrimSpace(clean), "```")
	clean = strings.TrimSpace(clean)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end == -1 || end < start {
		return json.RawMessage(text)
	}
	return json.RawMessage(clean[start : end+1])
}
