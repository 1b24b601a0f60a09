package llm

import (
	"encoding/json"
	"strings"
)

// extractDigest pulls the structured digest out of a model response that may
// wrap the JSON object in prose or Markdown code fences. When no parseable
// object is found, the entire raw response becomes the summary and the list
// fields stay empty.
func extractDigest(content string) *Digest {
	cleaned := stripFences(content)

	if raw, ok := firstJSONObject(cleaned); ok {
		var d Digest
		if err := json.Unmarshal([]byte(raw), &d); err == nil {
			if d.ActionItems == nil {
				d.ActionItems = []string{}
			}
			if d.Decisions == nil {
				d.Decisions = []string{}
			}
			return &d
		}
	}

	return &Digest{
		Summary:     content,
		ActionItems: []string{},
		Decisions:   []string{},
	}
}

func stripFences(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}

// firstJSONObject returns the first brace-balanced substring that is valid
// JSON. Scanning by brace depth rather than slicing first-{ to last-} keeps
// prose braces around the payload from corrupting the selection.
func firstJSONObject(s string) (string, bool) {
	for start := strings.IndexByte(s, '{'); start >= 0; {
		if end, ok := matchBrace(s, start); ok {
			candidate := s[start : end+1]
			if json.Valid([]byte(candidate)) {
				return candidate, true
			}
		}

		next := strings.IndexByte(s[start+1:], '{')
		if next < 0 {
			break
		}
		start += 1 + next
	}
	return "", false
}

// matchBrace finds the index of the brace closing the one at start, skipping
// braces inside JSON string literals.
func matchBrace(s string, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		c := s[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}

	return 0, false
}
