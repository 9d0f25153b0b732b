// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON is returned when a reply contains no parseable JSON structure.
var ErrNoJSON = errors.New("no JSON structure found in response")

// CleanJSONBlock removes markdown code block wrappers and conversational
// preamble or trailing text from JSON responses.
func CleanJSONBlock(text string) string {
	text = stripCodeFence(text)

	if strings.HasPrefix(text, "{") || strings.HasPrefix(text, "[") {
		if extracted := extractBalanced(text); extracted != "" {
			return extracted
		}
		return text
	}

	// Preamble: cut to the first opening brace or bracket
	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return text
	}
	if extracted := extractBalanced(text[start:]); extracted != "" {
		return extracted
	}
	return text
}

// ParseLenient recovers a JSON value from a model reply. It tries, in order:
// the whole reply, the first balanced object, the first balanced array.
func ParseLenient(text string) (json.RawMessage, error) {
	trimmed := stripCodeFence(text)
	if trimmed != "" && json.Valid([]byte(trimmed)) {
		return json.RawMessage(trimmed), nil
	}

	if candidate := firstValid(trimmed, '{', extractJSONObject); candidate != "" {
		return json.RawMessage(candidate), nil
	}
	if candidate := firstValid(trimmed, '[', extractJSONArray); candidate != "" {
		return json.RawMessage(candidate), nil
	}
	return nil, ErrNoJSON
}

func firstValid(text string, open byte, extract func(string) string) string {
	for i := 0; i < len(text); i++ {
		if text[i] != open {
			continue
		}
		candidate := extract(text[i:])
		if candidate != "" && json.Valid([]byte(candidate)) {
			return candidate
		}
	}
	return ""
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else {
		text = strings.TrimPrefix(text, "```")
		// Skip a language identifier on the first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func extractBalanced(text string) string {
	if strings.HasPrefix(text, "{") {
		return extractJSONObject(text)
	}
	return extractJSONArray(text)
}

// extractJSONObject returns the balanced {...} prefix of text, or "".
func extractJSONObject(text string) string {
	return extractDelimited(text, '{', '}')
}

// extractJSONArray returns the balanced [...] prefix of text, or "".
func extractJSONArray(text string) string {
	return extractDelimited(text, '[', ']')
}

func extractDelimited(text string, open, closing byte) string {
	if len(text) == 0 || text[0] != open {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return text[:i+1]
			}
		}
	}
	return ""
}
