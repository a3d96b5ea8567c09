package textutil

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ParseLooseJSON extracts and parses a JSON object from generative-model
// output that may be pure JSON, JSON wrapped in a markdown code fence,
// JSON surrounded by prose, or slightly malformed JSON.
func ParseLooseJSON(input string, target interface{}) error {
	if input == "" {
		return fmt.Errorf("empty input")
	}

	// Most common case: the model obeyed and returned plain JSON
	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := extractFromMarkdown(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := extractBalancedObject(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		if cleaned := cleanJSON(extracted); cleaned != "" {
			if err := json.Unmarshal([]byte(cleaned), target); err == nil {
				return nil
			}
		}
	}

	if cleaned := cleanJSON(input); cleaned != "" {
		if err := json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncateString(input, 100))
}

var (
	fencedJSONRe = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedAnyRe  = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")

	trailingCommaRe = regexp.MustCompile(`,\s*([}\]])`)
	unquotedKeyRe   = regexp.MustCompile(`([{,]\s*)(\w+)(\s*:)`)
	controlCharsRe  = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F]`)
)

// extractFromMarkdown pulls the body out of a ```json fence, or a bare
// fence whose content looks like an object
func extractFromMarkdown(input string) string {
	if matches := fencedJSONRe.FindStringSubmatch(input); len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}
	if matches := fencedAnyRe.FindStringSubmatch(input); len(matches) > 1 {
		content := strings.TrimSpace(matches[1])
		if strings.HasPrefix(content, "{") {
			return content
		}
	}
	return ""
}

// extractBalancedObject returns the first {...} with balanced braces,
// ignoring braces inside string literals
func extractBalancedObject(input string) string {
	start := strings.Index(input, "{")
	if start < 0 {
		return ""
	}
	input = input[start:]

	depth := 0
	inString := false
	escape := false
	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		switch {
		case ch == '\\':
			escape = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth == 0 {
				return input[:i+1]
			}
		}
	}
	return ""
}

// cleanJSON fixes the malformations models actually produce: BOM, trailing
// commas, unquoted keys, stray control characters
func cleanJSON(input string) string {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "\ufeff")
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	s = unquotedKeyRe.ReplaceAllString(s, `$1"$2"$3`)
	s = controlCharsRe.ReplaceAllString(s, "")
	return s
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
