// internal/scoring/extract.go
package scoring

import (
	"encoding/json"
	"strings"
)

// extractObject pulls the first top-level JSON object out of a model reply.
// Replies are supposed to be bare JSON but often arrive wrapped in prose or
// code fences; anything unparseable degrades to an empty object so callers
// fall back to their defaults field by field.
func extractObject(text string) map[string]interface{} {
	if obj := tryParse(text); obj != nil {
		return obj
	}
	if candidate := firstBalancedObject(text); candidate != "" {
		if obj := tryParse(candidate); obj != nil {
			return obj
		}
	}
	return map[string]interface{}{}
}

func tryParse(s string) map[string]interface{} {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &obj); err != nil {
		return nil
	}
	return obj
}

// firstBalancedObject returns the substring from the first '{' to its
// matching '}', tracking string literals and escapes so braces inside values
// do not unbalance the scan. Empty when no balanced object exists.
func firstBalancedObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
