// README: Response extractor; pulls the JSON object out of free-form completion text.
package ai

import "strings"

// ExtractJSON returns the JSON candidate carried by the first choice, and false
// when there is no choice or the content is blank.
func ExtractJSON(c *Completion) (string, bool) {
	if c == nil || len(c.Choices) == 0 {
		return "", false
	}
	content := c.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", false
	}
	return extractObject(content), true
}

// extractObject picks the longest top-level balanced {...} span, ignoring braces
// inside string literals. With no balanced span it falls back to first '{' through
// last '}', and with no '{' at all to the trimmed text.
func extractObject(s string) string {
	bestStart, bestEnd := -1, -1
	depth, start := 0, -1
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if depth == 0 {
			if c == '{' {
				depth, start = 1, i
				inString, escaped = false, false
			}
			continue
		}
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
			if depth == 0 && i+1-start > bestEnd-bestStart {
				bestStart, bestEnd = start, i+1
			}
		}
	}
	if bestStart >= 0 {
		return s[bestStart:bestEnd]
	}

	first := strings.IndexByte(s, '{')
	if first < 0 {
		return strings.TrimSpace(s)
	}
	last := strings.LastIndexByte(s, '}')
	if last < first {
		return s[first:]
	}
	return s[first : last+1]
}
