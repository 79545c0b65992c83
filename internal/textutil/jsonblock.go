package textutil

import "strings"

// ExtractJSONBlock strips a Markdown ```json fence from generated text.
//
// Models often wrap structured output in a fenced code block even when asked
// for bare JSON. When the trimmed text starts with ```json and ends with ```
// the fence lines are removed; otherwise the input is returned unchanged.
func ExtractJSONBlock(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```json") {
		return text
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 || strings.TrimSpace(lines[len(lines)-1]) != "```" {
		return text
	}
	return strings.Join(lines[1:len(lines)-1], "\n")
}
