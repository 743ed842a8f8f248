package llm

import "strings"

const codeFence = "```"

// StripCodeFence removes conversational code-fence wrapping (a leading ```
// line with an optional language tag and a trailing ```) from a raw model
// response, leaving the bare document. Input without fence markers is returned
// unchanged, which makes the function idempotent.
func StripCodeFence(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, codeFence) {
		return raw
	}

	// Drop the opening fence line, language tag included.
	if idx := strings.Index(trimmed, "\n"); idx >= 0 {
		trimmed = trimmed[idx+1:]
	} else {
		trimmed = strings.TrimPrefix(trimmed, codeFence)
	}

	trimmed = strings.TrimSpace(trimmed)
	trimmed = strings.TrimSuffix(trimmed, codeFence)
	return strings.TrimSpace(trimmed)
}
