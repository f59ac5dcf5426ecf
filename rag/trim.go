package rag

import "strings"

// SafeTrim cuts text down to maxChars without splitting a word: the cut backs
// off to the last space inside the budget and an ellipsis marker is appended.
// Text already within budget is returned unchanged.
func SafeTrim(text string, maxChars int) string {
	if text == "" || maxChars <= 0 {
		return ""
	}
	if len(text) <= maxChars {
		return text
	}
	cut := text[:maxChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "..."
}
