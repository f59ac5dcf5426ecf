package rag

import (
	"regexp"
	"strings"
)

var (
	// Section-delimiter artifacts the model sometimes echoes back.
	markerArtifacts = regexp.MustCompile(`(?i)(== ?answer ?==|== ?support ?==)+`)
	// A numbered list starting over mid-answer ("...\n1. ..." appearing again).
	listRestart = regexp.MustCompile(`\n\s*1[.|]`)
)

// Sanitize cleans raw model output: normalizes line endings, strips marker
// artifacts, drops duplicate paragraphs and repeated list restarts, and
// enforces terminal punctuation. Applying it twice equals applying it once.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	text = markerArtifacts.ReplaceAllString(text, "")

	// Drop exact-duplicate paragraphs, first occurrence wins.
	var paras []string
	seen := make(map[string]bool)
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		paras = append(paras, p)
	}
	text = strings.Join(paras, "\n\n")

	text = collapseRepeatedSections(text)

	if text != "" && !strings.HasSuffix(text, ".") && !strings.HasSuffix(text, "?") && !strings.HasSuffix(text, "!") {
		text += "."
	}
	return text
}

// collapseRepeatedSections splits the text on numbered-list restart markers
// and keeps only the first occurrence of each segment, so an answer that
// accidentally restarts its "1. ..." section loses the repeated head.
func collapseRepeatedSections(text string) string {
	locs := listRestart.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return text
	}
	var parts []string
	prev := 0
	for _, loc := range locs {
		if loc[0] > prev {
			parts = append(parts, text[prev:loc[0]])
		}
		parts = append(parts, text[loc[0]:loc[1]])
		prev = loc[1]
	}
	if prev < len(text) {
		parts = append(parts, text[prev:])
	}

	seen := make(map[string]bool)
	var out strings.Builder
	for _, p := range parts {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out.WriteString(p)
	}
	return strings.TrimSpace(out.String())
}
