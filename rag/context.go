package rag

import (
	"fmt"
	"sort"
	"strings"
)

const blockSeparator = "\n\n---\n\n"

// AssembleContext renders retrieved snippets (and the extracted document
// text, when present) into one labeled context blob. Each snippet is trimmed
// to snippetChars at a word boundary and duplicates of the same
// (source, trimmed text) pair are dropped, first occurrence winning. The
// empty string comes back only when there is nothing at all to ground on.
func AssembleContext(retrieved []RetrievedItem, extractedText string, snippetChars int) string {
	var parts []string
	if strings.TrimSpace(extractedText) != "" {
		parts = append(parts, "[doc] PDF Extracted Text\n"+strings.TrimSpace(extractedText))
	}

	seen := make(map[string]bool)
	for _, item := range retrieved {
		short := SafeTrim(item.Text, snippetChars)
		key := item.Source + "\x00" + short
		if seen[key] {
			continue
		}
		seen[key] = true

		header := "[" + item.Source + "]"
		if meta := renderMetadata(item.Metadata); meta != "" {
			header += " " + meta
		}
		parts = append(parts, header+"\n"+short)
	}
	return strings.Join(parts, blockSeparator)
}

// renderMetadata flattens metadata as "k:v | k:v" with sorted keys so the
// same item always renders the same blob.
func renderMetadata(meta map[string]string) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	items := make([]string, 0, len(keys))
	for _, k := range keys {
		items = append(items, fmt.Sprintf("%s:%s", k, meta[k]))
	}
	return strings.Join(items, " | ")
}
