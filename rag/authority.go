package rag

import "regexp"

// Dosage, administration and vulnerable-population phrasing. Whole-word,
// case-insensitive; a match is binary, there is no scoring.
var treatmentKeywords = regexp.MustCompile(`(?i)\b(dose|dosage|take|how much|treatment|start|stop taking|pregnant|child|give to a child|administer)\b`)

// authoritativeSources are the collections trusted enough to back a
// dosage/treatment answer. Static configuration, never mutated.
var authoritativeSources = map[string]bool{
	SourceMed:  true,
	SourceBook: true,
}

// NeedsAuthority reports whether the question asks for authority-sensitive
// guidance (dosage, administration, start/stop-taking, pregnancy/child care).
func NeedsAuthority(question string) bool {
	return treatmentKeywords.MatchString(question)
}

// HasAuthority reports whether at least one retrieved item comes from an
// authoritative collection.
func HasAuthority(retrieved []RetrievedItem) bool {
	for _, item := range retrieved {
		if authoritativeSources[item.Source] {
			return true
		}
	}
	return false
}
