package rag

import "testing"

func TestNeedsAuthority(t *testing.T) {
	cases := map[string]bool{
		"What dose of Metformin should I take?":            true,
		"How much Metformin should I give to a child?":     true,
		"Is it safe during pregnancy to stop taking this?": true,
		"What is the treatment for malaria?":               true,
		"Can I administer this at home?":                   true,
		"What is Metformin used for?":                      false,
		"What does a high hemoglobin value mean?":          false,
		"Tell me about diabetes":                           false,
		// Whole-word matching: substrings must not trigger.
		"What is an overdosed patient chart?": false,
		"Explain intake forms":                false,
	}
	for q, want := range cases {
		if got := NeedsAuthority(q); got != want {
			t.Errorf("NeedsAuthority(%q)=%v; want %v", q, got, want)
		}
	}
}

func TestHasAuthority(t *testing.T) {
	if HasAuthority(nil) {
		t.Fatal("empty retrieval should have no authority")
	}
	remOnly := []RetrievedItem{{Source: SourceRem}, {Source: SourceLab}}
	if HasAuthority(remOnly) {
		t.Fatal("rem/lab items must not count as authoritative")
	}
	withMed := append(remOnly, RetrievedItem{Source: SourceMed})
	if !HasAuthority(withMed) {
		t.Fatal("med item should unlock authority")
	}
	withBook := []RetrievedItem{{Source: SourceBook}}
	if !HasAuthority(withBook) {
		t.Fatal("book item should unlock authority")
	}
}
