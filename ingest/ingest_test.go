package ingest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadRemedies(t *testing.T) {
	path := writeTempCSV(t, "Remedy,Ailment,Preparation\nHoney and ginger,Sore throat,Mix in warm water\nTurmeric milk,Cold,Warm before bed\n")
	docs, err := LoadRemedies(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(docs))
	}
	if docs[0].ID != "rem_0" {
		t.Fatalf("id wrong: %s", docs[0].ID)
	}
	if !strings.Contains(docs[0].Text, "Remedy: Honey and ginger") || !strings.Contains(docs[0].Text, "Ailment: Sore throat") {
		t.Fatalf("row text malformed:\n%s", docs[0].Text)
	}
	if docs[1].Metadata["source"] != "remedy" || docs[1].Metadata["row"] != "1" {
		t.Fatalf("metadata wrong: %v", docs[1].Metadata)
	}
}

func TestLoadLabTestsSkipsEmptyRows(t *testing.T) {
	path := writeTempCSV(t, "Parameter,Category,Interpretation\nHemoglobin,CBC,Oxygen carrier\n,,\n")
	docs, err := LoadLabTests(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("empty row should be skipped, got %d docs", len(docs))
	}
	if docs[0].Metadata["source"] != "labtest" {
		t.Fatalf("metadata wrong: %v", docs[0].Metadata)
	}
}

func TestLoadRemediesMissingFile(t *testing.T) {
	if _, err := LoadRemedies(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRowsToDocsIgnoresExtraColumns(t *testing.T) {
	rows := [][]string{
		{"Name", "Use"},
		{"Metformin", "Diabetes", "stray-cell"},
	}
	docs := rowsToDocs(rows, "med", "medicine")
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	if strings.Contains(docs[0].Text, "stray-cell") {
		t.Fatalf("cell without a header should be dropped:\n%s", docs[0].Text)
	}
}
