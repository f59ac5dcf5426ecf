package vectorstore

import (
	"context"
	"testing"

	chromem "github.com/philippgille/chromem-go"

	"medassist-backend/rag"
)

func stubEmbedding(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0}, nil
}

func newTestDB(t *testing.T) *chromem.DB {
	t.Helper()
	db := chromem.NewDB()
	coll, err := db.CreateCollection("medicines", nil, stubEmbedding)
	if err != nil {
		t.Fatal(err)
	}
	err = coll.AddDocuments(context.Background(), []chromem.Document{
		{ID: "med_0", Content: "Metformin: used to treat type 2 diabetes.", Embedding: []float32{1, 0}, Metadata: map[string]string{"source": "medicine", "row": "0"}},
		{ID: "med_1", Content: "Ibuprofen: anti-inflammatory pain reliever.", Embedding: []float32{0, 1}, Metadata: map[string]string{"source": "medicine", "row": "1"}},
	}, 1)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func TestNewStoreToleratesMissingCollections(t *testing.T) {
	s := NewStore(newTestDB(t))
	got := s.ListCollections()
	if len(got) != 1 || got[0] != rag.SourceMed {
		t.Fatalf("only medicines exists, got %v", got)
	}
}

func TestQueryNearestRanksBySimilarity(t *testing.T) {
	s := NewStore(newTestDB(t))
	hits, err := s.QueryNearest(context.Background(), rag.SourceMed, []float32{1, 0}, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[0].Distance > hits[1].Distance {
		t.Fatalf("hits not ordered by distance: %v", hits)
	}
	if hits[0].Text != "Metformin: used to treat type 2 diabetes." {
		t.Fatalf("nearest hit wrong: %q", hits[0].Text)
	}
	if hits[0].Metadata["row"] != "0" {
		t.Fatalf("metadata lost: %v", hits[0].Metadata)
	}
}

func TestQueryNearestClampsK(t *testing.T) {
	s := NewStore(newTestDB(t))
	hits, err := s.QueryNearest(context.Background(), rag.SourceMed, []float32{1, 0}, 50)
	if err != nil {
		t.Fatalf("oversized k should be clamped, got error: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
}

func TestQueryNearestUnknownCollection(t *testing.T) {
	s := NewStore(newTestDB(t))
	if _, err := s.QueryNearest(context.Background(), rag.SourceBook, []float32{1, 0}, 3); err == nil {
		t.Fatal("expected error for unknown collection")
	}
}
