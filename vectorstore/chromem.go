package vectorstore

import (
	"context"
	"fmt"
	"log"

	chromem "github.com/philippgille/chromem-go"

	"medassist-backend/rag"
)

// collectionNames maps the pipeline's source keys to the on-disk collection
// names the offline indexer writes.
var collectionNames = map[string]string{
	rag.SourceMed:  "medicines",
	rag.SourceLab:  "labtests",
	rag.SourceRem:  "remedies",
	rag.SourceBook: "medicalbook",
}

// sourceOrder keeps collection iteration deterministic across requests.
var sourceOrder = []string{rag.SourceMed, rag.SourceLab, rag.SourceRem, rag.SourceBook}

// Store reads the persistent chromem collections. Collections missing at
// startup are tolerated: the store simply serves fewer sources.
type Store struct {
	collections map[string]*chromem.Collection
	available   []string
}

// Open loads the persistent database at path and resolves the known
// collections. A missing collection is logged and skipped, never fatal.
func Open(path string) (*Store, error) {
	db, err := chromem.NewPersistentDB(path, false)
	if err != nil {
		return nil, fmt.Errorf("open vector db at %s: %w", path, err)
	}
	return NewStore(db), nil
}

// NewStore wraps an already-loaded database; used directly by tests and the
// indexer.
func NewStore(db *chromem.DB) *Store {
	s := &Store{collections: make(map[string]*chromem.Collection)}
	for _, key := range sourceOrder {
		name := collectionNames[key]
		coll := db.GetCollection(name, nil)
		if coll == nil {
			log.Printf("[vectorstore][open][warn] collection %s not found, skipping", name)
			continue
		}
		s.collections[key] = coll
		s.available = append(s.available, key)
	}
	log.Printf("[vectorstore][open] available collections: %v", s.available)
	return s
}

// ListCollections returns the source keys that were present at startup, in a
// stable order.
func (s *Store) ListCollections() []string {
	return append([]string(nil), s.available...)
}

// QueryNearest returns up to k nearest neighbors from one collection.
// chromem reports cosine similarity; the pipeline ranks by distance, so hits
// carry 1-similarity.
func (s *Store) QueryNearest(ctx context.Context, collection string, embedding []float32, k int) ([]rag.Hit, error) {
	coll, ok := s.collections[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}
	count := coll.Count()
	if count == 0 {
		return nil, nil
	}
	if k > count {
		k = count
	}
	results, err := coll.QueryEmbedding(ctx, embedding, k, nil, nil)
	if err != nil {
		return nil, err
	}
	hits := make([]rag.Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, rag.Hit{
			Text:     r.Content,
			Metadata: r.Metadata,
			Distance: 1 - float64(r.Similarity),
		})
	}
	return hits, nil
}
