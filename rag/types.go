package rag

import "context"

// Collection source keys. These match the keys the offline indexer writes
// under and are stable across process restarts.
const (
	SourceMed  = "med"
	SourceLab  = "lab"
	SourceRem  = "rem"
	SourceBook = "book"
)

// UnknownDistance sorts an item last when the store reported no distance.
const UnknownDistance = 1e6

// RetrievedItem is one nearest-neighbor hit tagged with its collection key.
// Lower Distance means more relevant.
type RetrievedItem struct {
	Text     string
	Metadata map[string]string
	Distance float64
	Source   string
}

// Hit is the raw per-collection result shape returned by a Store.
type Hit struct {
	Text     string
	Metadata map[string]string
	Distance float64
}

// Embedder maps a query string to a fixed-size vector. Embedding the same
// string twice must return identical output.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Store exposes the read-only vector collections. ListCollections returns
// the keys that were actually available at startup, in a stable order.
type Store interface {
	ListCollections() []string
	QueryNearest(ctx context.Context, collection string, embedding []float32, k int) ([]Hit, error)
}

// Generator is the generation capability. ContextWindow is a token-count
// hint used to budget the prompt before the call.
type Generator interface {
	Generate(ctx context.Context, prompt string, stop []string) (string, error)
	ContextWindow() int
}

// DocumentExtractor turns a document on disk into plain text, up to maxChars.
type DocumentExtractor interface {
	Extract(ctx context.Context, path string, maxChars int) (string, error)
}
