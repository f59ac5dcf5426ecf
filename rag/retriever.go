package rag

import (
	"context"
	"log"
	"sort"
)

// Retriever fans a question out to every available collection and merges the
// hits into one distance-ranked pool.
type Retriever struct {
	Embedder Embedder
	Store    Store
}

// Retrieve embeds the question once, asks each collection for perCollectionK
// neighbors, tags hits with their source key and returns the best finalK
// across all collections. A collection that errors is skipped; if everything
// is unavailable the result is empty, not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string, perCollectionK, finalK int) []RetrievedItem {
	emb, err := r.Embedder.Embed(ctx, question)
	if err != nil {
		log.Printf("[rag][retrieve][warn] embedding failed: %v", err)
		return nil
	}

	var pool []RetrievedItem
	for _, key := range r.Store.ListCollections() {
		hits, err := r.Store.QueryNearest(ctx, key, emb, perCollectionK)
		if err != nil {
			log.Printf("[rag][retrieve][warn] collection=%s query failed: %v", key, err)
			continue
		}
		for _, h := range hits {
			dist := h.Distance
			if dist < 0 {
				dist = UnknownDistance
			}
			pool = append(pool, RetrievedItem{
				Text:     h.Text,
				Metadata: h.Metadata,
				Distance: dist,
				Source:   key,
			})
		}
	}

	// Stable sort so ties keep collection order.
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Distance < pool[j].Distance })
	if len(pool) > finalK {
		pool = pool[:finalK]
	}
	return pool
}
