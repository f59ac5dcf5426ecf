// Offline ingestion and indexing: loads the four source datasets, embeds
// them and writes the persistent vector collections the server reads.
package main

import (
	"context"
	"flag"
	"log"
	"path/filepath"
	"runtime"

	chromem "github.com/philippgille/chromem-go"

	"medassist-backend/config"
	"medassist-backend/ingest"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding the source datasets")
	flag.Parse()

	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("[ingest][fatal] OPENAI_API_KEY is required")
	}

	db, err := chromem.NewPersistentDB(cfg.VectorDBPath, false)
	if err != nil {
		log.Fatalf("[ingest][fatal] open vector db: %v", err)
	}
	embedFunc := chromem.NewEmbeddingFuncOpenAI(cfg.OpenAIAPIKey, chromem.EmbeddingModelOpenAI(cfg.EmbeddingModel))

	type dataset struct {
		collection string
		load       func() ([]ingest.Doc, error)
	}
	datasets := []dataset{
		{"medicines", func() ([]ingest.Doc, error) { return ingest.LoadMedicines(filepath.Join(*dataDir, "MID.xlsx")) }},
		{"remedies", func() ([]ingest.Doc, error) { return ingest.LoadRemedies(filepath.Join(*dataDir, "Home Remedies.csv")) }},
		{"labtests", func() ([]ingest.Doc, error) { return ingest.LoadLabTests(filepath.Join(*dataDir, "lab_report_master.csv")) }},
		{"medicalbook", func() ([]ingest.Doc, error) { return ingest.LoadBook(filepath.Join(*dataDir, "Medical_book.pdf")) }},
	}

	ctx := context.Background()
	for _, ds := range datasets {
		docs, err := ds.load()
		if err != nil {
			log.Printf("[ingest][warn] %s: %v, skipping", ds.collection, err)
			continue
		}
		if err := index(ctx, db, embedFunc, ds.collection, docs); err != nil {
			log.Fatalf("[ingest][fatal] indexing %s: %v", ds.collection, err)
		}
	}
	log.Printf("[ingest][done] collections written to %s", cfg.VectorDBPath)
}

func index(ctx context.Context, db *chromem.DB, embedFunc chromem.EmbeddingFunc, name string, docs []ingest.Doc) error {
	log.Printf("[ingest][index] collection=%s items=%d", name, len(docs))
	coll, err := db.GetOrCreateCollection(name, nil, embedFunc)
	if err != nil {
		return err
	}
	batch := make([]chromem.Document, 0, len(docs))
	for _, d := range docs {
		batch = append(batch, chromem.Document{
			ID:       d.ID,
			Content:  d.Text,
			Metadata: d.Metadata,
		})
	}
	return coll.AddDocuments(ctx, batch, runtime.NumCPU())
}
