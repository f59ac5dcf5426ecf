package rag

import (
	"context"
	"log"
	"strings"
	"time"
)

// Terminal responses. Every failure mode of the pipeline collapses into one
// of these or a sanitized answer; callers never see an error value.
const (
	Fallback = "I don't know."
	Apology  = "I'm sorry, I could not generate a response."
)

// stopSequences passed to generation to cut off runaway section markers.
var stopSequences = []string{"== response ==", "\n\n\n", "\n==", "Final Summary\n", "</s>", "=="}

// Config carries the pipeline tunables. Conservative defaults favour speed
// and safety over coverage.
type Config struct {
	TopKPerCollection int
	FinalTopK         int
	PDFPageCharLimit  int     // extractor budget per document
	ExtractedChars    int     // budget for the extracted text block in the context
	SnippetChars      int     // budget per retrieved snippet
	PromptCharsRatio  float64 // fraction of the model context window spent on the prompt
}

// DefaultConfig returns the tuned defaults.
func DefaultConfig() Config {
	return Config{
		TopKPerCollection: 3,
		FinalTopK:         4,
		PDFPageCharLimit:  700,
		ExtractedChars:    1500,
		SnippetChars:      120,
		PromptCharsRatio:  0.25,
	}
}

// Pipeline wires the capabilities together for one request at a time. All
// handles are injected once at process start and treated as immutable.
type Pipeline struct {
	Embedder  Embedder
	Store     Store
	Generator Generator
	Extractor DocumentExtractor // optional, only needed when documents are supplied
	Config    Config
}

// NewPipeline builds a pipeline with default config where zero values were
// left in cfg.
func NewPipeline(embedder Embedder, store Store, generator Generator, extractor DocumentExtractor, cfg Config) *Pipeline {
	def := DefaultConfig()
	if cfg.TopKPerCollection <= 0 {
		cfg.TopKPerCollection = def.TopKPerCollection
	}
	if cfg.FinalTopK <= 0 {
		cfg.FinalTopK = def.FinalTopK
	}
	if cfg.PDFPageCharLimit <= 0 {
		cfg.PDFPageCharLimit = def.PDFPageCharLimit
	}
	if cfg.ExtractedChars <= 0 {
		cfg.ExtractedChars = def.ExtractedChars
	}
	if cfg.SnippetChars <= 0 {
		cfg.SnippetChars = def.SnippetChars
	}
	if cfg.PromptCharsRatio <= 0 {
		cfg.PromptCharsRatio = def.PromptCharsRatio
	}
	return &Pipeline{
		Embedder:  embedder,
		Store:     store,
		Generator: generator,
		Extractor: extractor,
		Config:    cfg,
	}
}

// QueryRAG answers a question grounded in the knowledge collections and the
// optional document at docPath. It always returns a string: a sanitized
// answer, the "I don't know." fallback, or a fixed apology when generation
// fails entirely.
func (p *Pipeline) QueryRAG(ctx context.Context, question, docPath string) string {
	start := time.Now()

	extracted := ""
	if docPath != "" && p.Extractor != nil {
		text, err := p.Extractor.Extract(ctx, docPath, p.Config.PDFPageCharLimit)
		if err != nil {
			// Extraction failure degrades to retrieval-only grounding.
			log.Printf("[rag][extract][warn] path=%s err=%v", docPath, err)
		}
		extracted = SafeTrim(text, p.Config.ExtractedChars)
	}

	retriever := &Retriever{Embedder: p.Embedder, Store: p.Store}
	retrieved := retriever.Retrieve(ctx, question, p.Config.TopKPerCollection, p.Config.FinalTopK)

	contextBlob := AssembleContext(retrieved, extracted, p.Config.SnippetChars)
	if strings.TrimSpace(contextBlob) == "" {
		log.Printf("[rag][query][warn] no context found, returning fallback")
		return Fallback
	}

	if NeedsAuthority(question) && !HasAuthority(retrieved) {
		log.Printf("[rag][query][warn] authority-sensitive question without authoritative source")
		return Fallback
	}

	prompt := BuildPrompt(contextBlob, question)
	prompt = SafeTrim(prompt, p.promptLimit())

	raw, err := p.Generator.Generate(ctx, prompt, stopSequences)
	if err != nil {
		log.Printf("[rag][generate][error] %v", err)
		return Apology
	}

	answer := Sanitize(raw)

	// Re-checked after generation as defense in depth; inputs are unchanged
	// so this only matters if the steps above are ever reordered.
	if NeedsAuthority(question) && !HasAuthority(retrieved) {
		return Fallback
	}

	log.Printf("[rag][query][done] elapsed_ms=%d answer_len=%d", time.Since(start).Milliseconds(), len(answer))
	return answer
}

// promptLimit derives the prompt character budget from the model context
// window. The ×3 chars-per-token factor is a heuristic, not a hard bound.
func (p *Pipeline) promptLimit() int {
	window := p.Generator.ContextWindow()
	if window <= 0 {
		window = 2048
	}
	limit := int(float64(window) * p.Config.PromptCharsRatio * 3)
	if limit < 1024 {
		limit = 1024
	}
	return limit
}
