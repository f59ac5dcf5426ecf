package main

import (
	"log"

	"github.com/gin-gonic/gin"
	openai "github.com/sashabaranov/go-openai"

	"medassist-backend/ask"
	"medassist-backend/config"
	"medassist-backend/embedding"
	"medassist-backend/extractor"
	"medassist-backend/llm"
	"medassist-backend/ocr"
	"medassist-backend/rag"
	"medassist-backend/vectorstore"
)

func main() {
	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		log.Fatal("[main][fatal] OPENAI_API_KEY is required")
	}

	api := openai.NewClient(cfg.OpenAIAPIKey)

	store, err := vectorstore.Open(cfg.VectorDBPath)
	if err != nil {
		log.Fatalf("[main][fatal] open vector store: %v", err)
	}

	embedder, err := embedding.NewCached(
		embedding.NewOpenAIProvider(api, openai.EmbeddingModel(cfg.EmbeddingModel)),
		cfg.EmbedCacheSize,
	)
	if err != nil {
		log.Fatalf("[main][fatal] embedding cache: %v", err)
	}

	generator := llm.NewClient(cfg.ContextWindow,
		&llm.ChatStrategy{API: api, Model: cfg.ChatModel, MaxTokens: cfg.MaxTokens},
		&llm.CompletionStrategy{API: api, Model: cfg.CompletionModel, MaxTokens: cfg.MaxTokens},
	)

	docExtractor := extractor.NewPDF(ocr.NewOpenAIRecognizer(api, cfg.VisionModel))

	pipeline := rag.NewPipeline(embedder, store, generator, docExtractor, rag.Config{
		TopKPerCollection: cfg.TopKPerCollection,
		FinalTopK:         cfg.FinalTopK,
		PDFPageCharLimit:  cfg.PDFPageCharLimit,
		SnippetChars:      cfg.SnippetChars,
		PromptCharsRatio:  cfg.PromptCharsRatio,
	})

	r := gin.Default()
	ask.NewHandler(pipeline, docExtractor).RegisterRoutes(r)

	log.Printf("[main][start] listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("[main][fatal] server: %v", err)
	}
}
