package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds everything read from the environment at startup.
type Config struct {
	Port            string
	OpenAIAPIKey    string
	ChatModel       string
	CompletionModel string
	VisionModel     string
	EmbeddingModel  string
	VectorDBPath    string

	ContextWindow    int
	MaxTokens        int
	PromptCharsRatio float64
	EmbedCacheSize   int

	TopKPerCollection int
	FinalTopK         int
	PDFPageCharLimit  int
	SnippetChars      int
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[config][load] .env loaded")
	}
	return Config{
		Port:            getEnv("PORT", "8080"),
		OpenAIAPIKey:    sanitizeEnv(os.Getenv("OPENAI_API_KEY")),
		ChatModel:       getEnv("CHAT_MODEL", "gpt-4o-mini"),
		CompletionModel: getEnv("COMPLETION_MODEL", "gpt-3.5-turbo-instruct"),
		VisionModel:     getEnv("VISION_MODEL", "gpt-4o"),
		EmbeddingModel:  getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		VectorDBPath:    getEnv("VECTOR_DB_PATH", "chroma_db"),

		ContextWindow:    getEnvInt("CONTEXT_WINDOW", 2048),
		MaxTokens:        getEnvInt("MAX_NEW_TOKENS", 512),
		PromptCharsRatio: getEnvFloat("PROMPT_CHARS_RATIO", 0.25),
		EmbedCacheSize:   getEnvInt("EMBED_CACHE_SIZE", 2048),

		TopKPerCollection: getEnvInt("TOP_K_PER_COLLECTION", 3),
		FinalTopK:         getEnvInt("FINAL_TOP_K", 4),
		PDFPageCharLimit:  getEnvInt("PDF_PAGE_CHAR_LIMIT", 700),
		SnippetChars:      getEnvInt("SNIPPET_CHARS", 120),
	}
}

func getEnv(key, def string) string {
	if v := sanitizeEnv(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := sanitizeEnv(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("[config][warn] %s=%q is not an integer, using %d", key, v, def)
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := sanitizeEnv(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("[config][warn] %s=%q is not a number, using %v", key, v, def)
	}
	return def
}

// sanitizeEnv trims whitespace and a matching pair of surrounding quotes,
// which sneak in when .env values are written as KEY="value".
func sanitizeEnv(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		if (v[0] == '"' && v[len(v)-1] == '"') || (v[0] == '\'' && v[len(v)-1] == '\'') {
			return v[1 : len(v)-1]
		}
	}
	return v
}
