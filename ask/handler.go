package ask

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"medassist-backend/rag"
)

// extractPreviewChars caps what /extract echoes back to the caller.
const extractPreviewChars = 5000

// Pipeline is the single entry point the HTTP surface consumes.
type Pipeline interface {
	QueryRAG(ctx context.Context, question, docPath string) string
}

type Handler struct {
	RAG       Pipeline
	Extractor rag.DocumentExtractor
}

func NewHandler(pipeline Pipeline, extractor rag.DocumentExtractor) *Handler {
	return &Handler{RAG: pipeline, Extractor: extractor}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.POST("/generate", h.Generate)
	r.POST("/extract", h.Extract)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Backend running successfully!"})
}

// Generate accepts a prompt plus an optional document and returns the
// pipeline's answer. The response is always {"text": ...}; pipeline failure
// states are already collapsed into answer strings.
func (h *Handler) Generate(c *gin.Context) {
	start := time.Now()
	prompt := c.PostForm("prompt")
	if strings.TrimSpace(prompt) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt required"})
		return
	}

	docPath := ""
	if upFile, err := c.FormFile("file"); err == nil && upFile != nil {
		tmp, saveErr := h.saveUpload(upFile.Filename, func(dst string) error {
			return c.SaveUploadedFile(upFile, dst)
		})
		if saveErr != nil {
			log.Printf("[ask][generate][warn] could not save upload: %v", saveErr)
		} else {
			docPath = tmp
			defer removeTemp(tmp)
		}
	}

	text := h.RAG.QueryRAG(c.Request.Context(), prompt, docPath)
	log.Printf("[ask][generate] answer_len=%d elapsed_ms=%d", len(text), time.Since(start).Milliseconds())
	c.JSON(http.StatusOK, gin.H{"text": text})
}

// Extract returns the raw extracted text of an uploaded document, capped to
// a preview budget.
func (h *Handler) Extract(c *gin.Context) {
	upFile, err := c.FormFile("file")
	if err != nil || upFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	tmp, err := h.saveUpload(upFile.Filename, func(dst string) error {
		return c.SaveUploadedFile(upFile, dst)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer removeTemp(tmp)

	text, err := h.Extractor.Extract(c.Request.Context(), tmp, extractPreviewChars)
	if err != nil {
		log.Printf("[ask][extract][warn] path=%s err=%v", tmp, err)
		text = ""
	}
	if len(text) > extractPreviewChars {
		text = text[:extractPreviewChars]
	}
	c.JSON(http.StatusOK, gin.H{"extracted_text": text})
}

func (h *Handler) saveUpload(filename string, save func(dst string) error) (string, error) {
	tmpDir := "./tmp"
	if err := os.MkdirAll(tmpDir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(tmpDir, uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	if err := save(dst); err != nil {
		return "", err
	}
	return dst, nil
}

func removeTemp(path string) {
	if err := os.Remove(path); err != nil {
		log.Printf("[ask][tmp][warn] could not delete %s: %v", path, err)
	}
}
