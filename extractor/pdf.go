package extractor

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	pdf "rsc.io/pdf"

	"medassist-backend/ocr"
)

const pageSeparator = "\n\n"

// PDF extracts plain text from a PDF, page by page. Pages without a
// selectable text layer are rasterized through their embedded images and run
// through the OCR recognizer when one is configured.
type PDF struct {
	OCR     ocr.Recognizer // optional; nil disables the OCR fallback
	tempDir string
}

func NewPDF(recognizer ocr.Recognizer) *PDF {
	tempDir := filepath.Join(os.TempDir(), "medassist-ocr")
	_ = os.MkdirAll(tempDir, 0o755)
	return &PDF{OCR: recognizer, tempDir: tempDir}
}

// Extract accumulates page texts until maxChars is reached; later pages are
// never read once the budget is met. A missing or unreadable document yields
// an empty string plus the error for the caller to log; extraction never
// panics upward.
func (e *PDF) Extract(ctx context.Context, path string, maxChars int) (text string, err error) {
	if maxChars <= 0 {
		maxChars = 700
	}
	if _, statErr := os.Stat(path); statErr != nil {
		return "", statErr
	}

	// rsc.io/pdf panics on malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}

	var parts []string
	total := 0
	for pageIndex := 1; pageIndex <= reader.NumPage(); pageIndex++ {
		pageText := pageTextLayer(reader, pageIndex)
		if strings.TrimSpace(pageText) == "" && e.OCR != nil {
			pageText = e.recognizePage(ctx, path, pageIndex)
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		parts = append(parts, pageText)
		total += len(pageText) + len(pageSeparator)
		if total >= maxChars {
			break
		}
	}

	combined := strings.Join(parts, pageSeparator)
	if len(combined) > maxChars {
		combined = combined[:maxChars]
	}
	return combined, nil
}

// pageTextLayer concatenates the positioned text fragments of one page.
func pageTextLayer(reader *pdf.Reader, pageIndex int) string {
	p := reader.Page(pageIndex)
	if p.V.IsNull() {
		return ""
	}
	var b strings.Builder
	for _, t := range p.Content().Text {
		b.WriteString(t.S)
	}
	return b.String()
}

// recognizePage pulls the embedded images of a single page (a scanned page
// is one big image) and feeds each through the recognizer. Failures are
// logged and yield an empty page, never an aborted extraction.
func (e *PDF) recognizePage(ctx context.Context, path string, pageIndex int) string {
	outDir := filepath.Join(e.tempDir, fmt.Sprintf("page_%d_%d", os.Getpid(), pageIndex))
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		log.Printf("[extractor][ocr][warn] page=%d tempdir err=%v", pageIndex, err)
		return ""
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	if err := api.ExtractImagesFile(path, outDir, []string{strconv.Itoa(pageIndex)}, conf); err != nil {
		log.Printf("[extractor][ocr][warn] page=%d image extraction err=%v", pageIndex, err)
		return ""
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		log.Printf("[extractor][ocr][warn] page=%d readdir err=%v", pageIndex, err)
		return ""
	}

	var texts []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		img, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		recognized, err := e.OCR.RecognizeText(ctx, img)
		if err != nil {
			log.Printf("[extractor][ocr][warn] page=%d recognize err=%v", pageIndex, err)
			continue
		}
		if strings.TrimSpace(recognized) != "" {
			texts = append(texts, strings.TrimSpace(recognized))
		}
	}
	return strings.Join(texts, "\n")
}
