package ingest

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	pdf "rsc.io/pdf"
)

// Doc is one normalized record ready for embedding and indexing.
type Doc struct {
	ID       string
	Text     string
	Metadata map[string]string
}

// minBookPageChars skips near-empty book pages (covers, figures, blanks).
const minBookPageChars = 200

// LoadMedicines reads the medicines workbook. Every non-empty cell becomes a
// "Column: value" line so the record embeds with its field names attached.
func LoadMedicines(path string) ([]Doc, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open medicines workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("medicines workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	docs := rowsToDocs(rows, "med", "medicine")
	log.Printf("[ingest][medicines] loaded %d records", len(docs))
	return docs, nil
}

// LoadRemedies reads the home-remedies CSV.
func LoadRemedies(path string) ([]Doc, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("read remedies csv: %w", err)
	}
	docs := rowsToDocs(rows, "rem", "remedy")
	log.Printf("[ingest][remedies] loaded %d records", len(docs))
	return docs, nil
}

// LoadLabTests reads the lab-report master CSV.
func LoadLabTests(path string) ([]Doc, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, fmt.Errorf("read lab tests csv: %w", err)
	}
	docs := rowsToDocs(rows, "lab", "labtest")
	log.Printf("[ingest][labtests] loaded %d records", len(docs))
	return docs, nil
}

// LoadBook reads the reference book PDF, one document per page with enough
// text to be worth indexing.
func LoadBook(path string) ([]Doc, error) {
	reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open book pdf: %w", err)
	}
	var docs []Doc
	for i := 1; i <= reader.NumPage(); i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}
		var b strings.Builder
		for _, t := range p.Content().Text {
			b.WriteString(t.S)
		}
		text := strings.TrimSpace(b.String())
		if len(text) < minBookPageChars {
			continue
		}
		docs = append(docs, Doc{
			ID:   fmt.Sprintf("book_%d", i-1),
			Text: text,
			Metadata: map[string]string{
				"source": "book",
				"page":   strconv.Itoa(i),
			},
		})
	}
	log.Printf("[ingest][book] loaded %d pages", len(docs))
	return docs, nil
}

// rowsToDocs turns a header row plus data rows into one document per row,
// joining non-empty cells as "Header: value" lines.
func rowsToDocs(rows [][]string, idPrefix, source string) []Doc {
	if len(rows) < 2 {
		return nil
	}
	header := rows[0]
	docs := make([]Doc, 0, len(rows)-1)
	for idx, row := range rows[1:] {
		var lines []string
		for col, val := range row {
			val = strings.TrimSpace(val)
			if val == "" || col >= len(header) {
				continue
			}
			lines = append(lines, header[col]+": "+val)
		}
		if len(lines) == 0 {
			continue
		}
		docs = append(docs, Doc{
			ID:   fmt.Sprintf("%s_%d", idPrefix, idx),
			Text: strings.Join(lines, "\n"),
			Metadata: map[string]string{
				"source": source,
				"row":    strconv.Itoa(idx),
			},
		})
	}
	return docs
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	return r.ReadAll()
}
