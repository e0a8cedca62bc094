// Package ingest reads OCR payloads from the local filesystem: JSON exports
// from OCR APIs in their common shapes, or plain text files.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/weighlog/weighbridge-parser/constants"
	"github.com/weighlog/weighbridge-parser/internal/common"
)

// ocrPayload covers the OCR API response shapes we accept.
type ocrPayload struct {
	Text  string    `json:"text"`
	Pages []ocrPage `json:"pages"`
}

type ocrPage struct {
	Text  string    `json:"text"`
	Lines []ocrSpan `json:"lines"`
	Words []ocrSpan `json:"words"`
}

type ocrSpan struct {
	Text string `json:"text"`
}

// ReadFile loads OCR text from path. JSON files are decoded through the known
// payload shapes; anything else is read verbatim.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", common.WrapError(err, "read ocr file")
	}
	if constants.NormalizeExt(filepath.Ext(path)) == "json" {
		return DecodeOCRJSON(data)
	}
	return string(data), nil
}

// DecodeOCRJSON extracts the recognized text from an OCR API JSON payload.
// Preference order: first page's text, first page rebuilt from lines, then
// from words, finally the top-level text field.
func DecodeOCRJSON(data []byte) (string, error) {
	var payload ocrPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("invalid ocr json: %w", err)
	}
	if len(payload.Pages) > 0 {
		page := payload.Pages[0]
		if page.Text != "" {
			return page.Text, nil
		}
		if len(page.Lines) > 0 {
			parts := make([]string, 0, len(page.Lines))
			for _, l := range page.Lines {
				parts = append(parts, l.Text)
			}
			return strings.Join(parts, "\n"), nil
		}
		if len(page.Words) > 0 {
			parts := make([]string, 0, len(page.Words))
			for _, w := range page.Words {
				parts = append(parts, w.Text)
			}
			return strings.Join(parts, " "), nil
		}
	}
	if payload.Text != "" {
		return payload.Text, nil
	}
	return "", fmt.Errorf("ocr json carries no recognizable text structure: %w", common.ErrInvalidInput)
}

// ListDir returns the ingestable files directly under dir, sorted by name.
func ListDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, common.WrapError(err, "read input directory")
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := constants.NormalizeExt(filepath.Ext(e.Name()))
		if _, ok := constants.AllowedExtensions[ext]; !ok {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
