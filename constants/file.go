package constants

import "strings"

// AllowedExtensions holds the default allowed file extensions for OCR ingestion.
// JSON payloads come from OCR APIs; TXT files carry already-extracted text.
var AllowedExtensions = map[string]struct{}{
	"json": {},
	"txt":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
