package constants

import "strings"

// FlowNames holds the processing flows accepted by the batch CLI.
var FlowNames = []string{"externos", "adicionales", "percepciones", "duas", "estado"}

// AllowedExtensions holds the default allowed file extensions for document ingestion.
// Estado-de-cuenta reports arrive as plain-text exports, everything else as PDF.
var AllowedExtensions = map[string]struct{}{
	"pdf": {},
	"txt": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
