package utils

import (
	"path/filepath"
	"strings"
)

// allowedExtensions are the upload formats we can extract text from
var allowedExtensions = map[string]bool{
	"txt": true,
	"pdf": true,
}

// FileExtension returns the lowercased extension of a filename without the dot.
func FileExtension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// AllowedFile reports whether a filename carries a supported upload extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[FileExtension(filename)]
}

// ExtractText converts uploaded file bytes to plain text based on the file
// extension. Unsupported extensions yield an empty string, not an error; a
// recognized extension with no extractable text also yields an empty string.
func ExtractText(data []byte, ext string) (string, error) {
	switch strings.ToLower(ext) {
	case "txt":
		// Mirror a lenient UTF-8 decode: invalid byte sequences are dropped
		return strings.ToValidUTF8(string(data), ""), nil
	case "pdf":
		return ExtractPDFText(data)
	default:
		return "", nil
	}
}
