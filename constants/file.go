package constants

import "strings"

// AllowedExtensions holds the accepted file extensions for receipt uploads.
var AllowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
	"bmp":  {},
}

// DefaultOCRLanguage is passed to the OCR collaborator when the caller
// does not specify one.
const DefaultOCRLanguage = "eng"

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
