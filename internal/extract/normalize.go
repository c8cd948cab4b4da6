package extract

import (
	"regexp"
	"strings"
)

var (
	// Everything except word characters, whitespace and ". , : -" becomes a
	// space; label patterns sometimes only match after OCR punctuation noise
	// is cleared out this way.
	nonTextRe    = regexp.MustCompile(`[^\w\s.,:\-]`)
	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// Document is the line-oriented view of one recognized receipt text.
// It is built once per extraction call and never mutated.
type Document struct {
	// RawLines are the trimmed non-empty lines of the original text.
	RawLines []string
	// NormLines are the same lines after punctuation normalization.
	NormLines []string
}

// Normalize splits raw OCR text into the two line sequences the matching
// strategies scan. Empty input yields empty sequences.
func Normalize(raw string) *Document {
	doc := &Document{}
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		doc.RawLines = append(doc.RawLines, trimmed)
	}

	cleaned := nonTextRe.ReplaceAllString(raw, " ")
	for _, line := range strings.Split(cleaned, "\n") {
		collapsed := strings.TrimSpace(multiSpaceRe.ReplaceAllString(line, " "))
		if collapsed == "" {
			continue
		}
		doc.NormLines = append(doc.NormLines, collapsed)
	}
	return doc
}

// AllLines returns the raw lines followed by the normalized lines, the scan
// order used by the labeled-total matcher.
func (d *Document) AllLines() []string {
	out := make([]string, 0, len(d.RawLines)+len(d.NormLines))
	out = append(out, d.RawLines...)
	out = append(out, d.NormLines...)
	return out
}

// TrailingLines returns the last n raw lines. Totals conventionally sit near
// the end of a receipt.
func (d *Document) TrailingLines(n int) []string {
	if n <= 0 || len(d.RawLines) <= n {
		return d.RawLines
	}
	return d.RawLines[len(d.RawLines)-n:]
}
