package extract

import "regexp"

const labeledConfidence = 95

// num matches currency-like tokens: plain, zero-padded, thousands-grouped,
// with an optional two-place decimal part.
const num = `([0-9][0-9,]*(?:\.[0-9]{1,2})?)`

// cur eats an optional currency marker between label and value.
const cur = `(?:rs\.?|inr|usd|\$|₹)?\s*`

// labeledPatterns is the priority-ordered table of explicit total labels.
// The first pattern that matches a line (scanning lines in document order)
// with a plausible value wins; ties within one line go to the earlier
// pattern, never to the larger value.
var labeledPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)grand\s*total\s*[:\-]?\s*` + cur + num),
	regexp.MustCompile(`(?i)net\s*(?:total|amount|payable)\s*[:\-]?\s*` + cur + num),
	regexp.MustCompile(`(?i)total\s*amount\s*[:\-]?\s*` + cur + num),
	regexp.MustCompile(`(?i)amount\s*(?:payable|due)\s*[:\-]?\s*` + cur + num),
	regexp.MustCompile(`(?i)bill\s*amount\s*[:\-]?\s*` + cur + num),
	regexp.MustCompile(`(?i)total\s*(?:due|paid)\s*[:\-]?\s*` + cur + num),
	regexp.MustCompile(`(?i)invoice\s*(?:total|value)\s*[:\-]?\s*` + cur + num),
	regexp.MustCompile(`(?i)\btotal\s*[:\-]\s*` + cur + num),
	regexp.MustCompile(`(?i)\bamount\s*[:\-]\s*` + cur + num),
	regexp.MustCompile(`(?i)\bbill\s*[:\-]\s*` + cur + num),
}

// subTotalRe guards against "sub total" lines matching the bare total
// patterns.
var subTotalRe = regexp.MustCompile(`(?i)sub[\s\-]*total`)

type labeledTotalStrategy struct{}

func newLabeledTotalStrategy() labeledTotalStrategy { return labeledTotalStrategy{} }

func (labeledTotalStrategy) Name() string { return "labeled-total" }

// Attempt scans raw lines then normalized lines against the pattern table.
// Within each line, patterns apply in priority order.
func (labeledTotalStrategy) Attempt(doc *Document) (Candidate, bool) {
	for _, line := range doc.AllLines() {
		if subTotalRe.MatchString(line) {
			continue
		}
		for _, pat := range labeledPatterns {
			m := pat.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			v, amount, ok := parseAmount(m[1])
			if !ok || v < minLabeledAmount || v >= maxPlausibleTotal {
				continue
			}
			return Candidate{
				Value:      v,
				Amount:     amount,
				Line:       line,
				Confidence: labeledConfidence,
				Strategy:   "labeled-total",
			}, true
		}
	}
	return Candidate{}, false
}
