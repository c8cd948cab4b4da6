package extract

import (
	"regexp"
	"strings"
)

const (
	positionalConfidence = 90
	trailingWindow       = 15
)

// denyWords flags lines that carry numbers which are never the bill total:
// contact details, tax registration ids, fuel-pump telemetry and the like.
var denyWords = []string{
	"phone", "tel", "mobile", "contact",
	"gst", "gstin", "tin", "vat", "fssai", "tax id", "pan",
	"pump", "nozzle", "density", "vehicle", "veh no", "odometer", "mileage",
	"invoice no", "bill no", "receipt no", "order no", "token",
	"cashier", "customer id", "card no",
}

// lineTotalRe is the line-level "total: N" form the positional scan accepts.
var lineTotalRe = regexp.MustCompile(`(?i)\btotal\b\s*[:\-]?\s*` + cur + num)

type positionalStrategy struct{}

func newPositionalStrategy() positionalStrategy { return positionalStrategy{} }

func (positionalStrategy) Name() string { return "positional" }

func isDenied(line string) bool {
	lower := strings.ToLower(line)
	for _, w := range denyWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Attempt scans the trailing lines for a total-labeled value, skipping
// denylisted lines and sub-totals.
func (positionalStrategy) Attempt(doc *Document) (Candidate, bool) {
	for _, line := range doc.TrailingLines(trailingWindow) {
		if isDenied(line) || subTotalRe.MatchString(line) {
			continue
		}
		m := lineTotalRe.FindStringSubmatch(line)
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
			Confidence: positionalConfidence,
			Strategy:   "positional",
		}, true
	}
	return Candidate{}, false
}
