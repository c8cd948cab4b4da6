package extract

const fallbackConfidence = 25

type fallbackStrategy struct{}

func newFallbackStrategy() fallbackStrategy { return fallbackStrategy{} }

func (fallbackStrategy) Name() string { return "fallback" }

// Attempt sweeps the entire document for numeric tokens and returns the
// largest one in the broad plausibility band. Absent structural cues, the
// total is statistically likely to be among the largest figures present.
func (fallbackStrategy) Attempt(doc *Document) (Candidate, bool) {
	best := Candidate{}
	found := false
	for _, line := range doc.RawLines {
		for _, token := range tokenRe.FindAllString(line, -1) {
			v, amount, ok := parseAmount(token)
			if !ok || v < minLabeledAmount || v >= maxFallbackTotal {
				continue
			}
			if !found || v > best.Value {
				best = Candidate{
					Value:      v,
					Amount:     amount,
					Line:       line,
					Confidence: fallbackConfidence,
					Strategy:   "fallback",
				}
				found = true
			}
		}
	}
	return best, found
}
