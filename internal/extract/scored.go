package extract

import (
	"regexp"
	"sort"
	"strings"
)

const scoredCap = 85

// tokenRe pulls currency-like tokens out of a line: decimal amounts,
// thousands-grouped integers, zero-padded integers, plain integers.
var tokenRe = regexp.MustCompile(`[0-9][0-9,]*(?:\.[0-9]{1,2})?`)

var explicitTotalRe = regexp.MustCompile(`(?i)\btotal\s*:`)

type scoredStrategy struct{}

func newScoredStrategy() scoredStrategy { return scoredStrategy{} }

func (scoredStrategy) Name() string { return "scored" }

// scoreToken rates one token by independent additive signals: decimal
// presence, being the trailing token of its line, magnitude steps, and
// contextual keywords on the same line.
func scoreToken(token string, value float64, lastOnLine bool, line string) int {
	score := 0
	if hasDecimal(token) {
		score += 10
	}
	if lastOnLine {
		score += 10
	}
	if value >= 100 {
		score += 5
	}
	if value >= 500 {
		score += 5
	}
	if value >= 1000 {
		score += 10
	}
	if value >= 5000 {
		score += 5
	}

	lower := strings.ToLower(line)
	switch {
	case strings.Contains(lower, "total"):
		score += 30
	case strings.Contains(lower, "amount"), strings.Contains(lower, "bill"):
		score += 15
	}
	if explicitTotalRe.MatchString(line) {
		score += 10
	}
	return score
}

// Attempt collects every plausible token in the trailing lines, scores them,
// and returns the best one. The extractor accepts it only when its score
// beats whatever earlier strategies produced; confidence is capped at 85.
func (scoredStrategy) Attempt(doc *Document) (Candidate, bool) {
	var candidates []Candidate
	for _, line := range doc.TrailingLines(trailingWindow) {
		if isDenied(line) || subTotalRe.MatchString(line) {
			continue
		}
		tokens := tokenRe.FindAllString(line, -1)
		for i, token := range tokens {
			v, amount, ok := parseAmount(token)
			if !ok || v < minScoredAmount || v >= maxPlausibleTotal {
				continue
			}
			score := scoreToken(token, v, i == len(tokens)-1, line)
			if score <= 0 {
				continue
			}
			if score > scoredCap {
				score = scoredCap
			}
			candidates = append(candidates, Candidate{
				Value:      v,
				Amount:     amount,
				Line:       line,
				Confidence: score,
				Strategy:   "scored",
			})
		}
	}
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})
	return candidates[0], true
}
