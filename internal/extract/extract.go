package extract

import (
	"log/slog"
	"strconv"
	"strings"
)

// Plausibility bounds. The labeled and positional strategies accept anything
// from minLabeledAmount up; the scorer demands a slightly more money-looking
// minimum; the fallback sweeps a broad band as a last resort.
const (
	minLabeledAmount  = 10
	minScoredAmount   = 50
	maxPlausibleTotal = 1_000_000
	maxFallbackTotal  = 10_000_000
)

// Candidate is one numeric guess produced by a scanning strategy.
type Candidate struct {
	Value      float64
	Amount     string // normalized decimal string
	Line       string // evidence line
	Confidence int    // 0..100, ad hoc ranking value, not a probability
	Strategy   string
}

// Result is what the pipeline hands back to the form UI. A zero Amount means
// no plausible total was found and the caller must prompt for manual entry.
type Result struct {
	Amount         string
	Confidence     int
	Category       string
	CategoryIcon   string
	CustomCategory bool
}

// Strategy is one attempt at pulling the total out of a document. Strategies
// run in a fixed order; each either returns a candidate or passes.
type Strategy interface {
	Name() string
	Attempt(doc *Document) (Candidate, bool)
}

// Classifier guesses an expense category from the document text.
type Classifier interface {
	Classify(text string) (category string, icon string, custom bool)
}

// Extractor runs the strategy cascade and the category classifier over one
// recognized document. It holds no mutable state; calls are pure functions of
// the input text.
type Extractor struct {
	strategies []Strategy
	fallback   Strategy
	classifier Classifier
	logger     *slog.Logger
}

func NewExtractor(classifier Classifier, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		strategies: []Strategy{
			newLabeledTotalStrategy(),
			newPositionalStrategy(),
			newScoredStrategy(),
		},
		fallback:   newFallbackStrategy(),
		classifier: classifier,
		logger:     logger,
	}
}

// Extract runs the full pipeline: normalize, labeled match, positional scan,
// scored search, fallback, then category classification.
func (e *Extractor) Extract(raw string) Result {
	doc := Normalize(raw)

	var best Candidate
	found := false
	for _, s := range e.strategies {
		cand, ok := s.Attempt(doc)
		if !ok {
			continue
		}
		if !found || cand.Confidence > best.Confidence {
			best = cand
			found = true
		}
		// A labeled match is as good as this pipeline gets; stop early.
		if best.Confidence >= labeledConfidence {
			break
		}
	}
	if !found {
		if cand, ok := e.fallback.Attempt(doc); ok {
			best = cand
			found = true
		}
	}

	res := Result{}
	if found {
		res.Amount = best.Amount
		res.Confidence = best.Confidence
		e.logger.Debug("extract.amount",
			"strategy", best.Strategy,
			"amount", best.Amount,
			"confidence", best.Confidence,
		)
	} else {
		e.logger.Debug("extract.amount.miss", "lines", len(doc.RawLines))
	}

	if e.classifier != nil {
		res.Category, res.CategoryIcon, res.CustomCategory = e.classifier.Classify(raw)
	}
	return res
}

// parseAmount turns a captured token like "01,250.50" into its numeric value
// and a normalized decimal string ("1250.50"). Reports false for junk.
func parseAmount(token string) (float64, string, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(token), ",", "")
	cleaned = strings.TrimLeft(cleaned, "0")
	if cleaned == "" || cleaned[0] == '.' {
		cleaned = "0" + cleaned
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v <= 0 {
		return 0, "", false
	}
	return v, cleaned, true
}

// hasDecimal reports whether a raw token carries an explicit decimal part.
func hasDecimal(token string) bool {
	return strings.Contains(token, ".")
}
