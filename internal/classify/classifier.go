// Package classify maps free text to one of the fixed expense categories by
// keyword containment. It is a rule table, not a model: matching is ordered,
// first hit wins, and ties resolve purely by table order.
package classify

import (
	"strings"

	"budgetbot/constants"
)

type entry struct {
	category constants.Category
	keywords []string
}

// KeywordClassifier is constructed and loaded explicitly by whoever composes
// the pipeline; there is no package-level singleton.
type KeywordClassifier struct {
	table []entry
	ready bool
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{}
}

// Load builds the keyword table. It never fails today but keeps the error
// return so a file- or DB-backed table can slot in behind the same lifecycle.
func (c *KeywordClassifier) Load() error {
	c.table = []entry{
		{constants.Food, []string{
			"food", "lunch", "dinner", "breakfast", "restaurant", "cafe",
			"coffee", "tea", "pizza", "burger", "grocery", "groceries",
			"snack", "snacks", "meal", "bakery", "juice", "swiggy", "zomato",
		}},
		{constants.Transport, []string{
			"fuel", "petrol", "diesel", "taxi", "cab", "uber", "ola", "bus",
			"train", "metro", "auto", "rickshaw", "parking", "toll",
			"flight", "airline", "transport",
		}},
		{constants.Shopping, []string{
			"shopping", "mall", "amazon", "flipkart", "myntra", "clothes",
			"clothing", "shoes", "apparel", "mart", "store", "boutique",
		}},
		{constants.Entertainment, []string{
			"movie", "cinema", "netflix", "spotify", "prime", "game",
			"gaming", "concert", "theatre", "theater", "entertainment",
		}},
		{constants.Bills, []string{
			"bill", "electricity", "water bill", "internet", "wifi",
			"broadband", "recharge", "postpaid", "prepaid", "dth", "rent",
			"maintenance", "subscription",
		}},
		{constants.Health, []string{
			"medicine", "medicines", "pharmacy", "chemist", "hospital",
			"doctor", "clinic", "medical", "lab", "diagnostic", "health",
		}},
		{constants.Education, []string{
			"book", "books", "course", "school", "college", "tuition",
			"fees", "exam", "stationery", "education",
		}},
	}
	c.ready = true
	return nil
}

// Ready reports whether Load has run.
func (c *KeywordClassifier) Ready() bool {
	return c.ready
}

// Classify returns the first preset whose keyword set matches the input, in
// table order. A keyword matches when it equals the input, is contained in
// it, contains it, or equals any whitespace-split word of it. When nothing
// matches, the trimmed input itself is returned as a custom category with
// the default glyph; the caller decides whether to offer it.
func (c *KeywordClassifier) Classify(text string) (string, string, bool) {
	input := strings.ToLower(strings.TrimSpace(text))
	if input == "" {
		return string(constants.Other), constants.Glyph(constants.Other), false
	}

	words := strings.Fields(input)
	if c.ready {
		for _, e := range c.table {
			for _, kw := range e.keywords {
				if matches(input, words, kw) {
					return string(e.category), constants.Glyph(e.category), false
				}
			}
		}
	}

	return strings.TrimSpace(text), constants.DefaultGlyph, true
}

func matches(input string, words []string, kw string) bool {
	if input == kw || strings.Contains(input, kw) || strings.Contains(kw, input) {
		return true
	}
	for _, w := range words {
		if w == kw {
			return true
		}
	}
	return false
}
