package constants

import (
	"strings"
)

type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Entertainment Category = "Entertainment"
	Bills         Category = "Bills"
	Health        Category = "Health"
	Education     Category = "Education"
	Other         Category = "Other"
)

var allCategories = []Category{
	Food,
	Transport,
	Shopping,
	Entertainment,
	Bills,
	Health,
	Education,
	Other,
}

// DefaultGlyph is used for user-defined custom categories.
const DefaultGlyph = "💰"

var glyphs = map[Category]string{
	Food:          "🍔",
	Transport:     "🚗",
	Shopping:      "🛍️",
	Entertainment: "🎬",
	Bills:         "🧾",
	Health:        "💊",
	Education:     "📚",
	Other:         "💰",
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Glyph returns the icon glyph for a preset category, or DefaultGlyph
// for anything else.
func Glyph(c Category) string {
	if g, ok := glyphs[c]; ok {
		return g
	}
	return DefaultGlyph
}

// IsPreset reports whether name matches one of the fixed categories,
// case-insensitively.
func IsPreset(name string) bool {
	_, ok := Canonicalize(name)
	return ok
}

func Canonicalize(input string) (Category, bool) {
	if input == "" {
		return Other, false
	}

	normalized := strings.ToLower(strings.TrimSpace(input))

	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}

	return Other, false
}
