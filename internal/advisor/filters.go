package advisor

import (
	"regexp"
	"strings"
	"time"
)

// Filters carries whatever intent could be pulled out of a free-text
// question: a date window and keyword terms. All fields beyond UserID are
// optional.
type Filters struct {
	UserID    string   `json:"user_id"`
	StartDate string   `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate   string   `json:"end_date,omitempty"`   // YYYY-MM-DD
	Keywords  []string `json:"keywords,omitempty"`
}

var (
	isoDateRe = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	monthRe   = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\b(?:\s+(\d{4}))?`)
)

var monthIndex = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

// stopwords is a small fixed set; enough to keep filler out of the keyword
// list without dragging in an NLP dependency.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "i": {}, "my": {}, "me": {}, "is": {},
	"was": {}, "are": {}, "be": {}, "of": {}, "in": {}, "on": {}, "at": {},
	"to": {}, "for": {}, "and": {}, "or": {}, "what": {}, "which": {},
	"how": {}, "much": {}, "many": {}, "did": {}, "do": {}, "does": {},
	"spend": {}, "spent": {}, "show": {}, "tell": {}, "about": {},
	"this": {}, "that": {}, "last": {}, "month": {}, "week": {}, "year": {},
	"today": {}, "yesterday": {}, "expense": {}, "expenses": {},
}

// ExtractFilters pulls a user id, a date range, and keyword terms out of a
// question. now anchors the relative phrases ("this month", "last month").
func ExtractFilters(question, userID string, now time.Time) Filters {
	f := Filters{UserID: userID}
	q := strings.ToLower(question)

	if start, end, ok := extractDateRange(q, now); ok {
		f.StartDate = start
		f.EndDate = end
	}
	f.Keywords = extractKeywords(q)
	return f
}

func extractDateRange(q string, now time.Time) (string, string, bool) {
	// Explicit ISO dates win; the first is the start, the second (if any)
	// the end.
	if dates := isoDateRe.FindAllString(q, 2); len(dates) > 0 {
		start := dates[0]
		end := start
		if len(dates) > 1 {
			end = dates[1]
		}
		return start, end, true
	}

	switch {
	case strings.Contains(q, "today"):
		d := now.Format("2006-01-02")
		return d, d, true
	case strings.Contains(q, "yesterday"):
		d := now.AddDate(0, 0, -1).Format("2006-01-02")
		return d, d, true
	case strings.Contains(q, "this week"):
		weekday := int(now.Weekday())
		start := now.AddDate(0, 0, -weekday)
		return start.Format("2006-01-02"), now.Format("2006-01-02"), true
	case strings.Contains(q, "this month"):
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start.Format("2006-01-02"), now.Format("2006-01-02"), true
	case strings.Contains(q, "last month"):
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		start := first.AddDate(0, -1, 0)
		end := first.AddDate(0, 0, -1)
		return start.Format("2006-01-02"), end.Format("2006-01-02"), true
	}

	if m := monthRe.FindStringSubmatch(q); m != nil {
		year := now.Year()
		if m[2] != "" {
			if y, err := time.Parse("2006", m[2]); err == nil {
				year = y.Year()
			}
		}
		month := monthIndex[m[1]]
		start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return start.Format("2006-01-02"), end.Format("2006-01-02"), true
	}

	return "", "", false
}

var wordRe = regexp.MustCompile(`[a-z][a-z0-9']*`)

func extractKeywords(q string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, w := range wordRe.FindAllString(q, -1) {
		if _, stop := stopwords[w]; stop {
			continue
		}
		if len(w) < 3 {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// InRange reports whether an expense date string falls inside the filter
// window. Unparseable dates are kept; dropping data the user submitted is
// worse than over-including it.
func (f Filters) InRange(date string) bool {
	if f.StartDate == "" {
		return true
	}
	d := strings.TrimSpace(date)
	if len(d) > 10 {
		d = d[:10]
	}
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return true
	}
	start, err := time.Parse("2006-01-02", f.StartDate)
	if err != nil {
		return true
	}
	end, err := time.Parse("2006-01-02", f.EndDate)
	if err != nil {
		return true
	}
	return !t.Before(start) && !t.After(end)
}
