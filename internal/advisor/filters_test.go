package advisor

import (
	"testing"
	"time"
)

var anchor = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func TestExtractFiltersDateRanges(t *testing.T) {
	cases := []struct {
		name     string
		question string
		start    string
		end      string
	}{
		{"explicit range", "spending between 2026-08-01 and 2026-08-15", "2026-08-01", "2026-08-15"},
		{"single date", "what did I buy on 2026-08-10", "2026-08-10", "2026-08-10"},
		{"today", "how much did I spend today", "2026-09-01", "2026-09-01"},
		{"yesterday", "show yesterday's expenses", "2026-08-31", "2026-08-31"},
		{"this month", "total for this month", "2026-09-01", "2026-09-01"},
		{"last month", "how much last month", "2026-08-01", "2026-08-31"},
		{"month name", "spending in july", "2026-07-01", "2026-07-31"},
		{"month with year", "spending in february 2024", "2024-02-01", "2024-02-29"},
		{"no date", "what is my biggest expense", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := ExtractFilters(tc.question, "u1", anchor)
			if f.StartDate != tc.start || f.EndDate != tc.end {
				t.Errorf("window = %q..%q, want %q..%q", f.StartDate, f.EndDate, tc.start, tc.end)
			}
		})
	}
}

func TestExtractFiltersKeywords(t *testing.T) {
	f := ExtractFilters("how much did I spend on groceries and petrol", "u1", anchor)

	want := map[string]bool{"groceries": false, "petrol": false}
	for _, kw := range f.Keywords {
		if _, ok := want[kw]; ok {
			want[kw] = true
		}
	}
	for kw, found := range want {
		if !found {
			t.Errorf("keyword %q missing from %v", kw, f.Keywords)
		}
	}
	for _, kw := range f.Keywords {
		if kw == "how" || kw == "much" || kw == "did" || kw == "spend" {
			t.Errorf("stopword %q leaked into keywords", kw)
		}
	}
}

func TestFiltersInRange(t *testing.T) {
	f := Filters{StartDate: "2026-08-01", EndDate: "2026-08-31"}

	if !f.InRange("2026-08-15") {
		t.Error("mid-window date should be in range")
	}
	if !f.InRange("2026-08-15T10:30:00") {
		t.Error("timestamped date should be in range")
	}
	if f.InRange("2026-09-01") {
		t.Error("date after the window should be out of range")
	}
	if !f.InRange("not a date") {
		t.Error("unparseable dates are kept")
	}
	if !(Filters{}).InRange("2020-01-01") {
		t.Error("no window means everything is in range")
	}
}
