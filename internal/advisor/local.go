package advisor

import (
	"fmt"
	"sort"
	"strings"
)

type summary struct {
	total      float64
	count      int
	byCategory map[string]float64
	biggest    ExpenseItem
}

func summarize(expenses []ExpenseItem) summary {
	s := summary{byCategory: map[string]float64{}}
	for _, e := range expenses {
		s.total += e.Amount
		s.count++
		s.byCategory[e.Category] += e.Amount
		if e.Amount > s.biggest.Amount {
			s.biggest = e
		}
	}
	return s
}

func (s summary) topCategories(n int) []string {
	names := make([]string, 0, len(s.byCategory))
	for name := range s.byCategory {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if s.byCategory[names[i]] != s.byCategory[names[j]] {
			return s.byCategory[names[i]] > s.byCategory[names[j]]
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// LocalAnalysis answers a question from the submitted expenses alone, with
// no model call. It is the fallback path when the hosted model is
// unreachable, and the whole answer when no generator is configured.
func LocalAnalysis(question string, expenses []ExpenseItem) string {
	if len(expenses) == 0 {
		return "Direct Answer: I could not find any expenses to analyze.\n\n" +
			"Supporting Details: No expense records were provided with your question.\n\n" +
			"Actionable Recommendations: Add a few expenses first, then ask again."
	}

	s := summarize(expenses)
	q := strings.ToLower(question)

	switch {
	case containsAny(q, "biggest", "largest", "highest", "most expensive"):
		return biggestAnswer(s)
	case matchedCategory(q, s) != "":
		return categoryAnswer(matchedCategory(q, s), s)
	case containsAny(q, "save", "saving", "savings", "reduce", "cut down"):
		return savingsAnswer(s)
	case containsAny(q, "total", "how much", "overall", "altogether"):
		return totalAnswer(s)
	default:
		return overviewAnswer(s)
	}
}

func containsAny(q string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(q, t) {
			return true
		}
	}
	return false
}

func matchedCategory(q string, s summary) string {
	for name := range s.byCategory {
		if name != "" && strings.Contains(q, strings.ToLower(name)) {
			return name
		}
	}
	return ""
}

func biggestAnswer(s summary) string {
	b := s.biggest
	desc := b.Description
	if desc == "" {
		desc = b.Category
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Direct Answer: Your biggest expense was ₹%.2f on %s (%s).\n\n", b.Amount, desc, b.Category)
	fmt.Fprintf(&sb, "Supporting Details: Across %d recorded expenses you spent ₹%.2f in total, so this single expense accounts for %.1f%% of your spending.\n\n",
		s.count, s.total, pct(b.Amount, s.total))
	fmt.Fprintf(&sb, "Actionable Recommendations: Review whether expenses of this size in %s are recurring; if they are, set a monthly limit for that category.", b.Category)
	return sb.String()
}

func totalAnswer(s summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Direct Answer: You spent ₹%.2f across %d expenses.\n\n", s.total, s.count)
	sb.WriteString("Supporting Details: ")
	sb.WriteString(categoryBreakdown(s))
	sb.WriteString("\n\n")
	top := s.topCategories(1)
	fmt.Fprintf(&sb, "Actionable Recommendations: %s is your largest category at ₹%.2f; start there if you want to trim spending.",
		top[0], s.byCategory[top[0]])
	return sb.String()
}

func categoryAnswer(name string, s summary) string {
	amt := s.byCategory[name]
	var sb strings.Builder
	fmt.Fprintf(&sb, "Direct Answer: You spent ₹%.2f on %s.\n\n", amt, name)
	fmt.Fprintf(&sb, "Supporting Details: That is %.1f%% of your total spending of ₹%.2f across %d expenses.\n\n",
		pct(amt, s.total), s.total, s.count)
	fmt.Fprintf(&sb, "Actionable Recommendations: Compare this against last month's %s spending to see whether the category is trending up.", name)
	return sb.String()
}

func savingsAnswer(s summary) string {
	top := s.topCategories(2)
	var sb strings.Builder
	fmt.Fprintf(&sb, "Direct Answer: Your best savings opportunity is in %s, where you spent ₹%.2f.\n\n",
		top[0], s.byCategory[top[0]])
	sb.WriteString("Supporting Details: ")
	sb.WriteString(categoryBreakdown(s))
	sb.WriteString("\n\n")
	if len(top) > 1 {
		fmt.Fprintf(&sb, "Actionable Recommendations: Cutting %s spending by 20%% would save about ₹%.2f; %s is the next candidate at ₹%.2f.",
			top[0], s.byCategory[top[0]]*0.2, top[1], s.byCategory[top[1]])
	} else {
		fmt.Fprintf(&sb, "Actionable Recommendations: Cutting %s spending by 20%% would save about ₹%.2f.",
			top[0], s.byCategory[top[0]]*0.2)
	}
	return sb.String()
}

func overviewAnswer(s summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Direct Answer: You have %d recorded expenses totaling ₹%.2f.\n\n", s.count, s.total)
	sb.WriteString("Supporting Details: ")
	sb.WriteString(categoryBreakdown(s))
	sb.WriteString("\n\n")
	top := s.topCategories(1)
	fmt.Fprintf(&sb, "Actionable Recommendations: %s dominates your spending; ask me about it specifically for a closer look.", top[0])
	return sb.String()
}

func categoryBreakdown(s summary) string {
	parts := make([]string, 0, len(s.byCategory))
	for _, name := range s.topCategories(len(s.byCategory)) {
		parts = append(parts, fmt.Sprintf("%s ₹%.2f", name, s.byCategory[name]))
	}
	return "By category: " + strings.Join(parts, ", ") + "."
}

func pct(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
