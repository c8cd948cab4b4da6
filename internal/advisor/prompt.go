package advisor

import (
	"fmt"
	"strings"
	"time"
)

// BuildPrompt composes the instruction block sent to the hosted model. The
// answer format (Direct Answer / Supporting Details / Actionable
// Recommendations) is the same one the local fallback emits, so the frontend
// renders both identically.
func BuildPrompt(question, context string) string {
	var b strings.Builder
	b.WriteString("**Role:** You are a financial analysis AI specialized in expense tracking and budgeting.\n\n")
	b.WriteString("**Objective:** Analyze user spending data and provide accurate, simple-to-understand answers strictly using the given context.\n\n")
	b.WriteString("**Context:**\n")
	b.WriteString(context)
	b.WriteString("\n\n**Instructions:**\n")
	b.WriteString("**Instruction 1:** Answer only based on context.\n")
	b.WriteString("**Instruction 2:** Explain in simple language for non-experts.\n")
	b.WriteString("**Instruction 3:** Use bullet points if suitable.\n")
	b.WriteString("**Instruction 4:** If context is insufficient, state \"Not enough information to answer.\"\n")
	b.WriteString("**Instruction 5:** Provide your output in 3 short sections:\n")
	b.WriteString("   - Direct Answer\n")
	b.WriteString("   - Supporting Details\n")
	b.WriteString("   - Actionable Recommendations\n\n")
	b.WriteString("**Notes:**\n")
	b.WriteString("- Do not hallucinate information.\n")
	b.WriteString("- Be concise and actionable.\n")
	b.WriteString("- Explain financial terms briefly if used.\n")
	b.WriteString("- Use bullet points for clarity.\n\n")
	b.WriteString("Question:\n")
	b.WriteString(question)
	b.WriteString("\n")
	return b.String()
}

// FormatContext renders one line per expense for the prompt context. Empty
// descriptions are omitted rather than rendered as "Description: ".
func FormatContext(expenses []ExpenseItem) string {
	lines := make([]string, 0, len(expenses))
	for _, e := range expenses {
		parts := []string{
			"Date: " + formatDate(e.Date),
			fmt.Sprintf("Amount: ₹%.2f", e.Amount),
			"Category: " + e.Category,
		}
		if d := strings.TrimSpace(e.Description); d != "" {
			parts = append(parts, "Description: "+d)
		}
		lines = append(lines, strings.Join(parts, ", "))
	}
	return strings.Join(lines, "\n")
}

// formatDate renders an ISO-ish date as "January 2, 2006", falling back to
// the raw string when it cannot be parsed.
func formatDate(s string) string {
	raw := strings.TrimSpace(s)
	for _, layout := range []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
	} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("January 2, 2006")
		}
	}
	return raw
}
