package advisor

import "context"

// ExpenseItem is one expense as submitted by the frontend for analysis.
// Dates travel as strings because the caller sends whatever the database
// returned; parsing happens where it is needed.
type ExpenseItem struct {
	UserID      string  `json:"user_id"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}

// QueryRequest is the payload of POST /api/query-advisor.
type QueryRequest struct {
	Question string        `json:"question"`
	Expenses []ExpenseItem `json:"expenses"`
}

// Advice is the advisor's answer plus the context it was grounded on.
type Advice struct {
	Answer      string  `json:"answer"`
	ContextUsed string  `json:"context_used"`
	Metadata    Filters `json:"metadata"`
	NumExpenses int     `json:"num_chunks"`
}

// Generator produces text for a prompt. The hosted-model client implements
// it; tests substitute their own.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
