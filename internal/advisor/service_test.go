package advisor

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type stubGenerator struct {
	answer string
	err    error
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	return s.answer, s.err
}

func sampleExpenses() []ExpenseItem {
	return []ExpenseItem{
		{UserID: "u1", Amount: 450, Category: "Food", Description: "groceries", Date: "2026-08-03"},
		{UserID: "u1", Amount: 1200, Category: "Bills", Description: "electricity bill", Date: "2026-08-10"},
		{UserID: "u1", Amount: 300, Category: "Transport", Description: "fuel", Date: "2026-08-21"},
	}
}

func TestQueryUsesModelAnswer(t *testing.T) {
	gen := &stubGenerator{answer: "You spent most on Bills."}
	svc := NewService(gen, nil)

	advice := svc.Query(context.Background(), "u1", QueryRequest{
		Question: "what was my biggest expense",
		Expenses: sampleExpenses(),
	})

	if advice.Answer != "You spent most on Bills." {
		t.Fatalf("answer = %q, want model answer", advice.Answer)
	}
	if advice.NumExpenses != 3 {
		t.Errorf("num expenses = %d, want 3", advice.NumExpenses)
	}
	if !strings.Contains(gen.prompt, "electricity bill") {
		t.Errorf("prompt missing expense context:\n%s", gen.prompt)
	}
}

func TestQueryFallsBackToLocalAnalysis(t *testing.T) {
	gen := &stubGenerator{err: errors.New("model loading")}
	svc := NewService(gen, nil)

	advice := svc.Query(context.Background(), "u1", QueryRequest{
		Question: "what was my biggest expense",
		Expenses: sampleExpenses(),
	})

	if !strings.Contains(advice.Answer, "Direct Answer") {
		t.Fatalf("fallback answer missing template sections: %q", advice.Answer)
	}
	if !strings.Contains(advice.Answer, "₹1200.00") {
		t.Errorf("fallback answer should name the biggest expense: %q", advice.Answer)
	}
}

func TestQueryWithoutGeneratorAnswersLocally(t *testing.T) {
	svc := NewService(nil, nil)

	advice := svc.Query(context.Background(), "u1", QueryRequest{
		Question: "how much did I spend in total",
		Expenses: sampleExpenses(),
	})

	if !strings.Contains(advice.Answer, "₹1950.00") {
		t.Fatalf("total missing from answer: %q", advice.Answer)
	}
}

func TestQueryDateWindowNarrowsContext(t *testing.T) {
	svc := NewService(nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	advice := svc.Query(context.Background(), "u1", QueryRequest{
		Question: "how much did I spend between 2026-08-01 and 2026-08-15",
		Expenses: sampleExpenses(),
	})

	if advice.NumExpenses != 2 {
		t.Fatalf("num expenses = %d, want 2 inside the window", advice.NumExpenses)
	}
	if advice.Metadata.StartDate != "2026-08-01" || advice.Metadata.EndDate != "2026-08-15" {
		t.Errorf("window = %s..%s", advice.Metadata.StartDate, advice.Metadata.EndDate)
	}
}

func TestQueryEmptyWindowFallsBackToAllExpenses(t *testing.T) {
	svc := NewService(nil, nil)
	svc.now = func() time.Time { return time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC) }

	advice := svc.Query(context.Background(), "u1", QueryRequest{
		Question: "what did I spend on 2020-01-01",
		Expenses: sampleExpenses(),
	})

	if advice.NumExpenses != 3 {
		t.Fatalf("num expenses = %d, want all 3 when the window matches nothing", advice.NumExpenses)
	}
}

func TestValidatePayload(t *testing.T) {
	svc := NewService(nil, nil)

	valid := []byte(`{"question":"total?","expenses":[{"user_id":"u1","amount":10,"category":"Food","description":"","date":"2026-08-01"}]}`)
	if err := svc.ValidatePayload(valid); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}

	cases := []struct {
		name string
		body string
	}{
		{"missing question", `{"expenses":[{"user_id":"u1","amount":10,"category":"Food","description":"","date":"2026-08-01"}]}`},
		{"empty expenses", `{"question":"total?","expenses":[]}`},
		{"expense missing date", `{"question":"total?","expenses":[{"user_id":"u1","amount":10,"category":"Food","description":""}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := svc.ValidatePayload([]byte(tc.body)); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
