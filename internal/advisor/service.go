package advisor

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"budgetbot/internal/common"
)

// Service answers spending questions. It filters the submitted expenses,
// builds a grounded prompt for the hosted model, and falls back to local
// analysis whenever the model cannot answer.
type Service struct {
	generator Generator
	schema    map[string]any
	logger    *slog.Logger
	now       func() time.Time
}

func NewService(generator Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		generator: generator,
		schema:    BuildQuerySchema(),
		logger:    logger,
		now:       time.Now,
	}
}

// ValidatePayload checks a raw request body against the advisor schema.
func (s *Service) ValidatePayload(body []byte) error {
	if err := ValidateAgainstSchema(s.schema, body); err != nil {
		return common.ValidationErrorf("invalid advisor request: %v", err)
	}
	return nil
}

// Query answers the question using the expenses the caller supplied. The
// returned Advice always has an answer; infrastructure failures downgrade
// the response to local analysis instead of surfacing an error.
func (s *Service) Query(ctx context.Context, userID string, req QueryRequest) Advice {
	start := time.Now()
	s.logger.Info("advisor.query.start", "user_id", userID, "expenses", len(req.Expenses))

	filters := ExtractFilters(req.Question, userID, s.now())
	scoped := s.applyFilters(req.Expenses, filters)
	if len(scoped) == 0 {
		// A too-narrow window should not produce an empty answer.
		scoped = req.Expenses
	}

	contextUsed := FormatContext(scoped)
	advice := Advice{
		ContextUsed: contextUsed,
		Metadata:    filters,
		NumExpenses: len(scoped),
	}

	if s.generator == nil {
		advice.Answer = LocalAnalysis(req.Question, scoped)
		s.logger.Info("advisor.query.complete", "source", "local", "elapsed_ms", time.Since(start).Milliseconds())
		return advice
	}

	answer, err := s.generator.Generate(ctx, BuildPrompt(req.Question, contextUsed))
	if err != nil {
		s.logger.Warn("advisor.query.fallback", "error", err)
		advice.Answer = LocalAnalysis(req.Question, scoped)
		s.logger.Info("advisor.query.complete", "source", "local", "elapsed_ms", time.Since(start).Milliseconds())
		return advice
	}

	advice.Answer = answer
	s.logger.Info("advisor.query.complete", "source", "model", "elapsed_ms", time.Since(start).Milliseconds())
	return advice
}

// applyFilters keeps expenses that belong to the user, fall inside the date
// window, and (when keywords were found) mention at least one keyword.
func (s *Service) applyFilters(expenses []ExpenseItem, f Filters) []ExpenseItem {
	var out []ExpenseItem
	for _, e := range expenses {
		if f.UserID != "" && e.UserID != "" && e.UserID != f.UserID {
			continue
		}
		if !f.InRange(e.Date) {
			continue
		}
		out = append(out, e)
	}
	if len(f.Keywords) == 0 {
		return out
	}
	var matched []ExpenseItem
	for _, e := range out {
		if matchesKeywords(e, f.Keywords) {
			matched = append(matched, e)
		}
	}
	if len(matched) == 0 {
		// Keywords are a hint; when nothing matches, answer from the
		// date-scoped set instead.
		return out
	}
	return matched
}

func matchesKeywords(e ExpenseItem, keywords []string) bool {
	text := strings.ToLower(e.Category + " " + e.Description)
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
