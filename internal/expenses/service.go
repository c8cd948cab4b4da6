package expenses

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"budgetbot/constants"
	"budgetbot/internal/common"
	"budgetbot/internal/entity"
	"budgetbot/internal/repository"
)

// CreateRequest carries one expense to record. Icon is optional; when
// empty the service derives it from the category.
type CreateRequest struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description *string `json:"description,omitempty"`
	Icon        string  `json:"icon,omitempty"`
}

// Service owns expense CRUD rules: validation, category canonicalization,
// and owner scoping.
type Service struct {
	repo   repository.ExpenseRepository
	logger *slog.Logger
}

func NewService(repo repository.ExpenseRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Create validates and stores a new expense for userID.
func (s *Service) Create(ctx context.Context, userID string, req CreateRequest) (*entity.Expense, error) {
	v := common.NewValidator()
	v.Field("user_id", userID, common.Required)
	v.Field("amount", req.Amount, common.PositiveAmount)
	v.Field("category", req.Category, common.Required, common.LengthBetween(2, 20))
	if err := v.Error(); err != nil {
		return nil, err
	}

	category := strings.TrimSpace(req.Category)
	icon := req.Icon
	// Preset names fold to their canonical spelling and glyph; anything
	// else is stored as the user wrote it.
	if canonical, ok := constants.Canonicalize(category); ok {
		category = string(canonical)
		if icon == "" {
			icon = constants.Glyph(canonical)
		}
	} else if icon == "" {
		icon = constants.DefaultGlyph
	}

	expense := &entity.Expense{
		UserID:      userID,
		Amount:      req.Amount,
		Category:    category,
		Description: req.Description,
		Icon:        icon,
	}
	return s.repo.Create(ctx, expense)
}

// List returns the user's expenses, optionally windowed by date. A from
// date without a to date means "from then until now".
func (s *Service) List(ctx context.Context, userID string, from, to *time.Time) ([]*entity.Expense, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, common.ValidationErrorf("user_id is required")
	}
	if from != nil && to == nil {
		now := time.Now().UTC()
		to = &now
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, common.ValidationErrorf("date window end precedes start")
	}
	return s.repo.ListByUser(ctx, userID, from, to)
}

// Delete removes one of the user's expenses. Deleting an expense that does
// not exist, or that belongs to someone else, reports not found.
func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	if strings.TrimSpace(userID) == "" {
		return common.ValidationErrorf("user_id is required")
	}
	if id == uuid.Nil {
		return common.ValidationErrorf("expense id is required")
	}
	return s.repo.Delete(ctx, userID, id)
}
