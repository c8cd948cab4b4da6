package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"budgetbot/internal/common"
	"budgetbot/internal/entity"
)

// ExpenseRepository persists expenses. Every read and write is scoped to
// the owning user; there is no way to reach another user's rows through it.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) (*entity.Expense, error)
	ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]*entity.Expense, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type pgExpenseRepository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewExpenseRepository(pool *pgxpool.Pool, logger *slog.Logger) ExpenseRepository {
	return &pgExpenseRepository{pool: pool, logger: logger}
}

func (r *pgExpenseRepository) Create(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	now := time.Now().UTC()

	const q = `
		INSERT INTO expenses (id, user_id, amount, category, description, icon, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, q,
		expense.ID, expense.UserID, expense.Amount, expense.Category,
		expense.Description, expense.Icon, now, now,
	).Scan(&expense.CreatedAt, &expense.UpdatedAt)
	if err != nil {
		r.logger.Error("expense.create.failed", "user_id", expense.UserID, "error", err)
		return nil, common.NewAppError("DB", "failed to create expense", common.ErrDatabase)
	}

	r.logger.Info("expense.create.complete", "expense_id", expense.ID, "user_id", expense.UserID)
	return expense, nil
}

func (r *pgExpenseRepository) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]*entity.Expense, error) {
	q := `
		SELECT id, user_id, amount, category, description, icon, created_at, updated_at
		FROM expenses
		WHERE user_id = $1`
	args := []any{userID}
	if from != nil {
		args = append(args, *from)
		q += ` AND created_at >= $2`
	}
	if to != nil {
		args = append(args, *to)
		if from != nil {
			q += ` AND created_at <= $3`
		} else {
			q += ` AND created_at <= $2`
		}
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("expense.list.failed", "user_id", userID, "error", err)
		return nil, common.NewAppError("DB", "failed to list expenses", common.ErrDatabase)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Category,
			&e.Description, &e.Icon, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, common.NewAppError("DB", "failed to scan expense row", common.ErrDatabase)
		}
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB", "failed to read expense rows", common.ErrDatabase)
	}
	return out, nil
}

func (r *pgExpenseRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = $1 AND user_id = $2`
	tag, err := r.pool.Exec(ctx, q, id, userID)
	if err != nil {
		r.logger.Error("expense.delete.failed", "expense_id", id, "error", err)
		return common.NewAppError("DB", "failed to delete expense", common.ErrDatabase)
	}
	if tag.RowsAffected() == 0 {
		return common.NotFoundErrorf("expense %s not found", id)
	}
	r.logger.Info("expense.delete.complete", "expense_id", id, "user_id", userID)
	return nil
}
