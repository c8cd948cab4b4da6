package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"budgetbot/internal/common"
	"budgetbot/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS expenses (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	amount      REAL NOT NULL,
	category    TEXT NOT NULL,
	description TEXT,
	icon        TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_expenses_user_created ON expenses (user_id, created_at);
`

// OpenSQLite opens (or creates) a sqlite database at path and ensures the
// schema exists. Use ":memory:" for an in-process throwaway database.
func OpenSQLite(path string, logger *slog.Logger) (*sql.DB, error) {
	logger.Info("db.connect.start", "driver", "sqlite", "path", path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("db.connect.failed", "error", err)
		return nil, err
	}
	// sqlite handles one writer at a time
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		logger.Error("db.connect.failed", "error", err)
		return nil, err
	}
	logger.Info("db.connect.complete")
	return db, nil
}

type sqliteExpenseRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteExpenseRepository returns an ExpenseRepository backed by sqlite.
// Used for local single-user setups and tests.
func NewSQLiteExpenseRepository(db *sql.DB, logger *slog.Logger) ExpenseRepository {
	return &sqliteExpenseRepository{db: db, logger: logger}
}

func (r *sqliteExpenseRepository) Create(ctx context.Context, expense *entity.Expense) (*entity.Expense, error) {
	if expense.ID == uuid.Nil {
		expense.ID = uuid.New()
	}
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	const q = `
		INSERT INTO expenses (id, user_id, amount, category, description, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		expense.ID.String(), expense.UserID, expense.Amount, expense.Category,
		expense.Description, expense.Icon, now, now)
	if err != nil {
		r.logger.Error("expense.create.failed", "user_id", expense.UserID, "error", err)
		return nil, common.NewAppError("DB", "failed to create expense", common.ErrDatabase)
	}

	r.logger.Info("expense.create.complete", "expense_id", expense.ID, "user_id", expense.UserID)
	return expense, nil
}

func (r *sqliteExpenseRepository) ListByUser(ctx context.Context, userID string, from, to *time.Time) ([]*entity.Expense, error) {
	q := `
		SELECT id, user_id, amount, category, description, icon, created_at, updated_at
		FROM expenses
		WHERE user_id = ?`
	args := []any{userID}
	if from != nil {
		q += ` AND created_at >= ?`
		args = append(args, *from)
	}
	if to != nil {
		q += ` AND created_at <= ?`
		args = append(args, *to)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		r.logger.Error("expense.list.failed", "user_id", userID, "error", err)
		return nil, common.NewAppError("DB", "failed to list expenses", common.ErrDatabase)
	}
	defer rows.Close()

	var out []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		var id string
		if err := rows.Scan(&id, &e.UserID, &e.Amount, &e.Category,
			&e.Description, &e.Icon, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, common.NewAppError("DB", "failed to scan expense row", common.ErrDatabase)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, common.NewAppError("DB", "malformed expense id in storage", common.ErrDatabase)
		}
		e.ID = parsed
		out = append(out, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewAppError("DB", "failed to read expense rows", common.ErrDatabase)
	}
	return out, nil
}

func (r *sqliteExpenseRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, id.String(), userID)
	if err != nil {
		r.logger.Error("expense.delete.failed", "expense_id", id, "error", err)
		return common.NewAppError("DB", "failed to delete expense", common.ErrDatabase)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewAppError("DB", "failed to confirm delete", common.ErrDatabase)
	}
	if n == 0 {
		return common.NotFoundErrorf("expense %s not found", id)
	}
	r.logger.Info("expense.delete.complete", "expense_id", id, "user_id", userID)
	return nil
}
