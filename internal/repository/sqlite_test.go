package repository

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"budgetbot/internal/common"
	"budgetbot/internal/entity"
)

func newTestRepo(t *testing.T) ExpenseRepository {
	t.Helper()
	db, err := OpenSQLite(":memory:", slog.Default())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSQLiteExpenseRepository(db, slog.Default())
}

func strptr(s string) *string { return &s }

func TestCreateAndListExpenses(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Expense{
		UserID:      "u1",
		Amount:      450.50,
		Category:    "Food",
		Description: strptr("groceries"),
		Icon:        "🍔",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatal("Create did not assign an id")
	}
	if created.CreatedAt.IsZero() {
		t.Error("Create did not set created_at")
	}

	list, err := repo.ListByUser(ctx, "u1", nil, nil)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("len(list) = %d, want 1", len(list))
	}
	got := list[0]
	if got.ID != created.ID || got.Amount != 450.50 || got.Category != "Food" || got.Icon != "🍔" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
	if got.Description == nil || *got.Description != "groceries" {
		t.Errorf("description = %v", got.Description)
	}
}

func TestListScopedToUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, e := range []*entity.Expense{
		{UserID: "u1", Amount: 100, Category: "Food", Icon: "🍔"},
		{UserID: "u2", Amount: 200, Category: "Bills", Icon: "📄"},
	} {
		if _, err := repo.Create(ctx, e); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	list, err := repo.ListByUser(ctx, "u1", nil, nil)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].UserID != "u1" {
		t.Fatalf("list = %+v, want only u1 rows", list)
	}
}

func TestListDateWindow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.Create(ctx, &entity.Expense{UserID: "u1", Amount: 100, Category: "Food", Icon: "🍔"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	past := time.Now().UTC().Add(-time.Hour)
	future := time.Now().UTC().Add(time.Hour)

	list, err := repo.ListByUser(ctx, "u1", &past, &future)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("window containing now: len = %d, want 1", len(list))
	}

	longAgo := past.Add(-24 * time.Hour)
	list, err = repo.ListByUser(ctx, "u1", &longAgo, &past)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("window in the past: len = %d, want 0", len(list))
	}
}

func TestDeleteScopedToOwner(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, &entity.Expense{UserID: "u1", Amount: 100, Category: "Food", Icon: "🍔"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// another user cannot delete it
	err = repo.Delete(ctx, "u2", created.ID)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("cross-user delete: err = %v, want not found", err)
	}

	if err := repo.Delete(ctx, "u1", created.ID); err != nil {
		t.Fatalf("owner delete: %v", err)
	}

	err = repo.Delete(ctx, "u1", created.ID)
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("second delete: err = %v, want not found", err)
	}
}
