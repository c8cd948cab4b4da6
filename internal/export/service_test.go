package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"budgetbot/internal/entity"
)

func TestExpensesXLSX(t *testing.T) {
	desc := "monthly groceries"
	expenses := []*entity.Expense{
		{Amount: 450.50, Category: "Food", Description: &desc, Icon: "🍔",
			CreatedAt: time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)},
		{Amount: 1200, Category: "Bills", Icon: "🧾",
			CreatedAt: time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)},
	}

	data, err := NewService(nil).ExpensesXLSX(expenses)
	if err != nil {
		t.Fatalf("ExpensesXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// header + 2 data rows + total row
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}
	if rows[0][0] != "Date" || rows[0][1] != "Category" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "2026-08-03" || rows[1][1] != "Food" || rows[1][3] != "monthly groceries" {
		t.Errorf("first data row = %v", rows[1])
	}
	if rows[3][1] != "Total" {
		t.Errorf("total row = %v", rows[3])
	}
}

func TestExpensesXLSXEmpty(t *testing.T) {
	data, err := NewService(nil).ExpensesXLSX(nil)
	if err != nil {
		t.Fatalf("ExpensesXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Expenses")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	// header + total row
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}
