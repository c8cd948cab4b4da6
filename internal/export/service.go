package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"budgetbot/internal/entity"
)

// Service produces XLSX bytes for expense exports.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger}
}

// ExpensesXLSX renders the given expenses into an XLSX workbook. The caller
// decides the window; this layer only formats.
func (s *Service) ExpensesXLSX(expenses []*entity.Expense) ([]byte, error) {
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Expenses"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	// drop the default sheet excelize creates
	if index, _ := f.GetSheetIndex("Sheet1"); index != -1 {
		_ = f.DeleteSheet("Sheet1")
	}

	headers := []string{"Date", "Category", "Amount", "Description", "Icon"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	var total float64
	for _, e := range expenses {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, e.CreatedAt.Format("2006-01-02"))
		write(2, e.Category)
		write(3, e.Amount)
		desc := ""
		if e.Description != nil {
			desc = truncate(*e.Description, 140)
		}
		write(4, desc)
		write(5, e.Icon)

		total += e.Amount
		row++
	}

	// total row under the data
	totalCell, _ := excelize.CoordinatesToCellName(2, row)
	_ = f.SetCellValue(sheet, totalCell, "Total")
	amountCell, _ := excelize.CoordinatesToCellName(3, row)
	_ = f.SetCellValue(sheet, amountCell, total)

	_ = f.SetColWidth(sheet, "A", "A", 14)
	_ = f.SetColWidth(sheet, "B", "B", 22)
	_ = f.SetColWidth(sheet, "C", "C", 12)
	_ = f.SetColWidth(sheet, "D", "D", 40)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	s.logger.Info("export.xlsx.complete", "rows", len(expenses),
		"bytes", buf.Len(), "elapsed_ms", time.Since(start).Milliseconds())
	return buf.Bytes(), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}
