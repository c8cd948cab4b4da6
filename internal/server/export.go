package server

import (
	"fmt"
	"net/http"
	"time"

	"budgetbot/internal/common"
)

func (s *Server) handleExportExpenses(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, common.ValidationErrorf("user id is required"))
		return
	}

	from, to, err := dateWindow(r)
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := s.expenses.List(r.Context(), uid, from, to)
	if err != nil {
		writeError(w, err)
		return
	}

	data, err := s.exporter.ExpensesXLSX(list)
	if err != nil {
		writeError(w, common.NewAppError("EXPORT", "failed to build export", err))
		return
	}

	filename := fmt.Sprintf("expenses-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
