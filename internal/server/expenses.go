package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"budgetbot/internal/common"
	"budgetbot/internal/entity"
	"budgetbot/internal/expenses"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, common.ValidationErrorf("user id is required"))
		return
	}

	var req expenses.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ValidationErrorf("invalid request body"))
		return
	}

	created, err := s.expenses.Create(r.Context(), uid, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
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
	if list == nil {
		list = []*entity.Expense{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, common.ValidationErrorf("user id is required"))
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, common.ValidationErrorf("expense id must be a UUID"))
		return
	}

	if err := s.expenses.Delete(r.Context(), uid, id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dateWindow parses optional from/to query parameters (YYYY-MM-DD). The to
// date is inclusive of the whole day.
func dateWindow(r *http.Request) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, common.ValidationErrorf("from must be YYYY-MM-DD")
		}
		from = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return nil, nil, common.ValidationErrorf("to must be YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	return from, to, nil
}
