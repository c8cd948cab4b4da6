package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"budgetbot/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors onto HTTP statuses. The message shown to
// the client is the AppError message when one is present; raw internal
// errors never leak.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, common.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, common.ErrUnavailable):
		status = http.StatusBadGateway
	case errors.Is(err, common.ErrDatabase):
		status = http.StatusInternalServerError
	}

	msg := "internal error"
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		msg = appErr.Message
	}
	writeJSON(w, status, errorResponse{Error: msg})
}

// userID resolves the acting user from the request. There is no session
// layer here; the frontend passes its authenticated user id through.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return r.URL.Query().Get("user_id")
}
