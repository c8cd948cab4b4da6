package server

import (
	"encoding/json"
	"io"
	"net/http"

	"budgetbot/internal/advisor"
	"budgetbot/internal/common"
)

// maxAdvisorBytes caps advisor payloads; a question plus a few hundred
// expenses fits well inside this.
const maxAdvisorBytes = 1 << 20

func (s *Server) handleQueryAdvisor(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if uid == "" {
		writeError(w, common.ValidationErrorf("user id is required"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxAdvisorBytes))
	if err != nil {
		writeError(w, common.ValidationErrorf("failed to read request body"))
		return
	}

	if err := s.advisor.ValidatePayload(body); err != nil {
		writeError(w, err)
		return
	}

	var req advisor.QueryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, common.ValidationErrorf("invalid request body"))
		return
	}

	advice := s.advisor.Query(r.Context(), uid, req)
	writeJSON(w, http.StatusOK, advice)
}
