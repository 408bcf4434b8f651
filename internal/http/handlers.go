package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/VishardMehta/Smart-Expense-Management/internal/auth"
	"github.com/VishardMehta/Smart-Expense-Management/internal/core"
)

type loginRequest struct {
	Credential string `json:"credential"`
}

type loginResponse struct {
	Token string `json:"token"`
	State string `json:"state"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	token, err := s.gate.Login(r.Context(), req.Credential)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, State: string(s.gate.State())})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.gate.Logout()
	writeJSON(w, http.StatusNoContent, nil)
}

// requireAuth rejects requests whose bearer token does not match the
// current session.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if err := s.gate.Verify(token); err != nil {
			writeError(w, r, auth.ErrNotAuthenticated)
			return
		}
		next(w, r)
	}
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	filter, sortSpec := parseQuery(r)

	txs, err := s.service.List(r.Context(), filter, sortSpec)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var tx core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&tx); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	created, err := s.service.Create(r.Context(), tx)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.dashCache.Invalidate()
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var fields core.Transaction
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	updated, err := s.service.Update(r.Context(), r.PathValue("id"), fields)
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.dashCache.Invalidate()
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, err)
		return
	}
	s.dashCache.Invalidate()
	writeJSON(w, http.StatusNoContent, nil)
}

// handleDashboard serves the KPI summary through the generation-guarded
// cache: the generation is snapshotted before the load so a mutation
// landing mid-load invalidates the result instead of being overwritten
// by it.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if summary, ok := s.dashCache.Get(dashboardCacheKey); ok {
		writeJSON(w, http.StatusOK, summary)
		return
	}

	gen := s.dashCache.Generation()
	summary, err := s.service.Dashboard(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	s.dashCache.SetIfCurrent(dashboardCacheKey, summary, gen)
	writeJSON(w, http.StatusOK, summary)
}

// parseQuery builds the filter and sort from the request, normalizing
// malformed values to absent rather than erroring.
func parseQuery(r *http.Request) (core.Filter, core.SortSpec) {
	q := r.URL.Query()

	filter := core.Filter{
		Search:   strings.TrimSpace(q.Get("q")),
		Category: strings.TrimSpace(q.Get("category")),
	}
	if t := core.TransactionType(q.Get("type")); t.IsValid() {
		filter.Type = t
	}
	if from, err := core.ParseDate(q.Get("from")); err == nil {
		filter.From = from
	}
	if to, err := core.ParseDate(q.Get("to")); err == nil {
		filter.To = to
	}

	sortSpec := core.DefaultSort
	if raw := q.Get("sort"); raw != "" {
		sortSpec = core.ParseSortSpec(raw)
	}
	return filter, sortSpec
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
