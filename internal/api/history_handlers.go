package api

import (
	"net/http"
	"strconv"

	"github.com/mbratke/buergertest/internal/errors"
	"github.com/mbratke/buergertest/internal/models"
)

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AttemptFilter{
		Mode:      q.Get("mode"),
		StateCode: q.Get("state"),
		OrderDir:  q.Get("order"),
	}
	if v := q.Get("passed"); v != "" {
		passed, err := strconv.ParseBool(v)
		if err != nil {
			handleError(w, r, errors.NewValidationError("passed", "must be a boolean"))
			return
		}
		filter.Passed = &passed
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	attempts, total, err := s.HistoryService.List(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"attempts": attempts,
		"total":    total,
	})
}

func (s *Server) handleHistoryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.HistoryService.Stats(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
