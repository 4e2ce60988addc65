package api

import (
	"net/http"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStates(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{"states": s.Bank.States()})
}

func (s *Server) handleBankSummary(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.Bank.Summarize())
}
