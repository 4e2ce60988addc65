package api

import (
	"net/http"

	"github.com/mbratke/buergertest/internal/models"
)

type preferenceRequest struct {
	StateCode    string `json:"state_code"`
	LanguageCode string `json:"language_code"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	pref, err := s.PreferenceService.Get(r.Context(), clientIDFromContext(r.Context()))
	if err != nil {
		handleError(w, r, err)
		return
	}
	if pref == nil {
		pref = &models.Preference{}
	}
	respondJSON(w, r, http.StatusOK, pref)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var req preferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	pref, err := s.PreferenceService.Save(r.Context(), models.Preference{
		ClientID:     clientIDFromContext(r.Context()),
		StateCode:    req.StateCode,
		LanguageCode: req.LanguageCode,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, pref)
}

func (s *Server) handleDeletePreferences(w http.ResponseWriter, r *http.Request) {
	if err := s.PreferenceService.Clear(r.Context(), clientIDFromContext(r.Context())); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
