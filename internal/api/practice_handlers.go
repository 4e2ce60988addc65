package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleStartPractice(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.PracticeService.Start(r.Context(), req.StateCode, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetPractice(w http.ResponseWriter, r *http.Request) {
	view, err := s.PracticeService.Get(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handlePracticeAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	feedback, view, err := s.PracticeService.Answer(r.Context(), chi.URLParam(r, "id"), req.QuestionID, req.OptionID, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"feedback": feedback,
		"session":  view,
	})
}

func (s *Server) handlePracticeNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.PracticeService.Navigate(r.Context(), chi.URLParam(r, "id"), req.Direction, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handlePracticeFinish(w http.ResponseWriter, r *http.Request) {
	view, err := s.PracticeService.Finish(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAbandonPractice(w http.ResponseWriter, r *http.Request) {
	if err := s.PracticeService.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
