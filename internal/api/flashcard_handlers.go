package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbratke/buergertest/internal/models"
)

type flashcardAnswerRequest struct {
	OptionID models.OptionID `json:"option_id"`
}

func (s *Server) handleStartFlashcards(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.FlashcardService.Start(r.Context(), req.StateCode, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetFlashcards(w http.ResponseWriter, r *http.Request) {
	view, err := s.FlashcardService.Get(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleFlashcardAnswer(w http.ResponseWriter, r *http.Request) {
	var req flashcardAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.FlashcardService.SelectOption(r.Context(), chi.URLParam(r, "id"), req.OptionID, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleFlashcardProceed(w http.ResponseWriter, r *http.Request) {
	view, err := s.FlashcardService.Proceed(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleFlashcardRestart(w http.ResponseWriter, r *http.Request) {
	view, err := s.FlashcardService.Restart(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAbandonFlashcards(w http.ResponseWriter, r *http.Request) {
	if err := s.FlashcardService.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
