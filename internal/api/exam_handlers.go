package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbratke/buergertest/internal/models"
)

type startSessionRequest struct {
	StateCode string `json:"state_code"`
}

type answerRequest struct {
	QuestionID string          `json:"question_id"`
	OptionID   models.OptionID `json:"option_id"`
}

type navigateRequest struct {
	Direction int `json:"direction"`
}

func (s *Server) handleStartExam(w http.ResponseWriter, r *http.Request) {
	var req startSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ExamService.Start(r.Context(), req.StateCode, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, view)
}

func (s *Server) handleGetExam(w http.ResponseWriter, r *http.Request) {
	view, err := s.ExamService.Get(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExamAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ExamService.SelectAnswer(r.Context(), chi.URLParam(r, "id"), req.QuestionID, req.OptionID, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExamNavigate(w http.ResponseWriter, r *http.Request) {
	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	view, err := s.ExamService.Navigate(r.Context(), chi.URLParam(r, "id"), req.Direction, langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExamRequestSubmit(w http.ResponseWriter, r *http.Request) {
	view, err := s.ExamService.RequestSubmit(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExamCancelSubmit(w http.ResponseWriter, r *http.Request) {
	view, err := s.ExamService.CancelSubmit(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleExamConfirmSubmit(w http.ResponseWriter, r *http.Request) {
	view, err := s.ExamService.ConfirmSubmit(r.Context(), chi.URLParam(r, "id"), langParam(r))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, view)
}

func (s *Server) handleAbandonExam(w http.ResponseWriter, r *http.Request) {
	if err := s.ExamService.Abandon(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}
