package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)
	r.Use(clientIDMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/states", s.handleStates)
	r.Get("/bank/summary", s.handleBankSummary)

	r.Get("/preferences", s.handleGetPreferences)
	r.Put("/preferences", s.handlePutPreferences)
	r.Delete("/preferences", s.handleDeletePreferences)

	r.Route("/practice/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartPractice)
		r.Get("/{id}", s.handleGetPractice)
		r.Post("/{id}/answers", s.handlePracticeAnswer)
		r.Post("/{id}/navigate", s.handlePracticeNavigate)
		r.Post("/{id}/finish", s.handlePracticeFinish)
		r.Delete("/{id}", s.handleAbandonPractice)
	})

	r.Route("/exam/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartExam)
		r.Get("/{id}", s.handleGetExam)
		r.Post("/{id}/answers", s.handleExamAnswer)
		r.Post("/{id}/navigate", s.handleExamNavigate)
		r.Post("/{id}/submit", s.handleExamRequestSubmit)
		r.Post("/{id}/submit/cancel", s.handleExamCancelSubmit)
		r.Post("/{id}/submit/confirm", s.handleExamConfirmSubmit)
		r.Get("/{id}/timer", s.handleExamTimer)
		r.Delete("/{id}", s.handleAbandonExam)
	})

	r.Route("/flashcards/sessions", func(r chi.Router) {
		r.Post("/", s.handleStartFlashcards)
		r.Get("/{id}", s.handleGetFlashcards)
		r.Post("/{id}/answers", s.handleFlashcardAnswer)
		r.Post("/{id}/proceed", s.handleFlashcardProceed)
		r.Post("/{id}/restart", s.handleFlashcardRestart)
		r.Delete("/{id}", s.handleAbandonFlashcards)
	})

	r.Get("/history", s.handleHistory)
	r.Get("/history/stats", s.handleHistoryStats)

	return r
}
