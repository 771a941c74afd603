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
	r.Use(s.userMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/users", s.handleListUsers)
		r.Post("/users", s.handleCreateUser)
		r.Get("/users/{id}", s.handleGetUser)
		r.Delete("/users/{id}", s.handleDeleteUser)
		r.Post("/users/{id}/select", s.handleSelectUser)

		r.Get("/flashcards", s.handleListFlashcards)
		r.Post("/flashcards", s.handleCreateFlashcard)
		r.Get("/flashcards/{id}", s.handleGetFlashcard)
		r.Get("/flashcards/{id}/history", s.handleFlashcardHistory)
		r.Post("/flashcards/{id}/review", s.handleReviewFlashcard)
		r.Get("/session", s.handleBuildSession)

		r.Get("/practice/questions", s.handlePracticeQuestions)
		r.Post("/practice/answers", s.handlePracticeAnswer)

		r.Post("/exams", s.handleStartExam)
		r.Get("/exams", s.handleListExams)
		r.Get("/exams/active", s.handleActiveExam)
		r.Get("/exams/stats", s.handleExamStats)
		r.Post("/exams/{id}/answers", s.handleExamAnswer)
		r.Post("/exams/{id}/complete", s.handleCompleteExam)

		r.Get("/challenge/today", s.handleTodayChallenge)
		r.Post("/challenge/attempts", s.handleChallengeAttempt)

		r.Get("/gamification/state", s.handleGamificationState)
		r.Get("/gamification/badges", s.handleListUserBadges)
		r.Get("/gamification/catalog", s.handleBadgeCatalog)

		r.Get("/stats/dashboard", s.handleDashboard)
		r.Get("/stats/subjects", s.handleSubjectStats)

		r.Post("/questions/import", s.handleImportQuestions)
	})

	return r
}
