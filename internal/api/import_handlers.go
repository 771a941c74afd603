package api

import (
	"net/http"

	"github.com/mhartley/sqeprep/internal/models"
)

func (s *Server) handleImportQuestions(w http.ResponseWriter, r *http.Request) {
	var questions []models.Question
	if err := decodeJSON(r, &questions); err != nil {
		handleError(w, r, err)
		return
	}

	inserted, err := s.ImportService.ImportQuestions(r.Context(), questions)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, map[string]int{"imported": inserted})
}
