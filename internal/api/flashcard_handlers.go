package api

import (
	"net/http"
	"strconv"

	"github.com/mhartley/sqeprep/internal/srs"
)

func (s *Server) handleListFlashcards(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	cards, err := s.FlashcardService.ListCards(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cards)
}

func (s *Server) handleCreateFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		Subject string `json:"subject"`
		Front   string `json:"front"`
		Back    string `json:"back"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.FlashcardService.CreateCard(r.Context(), user.ID, req.Subject, req.Front, req.Back)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleGetFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	card, err := s.FlashcardService.GetCard(r.Context(), id, user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, card)
}

func (s *Server) handleFlashcardHistory(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	history, err := s.FlashcardService.CardHistory(r.Context(), user.ID, id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, history)
}

func (s *Server) handleReviewFlashcard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Rating string `json:"rating"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.FlashcardService.RateCard(r.Context(), user.ID, id, srs.Rating(req.Rating))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleBuildSession(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	mode := r.URL.Query().Get("mode")
	if mode == "" {
		mode = string(srs.ModeDue)
	}
	count, _ := strconv.Atoi(r.URL.Query().Get("count"))

	cards, err := s.FlashcardService.BuildSession(r.Context(), user.ID, srs.SessionMode(mode), count)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, cards)
}
