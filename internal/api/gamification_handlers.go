package api

import (
	"net/http"

	"github.com/mhartley/sqeprep/internal/gamification"
)

func (s *Server) handleGamificationState(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	state, err := s.GamificationService.GetState(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	next := gamification.PointsToNextLevel(state.Points)
	respondJSON(w, r, http.StatusOK, map[string]any{
		"state":                state,
		"points_to_next_level": next,
	})
}

func (s *Server) handleListUserBadges(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	badges, err := s.GamificationService.ListBadges(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, badges)
}

func (s *Server) handleBadgeCatalog(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.GamificationService.Catalog(r.Context()))
}
