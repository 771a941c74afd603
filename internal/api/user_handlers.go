package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mhartley/sqeprep/internal/errors"
	"github.com/mhartley/sqeprep/internal/gamification"
	"github.com/mhartley/sqeprep/internal/logger"
)

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.UserService.ListUsers(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, users)
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	user, err := s.UserService.UpsertUser(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}
	setUserCookie(w, user.ID)
	respondJSON(w, r, http.StatusCreated, user)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	user, err := s.UserService.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if err := s.UserService.DeleteUser(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	if current := userFromContext(r.Context()); current != nil && current.ID == id {
		clearUserCookie(w)
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleSelectUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	user, err := s.UserService.GetUser(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Selecting a profile is the session start, so it counts toward login-day
	// streak continuity even when no question or card is touched.
	if _, err := s.GamificationService.ProcessActivity(r.Context(), user.ID, gamification.Activity{
		Kind: gamification.ActivityLogin,
	}); err != nil {
		handleError(w, r, err)
		return
	}

	setUserCookie(w, user.ID)
	log.Debug("user selected: id=%d", user.ID)
	respondJSON(w, r, http.StatusOK, user)
}

func idParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid id: " + raw)
	}
	return id, nil
}
