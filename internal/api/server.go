package api

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/mhartley/sqeprep/internal/errors"
	"github.com/mhartley/sqeprep/internal/logger"
	"github.com/mhartley/sqeprep/internal/services"
	"github.com/mhartley/sqeprep/internal/worker"
)

// Server holds the service dependencies for the HTTP API.
type Server struct {
	DB                  *sql.DB
	UserService         services.UserService
	FlashcardService    services.FlashcardService
	PracticeService     services.PracticeService
	ExamService         services.ExamService
	ChallengeService    services.ChallengeService
	GamificationService services.GamificationService
	StatsService        services.StatsService
	ImportService       services.ImportService
	Pool                *worker.Pool
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	log := logger.FromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewBadRequestError("invalid request body: " + err.Error())
	}
	return nil
}
