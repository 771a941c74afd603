package api

import (
	"net/http"
	"strconv"

	"github.com/mhartley/sqeprep/internal/errors"
)

func (s *Server) handleTodayChallenge(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	view, err := s.ChallengeService.TodayChallenge(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	// Strip the answer key; only prompts and options go to the client.
	type challengeQuestion struct {
		ID      int64    `json:"id"`
		Subject string   `json:"subject"`
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
	}
	questions := make([]challengeQuestion, 0, len(view.Questions))
	for _, q := range view.Questions {
		questions = append(questions, challengeQuestion{
			ID:      q.ID,
			Subject: q.Subject,
			Prompt:  q.Prompt,
			Options: q.Options,
		})
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"date":      view.Date,
		"questions": questions,
		"attempted": view.Attempted,
	})
}

func (s *Server) handleChallengeAttempt(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		// JSON object keys are strings; question ids arrive as "123".
		Answers map[string]int `json:"answers"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	answers := make(map[int64]int, len(req.Answers))
	for raw, selected := range req.Answers {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid question id: "+raw))
			return
		}
		answers[id] = selected
	}

	result, err := s.ChallengeService.SubmitAttempt(r.Context(), user.ID, answers)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, result)
}
