package api

import (
	"net/http"
	"strconv"

	"github.com/mhartley/sqeprep/internal/models"
)

func (s *Server) handlePracticeQuestions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	filter := models.QuestionFilter{
		Subject: q.Get("subject"),
		Limit:   limit,
		Offset:  offset,
		Random:  q.Get("random") == "true",
	}

	questions, err := s.PracticeService.GetQuestions(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	// The answer key stays server-side until an answer is submitted.
	type practiceQuestion struct {
		ID      int64    `json:"id"`
		Subject string   `json:"subject"`
		Prompt  string   `json:"prompt"`
		Options []string `json:"options"`
	}
	out := make([]practiceQuestion, 0, len(questions))
	for _, question := range questions {
		out = append(out, practiceQuestion{
			ID:      question.ID,
			Subject: question.Subject,
			Prompt:  question.Prompt,
			Options: question.Options,
		})
	}
	respondJSON(w, r, http.StatusOK, out)
}

func (s *Server) handlePracticeAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		QuestionID    int64 `json:"question_id"`
		SelectedIndex int   `json:"selected_index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.PracticeService.SubmitAnswer(r.Context(), user.ID, req.QuestionID, req.SelectedIndex)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
