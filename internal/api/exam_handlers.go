package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleStartExam(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	var req struct {
		Size int `json:"size"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.ExamService.StartExam(r.Context(), user.ID, req.Size)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, session)
}

func (s *Server) handleActiveExam(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	exam, err := s.ExamService.GetActiveExam(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if exam == nil {
		respondJSON(w, r, http.StatusOK, map[string]any{"active": false})
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"active": true, "exam": exam})
}

func (s *Server) handleListExams(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	exams, err := s.ExamService.ListExams(r.Context(), user.ID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, exams)
}

func (s *Server) handleExamStats(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	stats, err := s.ExamService.GetStats(r.Context(), user.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleExamAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	examID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		QuestionID    int64 `json:"question_id"`
		SelectedIndex int   `json:"selected_index"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ExamService.SubmitAnswer(r.Context(), user.ID, examID, req.QuestionID, req.SelectedIndex)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleCompleteExam(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r.Context())

	examID, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.ExamService.CompleteExam(r.Context(), user.ID, examID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}
