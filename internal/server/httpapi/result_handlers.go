package httpapi

import (
	"net/http"
	"time"

	"github.com/edusync/edusync/internal/server/models"
	"github.com/gorilla/mux"
)

type resultWriteRequest struct {
	AssessmentID *string   `json:"assessmentId"`
	UserID       *string   `json:"userId"`
	Score        int       `json:"score"`
	AttemptDate  time.Time `json:"attemptDate"`
}

type resultResponse struct {
	ID           string    `json:"resultId"`
	AssessmentID *string   `json:"assessmentId"`
	UserID       *string   `json:"userId"`
	Score        int       `json:"score"`
	AttemptDate  time.Time `json:"attemptDate"`
}

func toResultResponse(res *models.Result) resultResponse {
	return resultResponse{
		ID:           res.ID,
		AssessmentID: res.AssessmentID,
		UserID:       res.UserID,
		Score:        res.Score,
		AttemptDate:  res.AttemptDate,
	}
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	results, err := s.results.List(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	out := make([]resultResponse, 0, len(results))
	for _, res := range results {
		out = append(out, toResultResponse(res))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	result, err := s.results.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResultResponse(result))
}

func (s *Server) handleCreateResult(w http.ResponseWriter, r *http.Request) {
	var req resultWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := s.results.Create(r.Context(), &models.Result{
		AssessmentID: req.AssessmentID,
		UserID:       req.UserID,
		Score:        req.Score,
		AttemptDate:  req.AttemptDate,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResultResponse(result))
}

func (s *Server) handleUpdateResult(w http.ResponseWriter, r *http.Request) {
	var req resultWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.results.Update(r.Context(), &models.Result{
		ID:           mux.Vars(r)["id"],
		AssessmentID: req.AssessmentID,
		UserID:       req.UserID,
		Score:        req.Score,
		AttemptDate:  req.AttemptDate,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteResult(w http.ResponseWriter, r *http.Request) {
	if err := s.results.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
