package httpapi

import (
	"net/http"

	"github.com/edusync/edusync/internal/server/models"
	"github.com/gorilla/mux"
)

type assessmentWriteRequest struct {
	CourseID  *string `json:"courseId"`
	Title     string  `json:"title"`
	Questions string  `json:"questions"`
	MaxScore  int     `json:"maxScore"`
}

type assessmentResponse struct {
	ID        string  `json:"assessmentId"`
	CourseID  *string `json:"courseId"`
	Title     string  `json:"title"`
	Questions string  `json:"questions"`
	MaxScore  int     `json:"maxScore"`
}

func toAssessmentResponse(a *models.Assessment) assessmentResponse {
	return assessmentResponse{
		ID:        a.ID,
		CourseID:  a.CourseID,
		Title:     a.Title,
		Questions: a.Questions,
		MaxScore:  a.MaxScore,
	}
}

func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	assessments, err := s.assessments.List(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	out := make([]assessmentResponse, 0, len(assessments))
	for _, a := range assessments {
		out = append(out, toAssessmentResponse(a))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	assessment, err := s.assessments.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toAssessmentResponse(assessment))
}

func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeMessage(w, http.StatusBadRequest, "Title is required.")
		return
	}

	assessment, err := s.assessments.Create(r.Context(), &models.Assessment{
		CourseID:  req.CourseID,
		Title:     req.Title,
		Questions: req.Questions,
		MaxScore:  req.MaxScore,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssessmentResponse(assessment))
}

func (s *Server) handleUpdateAssessment(w http.ResponseWriter, r *http.Request) {
	var req assessmentWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.assessments.Update(r.Context(), &models.Assessment{
		ID:        mux.Vars(r)["id"],
		CourseID:  req.CourseID,
		Title:     req.Title,
		Questions: req.Questions,
		MaxScore:  req.MaxScore,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	if err := s.assessments.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
