package httpapi

import (
	"net/http"

	"github.com/edusync/edusync/internal/server/models"
	"github.com/gorilla/mux"
)

type courseWriteRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	InstructorID *string `json:"instructorId"`
	MediaURL     string  `json:"mediaUrl"`
}

type courseResponse struct {
	ID           string  `json:"courseId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	InstructorID *string `json:"instructorId"`
	MediaURL     string  `json:"mediaUrl"`
}

func toCourseResponse(c *models.Course) courseResponse {
	return courseResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		InstructorID: c.InstructorID,
		MediaURL:     c.MediaURL,
	}
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := s.courses.List(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	out := make([]courseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	course, err := s.courses.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCourseResponse(course))
}

func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	course, err := s.courses.Create(r.Context(), &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: req.InstructorID,
		MediaURL:     req.MediaURL,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCourseResponse(course))
}

func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	var req courseWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.courses.Update(r.Context(), &models.Course{
		ID:           mux.Vars(r)["id"],
		Title:        req.Title,
		Description:  req.Description,
		InstructorID: req.InstructorID,
		MediaURL:     req.MediaURL,
	})
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := s.courses.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
