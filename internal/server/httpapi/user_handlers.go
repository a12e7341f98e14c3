package httpapi

import (
	"errors"
	"net/http"

	"github.com/edusync/edusync/internal/common"
	"github.com/edusync/edusync/internal/server/models"
	"github.com/gorilla/mux"
)

type userWriteRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

func toUserSummary(u *models.User) userSummary {
	return userSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	out := make([]userSummary, 0, len(users))
	for _, u := range users {
		out = append(out, toUserSummary(u))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserSummary(user))
}

func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req userWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Name and password are required.")
		return
	}

	user, err := s.users.Create(r.Context(), req.Name, req.Email, req.Role, req.Password)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserSummary(user))
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userWriteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := s.users.Update(r.Context(), mux.Vars(r)["id"], req.Name, req.Email, req.Role, req.Password)
	if err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// serviceError maps service sentinels onto HTTP statuses.
func (s *Server) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, common.ErrorNotFound) {
		writeMessage(w, http.StatusNotFound, "Not found.")
		return
	}
	s.logger.Error(r.Context(), "request failed", "error", err.Error())
	writeMessage(w, http.StatusInternalServerError, "Internal error.")
}
