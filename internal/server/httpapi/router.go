package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Router builds the REST surface. The auth endpoints and /health are public;
// everything under /api requires a valid session token. CORS and logging wrap
// the whole router so preflight requests are answered even for routes that
// only accept other methods.
func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusOK, "OK")
	}).Methods(http.MethodGet)

	r.HandleFunc("/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/forgot-password", s.handleForgotPassword).Methods(http.MethodPost)
	r.HandleFunc("/reset-password", s.handleResetPassword).Methods(http.MethodPost)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authMiddleware)

	api.HandleFunc("/users", s.handleListUsers).Methods(http.MethodGet)
	api.HandleFunc("/users", s.handleCreateUser).Methods(http.MethodPost)
	api.HandleFunc("/users/{id}", s.handleGetUser).Methods(http.MethodGet)
	api.HandleFunc("/users/{id}", s.handleUpdateUser).Methods(http.MethodPut)
	api.HandleFunc("/users/{id}", s.handleDeleteUser).Methods(http.MethodDelete)

	api.HandleFunc("/courses", s.handleListCourses).Methods(http.MethodGet)
	api.HandleFunc("/courses", s.handleCreateCourse).Methods(http.MethodPost)
	api.HandleFunc("/courses/{id}", s.handleGetCourse).Methods(http.MethodGet)
	api.HandleFunc("/courses/{id}", s.handleUpdateCourse).Methods(http.MethodPut)
	api.HandleFunc("/courses/{id}", s.handleDeleteCourse).Methods(http.MethodDelete)

	api.HandleFunc("/assessments", s.handleListAssessments).Methods(http.MethodGet)
	api.HandleFunc("/assessments", s.handleCreateAssessment).Methods(http.MethodPost)
	api.HandleFunc("/assessments/{id}", s.handleGetAssessment).Methods(http.MethodGet)
	api.HandleFunc("/assessments/{id}", s.handleUpdateAssessment).Methods(http.MethodPut)
	api.HandleFunc("/assessments/{id}", s.handleDeleteAssessment).Methods(http.MethodDelete)

	api.HandleFunc("/results", s.handleListResults).Methods(http.MethodGet)
	api.HandleFunc("/results", s.handleCreateResult).Methods(http.MethodPost)
	api.HandleFunc("/results/{id}", s.handleGetResult).Methods(http.MethodGet)
	api.HandleFunc("/results/{id}", s.handleUpdateResult).Methods(http.MethodPut)
	api.HandleFunc("/results/{id}", s.handleDeleteResult).Methods(http.MethodDelete)

	api.HandleFunc("/files/upload", s.handleUploadFile).Methods(http.MethodPost)
	api.HandleFunc("/files/upload-url", s.handleUploadURL).Methods(http.MethodPost)
	api.HandleFunc("/files", s.handleDeleteFile).Methods(http.MethodDelete)
	api.HandleFunc("/files/exists", s.handleFileExists).Methods(http.MethodGet)
	api.HandleFunc("/files/original-url", s.handleOriginalURL).Methods(http.MethodGet)

	return s.corsMiddleware(s.logMiddleware(r))
}
