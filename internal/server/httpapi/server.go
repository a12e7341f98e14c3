// Package httpapi exposes the EduSync services over a REST/JSON surface.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/edusync/edusync/internal/logging"
	"github.com/edusync/edusync/internal/server/auth"
	"github.com/edusync/edusync/internal/server/config"
	"github.com/edusync/edusync/internal/server/models"
	"github.com/edusync/edusync/internal/server/services"
)

// AuthProvider is the slice of AuthService the handlers depend on.
type AuthProvider interface {
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// UserProvider is the account CRUD surface.
type UserProvider interface {
	List(ctx context.Context) ([]*models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, name, email, role, password string) (*models.User, error)
	Update(ctx context.Context, id, name, email, role, password string) error
	Delete(ctx context.Context, id string) error
}

// CourseProvider is the course CRUD surface.
type CourseProvider interface {
	List(ctx context.Context) ([]*models.Course, error)
	Get(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// AssessmentProvider is the assessment CRUD surface.
type AssessmentProvider interface {
	List(ctx context.Context) ([]*models.Assessment, error)
	Get(ctx context.Context, id string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id string) error
}

// ResultProvider is the result CRUD surface.
type ResultProvider interface {
	List(ctx context.Context) ([]*models.Result, error)
	Get(ctx context.Context, id string) (*models.Result, error)
	Create(ctx context.Context, result *models.Result) (*models.Result, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, id string) error
}

// BlobProvider is the blob storage surface used by the file endpoints.
type BlobProvider interface {
	UploadFile(ctx context.Context, fileName, contentType string, content io.Reader) (string, error)
	UploadURLDocument(ctx context.Context, originalURL, title string) (blobURL, fileName string, err error)
	Exists(ctx context.Context, fileURL string) (bool, error)
	Delete(ctx context.Context, fileURL string) error
	GetURLDocument(ctx context.Context, blobURL string) (*services.URLDocument, error)
}

// Server ties the providers to the router and owns the http.Server lifecycle.
type Server struct {
	addr          string
	logger        logging.Logger
	tokenConfig   auth.TokenConfig
	allowedOrigin string

	auth        AuthProvider
	users       UserProvider
	courses     CourseProvider
	assessments AssessmentProvider
	results     ResultProvider
	blobs       BlobProvider
}

// NewServer wires the REST surface. The token config is used by the request
// authentication middleware.
func NewServer(cfg *config.Config, l logging.Logger,
	authSvc AuthProvider, users UserProvider, courses CourseProvider,
	assessments AssessmentProvider, results ResultProvider, blobs BlobProvider) *Server {

	return &Server{
		addr:   cfg.EndpointAddrHTTP,
		logger: l.With("module", "http_server"),
		tokenConfig: auth.TokenConfig{
			SecretKey: []byte(cfg.JWTSecretKey),
			Issuer:    cfg.JWTIssuer,
			Audience:  cfg.JWTAudience,
			Validity:  cfg.TokenValidityDuration,
		},
		allowedOrigin: cfg.CORSAllowedOrigin,
		auth:          authSvc,
		users:         users,
		courses:       courses,
		assessments:   assessments,
		results:       results,
		blobs:         blobs,
	}
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
