package services

import (
	"context"
	"database/sql"

	"github.com/edusync/edusync/internal/server/models"
	"github.com/edusync/edusync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// AssessmentService implements assessment CRUD.
type AssessmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAssessmentService(db *sql.DB, m repomanager.RepositoryManager) *AssessmentService {
	return &AssessmentService{db: db, repomanager: m}
}

func (s *AssessmentService) List(ctx context.Context) ([]*models.Assessment, error) {
	return s.repomanager.Assessments(s.db).List(ctx)
}

func (s *AssessmentService) Get(ctx context.Context, id string) (*models.Assessment, error) {
	return s.repomanager.Assessments(s.db).FindByID(ctx, id)
}

func (s *AssessmentService) Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error) {
	assessment.ID = uuid.NewString()
	return s.repomanager.Assessments(s.db).Create(ctx, assessment)
}

func (s *AssessmentService) Update(ctx context.Context, assessment *models.Assessment) error {
	return s.repomanager.Assessments(s.db).Update(ctx, assessment)
}

func (s *AssessmentService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Assessments(s.db).Delete(ctx, id)
}
