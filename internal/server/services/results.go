package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/edusync/edusync/internal/server/models"
	"github.com/edusync/edusync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// ResultService implements result CRUD.
type ResultService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewResultService(db *sql.DB, m repomanager.RepositoryManager) *ResultService {
	return &ResultService{db: db, repomanager: m}
}

func (s *ResultService) List(ctx context.Context) ([]*models.Result, error) {
	return s.repomanager.Results(s.db).List(ctx)
}

func (s *ResultService) Get(ctx context.Context, id string) (*models.Result, error) {
	return s.repomanager.Results(s.db).FindByID(ctx, id)
}

func (s *ResultService) Create(ctx context.Context, result *models.Result) (*models.Result, error) {
	result.ID = uuid.NewString()
	if result.AttemptDate.IsZero() {
		result.AttemptDate = time.Now()
	}
	return s.repomanager.Results(s.db).Create(ctx, result)
}

func (s *ResultService) Update(ctx context.Context, result *models.Result) error {
	return s.repomanager.Results(s.db).Update(ctx, result)
}

func (s *ResultService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Results(s.db).Delete(ctx, id)
}
