package assessments

import (
	"context"

	"github.com/edusync/edusync/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Assessment, error)
	FindByID(ctx context.Context, id string) (*models.Assessment, error)
	Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error)
	Update(ctx context.Context, assessment *models.Assessment) error
	Delete(ctx context.Context, id string) error
}
