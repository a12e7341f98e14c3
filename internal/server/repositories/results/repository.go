package results

import (
	"context"

	"github.com/edusync/edusync/internal/server/models"
)

type Repository interface {
	List(ctx context.Context) ([]*models.Result, error)
	FindByID(ctx context.Context, id string) (*models.Result, error)
	Create(ctx context.Context, result *models.Result) (*models.Result, error)
	Update(ctx context.Context, result *models.Result) error
	Delete(ctx context.Context, id string) error
}
