package services

import (
	"context"
	"database/sql"

	"github.com/edusync/edusync/internal/server/models"
	"github.com/edusync/edusync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CourseService implements course CRUD.
type CourseService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCourseService(db *sql.DB, m repomanager.RepositoryManager) *CourseService {
	return &CourseService{db: db, repomanager: m}
}

func (s *CourseService) List(ctx context.Context) ([]*models.Course, error) {
	return s.repomanager.Courses(s.db).List(ctx)
}

func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	return s.repomanager.Courses(s.db).FindByID(ctx, id)
}

func (s *CourseService) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	course.ID = uuid.NewString()
	return s.repomanager.Courses(s.db).Create(ctx, course)
}

func (s *CourseService) Update(ctx context.Context, course *models.Course) error {
	return s.repomanager.Courses(s.db).Update(ctx, course)
}

func (s *CourseService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Courses(s.db).Delete(ctx, id)
}
