package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edusync/edusync/internal/server/auth"
	"github.com/edusync/edusync/internal/server/models"
	"github.com/edusync/edusync/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// UserService implements account CRUD. Passwords arrive in plaintext from the
// API and are hashed here; stored hashes never leave this layer.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager) *UserService {
	return &UserService{db: db, repomanager: m}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, name, email, role, password string) (*models.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if role == "" {
		role = models.RoleStudent
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
	}
	return s.repomanager.Users(s.db).Create(ctx, user)
}

// Update replaces the mutable fields of an account. An empty password leaves
// the stored credential untouched.
func (s *UserService) Update(ctx context.Context, id, name, email, role, password string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	user.Name = name
	user.Email = email
	user.Role = role
	if password != "" {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		user.PasswordHash = hash
	}

	return repo.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Users(s.db).Delete(ctx, id)
}
