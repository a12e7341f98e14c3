// Package assessments provides a PostgreSQL-backed repository for assessments.
package assessments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/edusync/edusync/internal/common"
	"github.com/edusync/edusync/internal/dbx"
	"github.com/edusync/edusync/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Assessment, error) {
	query := `
		SELECT assessment_id, course_id, title, questions, max_score
		FROM assessment_table
		ORDER BY title
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var assessments []*models.Assessment
	for rows.Next() {
		a := &models.Assessment{}
		if err := rows.Scan(&a.ID, &a.CourseID, &a.Title, &a.Questions, &a.MaxScore); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		assessments = append(assessments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return assessments, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Assessment, error) {
	query := `
		SELECT assessment_id, course_id, title, questions, max_score
		FROM assessment_table
		WHERE assessment_id = $1
	`
	a := &models.Assessment{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.CourseID, &a.Title, &a.Questions, &a.MaxScore)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, assessment *models.Assessment) (*models.Assessment, error) {
	query := `
		INSERT INTO assessment_table (assessment_id, course_id, title, questions, max_score)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		assessment.ID, assessment.CourseID, assessment.Title, assessment.Questions, assessment.MaxScore); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return assessment, nil
}

func (r *PostgresRepository) Update(ctx context.Context, assessment *models.Assessment) error {
	query := `
		UPDATE assessment_table
		SET course_id = $2, title = $3, questions = $4, max_score = $5
		WHERE assessment_id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		assessment.ID, assessment.CourseID, assessment.Title, assessment.Questions, assessment.MaxScore)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM assessment_table WHERE assessment_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowAffected(res)
}

func rowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
