// Package results provides a PostgreSQL-backed repository for assessment attempts.
package results

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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Result, error) {
	query := `
		SELECT result_id, assessment_id, user_id, score, attempt_date
		FROM result_table
		ORDER BY attempt_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var results []*models.Result
	for rows.Next() {
		res := &models.Result{}
		if err := rows.Scan(&res.ID, &res.AssessmentID, &res.UserID, &res.Score, &res.AttemptDate); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return results, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Result, error) {
	query := `
		SELECT result_id, assessment_id, user_id, score, attempt_date
		FROM result_table
		WHERE result_id = $1
	`
	res := &models.Result{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&res.ID, &res.AssessmentID, &res.UserID, &res.Score, &res.AttemptDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return res, nil
}

func (r *PostgresRepository) Create(ctx context.Context, result *models.Result) (*models.Result, error) {
	query := `
		INSERT INTO result_table (result_id, assessment_id, user_id, score, attempt_date)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		result.ID, result.AssessmentID, result.UserID, result.Score, result.AttemptDate); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, result *models.Result) error {
	query := `
		UPDATE result_table
		SET assessment_id = $2, user_id = $3, score = $4, attempt_date = $5
		WHERE result_id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		result.ID, result.AssessmentID, result.UserID, result.Score, result.AttemptDate)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM result_table WHERE result_id = $1`, id)
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
