// Package courses provides a PostgreSQL-backed repository for courses.
package courses

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

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Course, error) {
	query := `
		SELECT course_id, COALESCE(title, ''), COALESCE(description, ''), instructor_id, COALESCE(media_url, '')
		FROM course_table
		ORDER BY title
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		c := &models.Course{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.InstructorID, &c.MediaURL); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return courses, nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	query := `
		SELECT course_id, COALESCE(title, ''), COALESCE(description, ''), instructor_id, COALESCE(media_url, '')
		FROM course_table
		WHERE course_id = $1
	`
	c := &models.Course{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.Title, &c.Description, &c.InstructorID, &c.MediaURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, course *models.Course) (*models.Course, error) {
	query := `
		INSERT INTO course_table (course_id, title, description, instructor_id, media_url)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Description, course.InstructorID, course.MediaURL); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return course, nil
}

func (r *PostgresRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE course_table
		SET title = $2, description = $3, instructor_id = $4, media_url = $5
		WHERE course_id = $1
	`
	res, err := r.db.ExecContext(ctx, query,
		course.ID, course.Title, course.Description, course.InstructorID, course.MediaURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowAffected(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM course_table WHERE course_id = $1`, id)
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
