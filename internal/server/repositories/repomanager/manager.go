// Package repomanager vends repository implementations bound to a database
// handle, and exposes the schema migration hook.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/edusync/edusync/internal/dbx"
	"github.com/edusync/edusync/internal/server/repositories/assessments"
	"github.com/edusync/edusync/internal/server/repositories/courses"
	"github.com/edusync/edusync/internal/server/repositories/results"
	"github.com/edusync/edusync/internal/server/repositories/users"
)

// RepositoryManager returns repositories bound to the given DBTX, so the same
// repository code runs against *sql.DB or inside a transaction via *sql.Tx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Courses(db dbx.DBTX) courses.Repository
	Assessments(db dbx.DBTX) assessments.Repository
	Results(db dbx.DBTX) results.Repository
}
