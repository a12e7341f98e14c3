// Package server initializes and runs the main application server.
// It opens the database, applies migrations, wires the services, starts the
// reset-ticket janitor, and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/edusync/edusync/internal/logging"
	"github.com/edusync/edusync/internal/server/auth"
	"github.com/edusync/edusync/internal/server/config"
	"github.com/edusync/edusync/internal/server/httpapi"
	"github.com/edusync/edusync/internal/server/repositories/repomanager"
	"github.com/edusync/edusync/internal/server/services"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	resetTokens *auth.ResetTokenStore
	httpServer  *httpapi.Server
}

func NewApp(cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(context.Background(), db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	// the one shared mutable resource of the auth core; lives for the
	// whole process
	resetTokens := auth.NewResetTokenStore()

	authService := services.NewAuthService(db, rm, resetTokens, cfg)
	userService := services.NewUserService(db, rm)
	courseService := services.NewCourseService(db, rm)
	assessmentService := services.NewAssessmentService(db, rm)
	resultService := services.NewResultService(db, rm)
	blobService := services.NewBlobService(cfg)

	httpServer := httpapi.NewServer(cfg, logger,
		authService, userService, courseService,
		assessmentService, resultService, blobService)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		resetTokens: resetTokens,
		httpServer:  httpServer,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// runResetJanitor periodically evicts expired reset tickets so abandoned
// forgot-password requests do not accumulate for the process lifetime.
func (app *App) runResetJanitor(ctx context.Context) {
	interval := app.config.ResetSweepInterval
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := app.resetTokens.Sweep(now); removed > 0 {
				app.logger.Info(ctx, "swept expired reset tickets", "removed", removed)
			}
		}
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runResetJanitor(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpServer.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing db", "error", err.Error())
	}
}
