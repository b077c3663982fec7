// Package app собирает приложение: хранилище, сервисы, HTTP-сервер и фоновые задачи.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/config"
	"github.com/Freeeeeet/meeting_rooms/internal/controller/httpapi"
	"github.com/Freeeeeet/meeting_rooms/internal/repository"
	"github.com/Freeeeeet/meeting_rooms/internal/repository/memory"
	"github.com/Freeeeeet/meeting_rooms/internal/repository/postgres"
	"github.com/Freeeeeet/meeting_rooms/internal/seed"
	"github.com/Freeeeeet/meeting_rooms/internal/service"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	pool      *pgxpool.Pool
	services  *service.Services
	echo      *echo.Echo
	scheduler *Scheduler
}

// New открывает хранилище, заполняет его демо-данными при необходимости и собирает сервисы
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: logger}

	var store repository.Store
	if cfg.UsesPostgres() {
		pool, err := OpenDatabase(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		a.pool = pool
		store = postgres.NewStore(pool)
	} else {
		logger.Info("DB_DSN is not set, using in-memory store")
		store = memory.NewStore()
	}

	store = repository.WithLatency(store, cfg.MockLatency)

	data, err := seed.Load(cfg.SeedFile)
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := seed.Apply(ctx, store, data, time.Now(), cfg.Location, logger); err != nil {
		a.Close()
		return nil, fmt.Errorf("seed store: %w", err)
	}

	a.services = service.New(store, service.Options{
		Location:      cfg.Location,
		CurrentUserID: cfg.CurrentUserID,
	}, logger)

	if cfg.AutoApprove {
		if err := a.enableAutoApprove(ctx); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.echo = httpapi.NewRouter(a.services, logger)

	if cfg.SweepInterval > 0 {
		a.scheduler = NewScheduler(a.services.Reservations, cfg.SweepInterval, logger)
	}

	return a, nil
}

// OpenDatabase подключается к PostgreSQL и применяет миграции
func OpenDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.Connect(ctx, cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	migrator, err := NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		pool.Close()
		return nil, err
	}
	defer migrator.Close()

	if err := migrator.Run(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("Connected to database")
	return pool, nil
}

func (a *App) enableAutoApprove(ctx context.Context) error {
	settings, err := a.services.Admin.Settings(ctx)
	if err != nil {
		return err
	}
	if settings.AutoApprove {
		return nil
	}
	settings.AutoApprove = true
	_, err = a.services.Admin.UpdateSettings(ctx, settings)
	return err
}

// Run обслуживает HTTP до отмены ctx, затем плавно останавливает сервер
func (a *App) Run(ctx context.Context) error {
	if a.scheduler != nil {
		a.scheduler.Start(ctx)
		defer a.scheduler.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.cfg.HTTPAddr))
		if err := a.echo.Start(a.cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

// Close освобождает соединения с базой
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
