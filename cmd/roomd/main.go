// Command roomd запускает сервис бронирования переговорных комнат.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Freeeeeet/meeting_rooms/internal/app"
	"github.com/Freeeeeet/meeting_rooms/internal/config"
	"github.com/Freeeeeet/meeting_rooms/internal/repository/postgres"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "roomd",
		Short:         "Meeting room reservation service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	})

	cmd.AddCommand(migrateCmd())

	return cmd
}

// setup загружает конфиг и создаёт логгер
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := app.NewLogger(cfg.Environment)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

func serve(parent context.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting roomd",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Location.String()),
		zap.Bool("postgres", cfg.UsesPostgres()),
	)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize application", zap.Error(err))
		return err
	}
	defer a.Close()

	return a.Run(ctx)
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, mg *app.Migrator) error {
				return mg.Run(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withMigrator(cmd.Context(), func(ctx context.Context, mg *app.Migrator) error {
				version, err := mg.Version(ctx)
				if err != nil {
					return err
				}
				fmt.Println(version)
				return nil
			})
		},
	})

	return cmd
}

func withMigrator(ctx context.Context, fn func(context.Context, *app.Migrator) error) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if !cfg.UsesPostgres() {
		return fmt.Errorf("DB_DSN is required for migrations")
	}

	pool, err := postgres.Connect(ctx, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	mg, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		return err
	}
	defer mg.Close()

	return fn(ctx, mg)
}
