package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	portssvc "github.com/antusaha970/member-management-backend-sub000/internal/core/ports/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/core/services"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/cache"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/config"
	"github.com/antusaha970/member-management-backend-sub000/internal/platform/idgen"
	"github.com/antusaha970/member-management-backend-sub000/internal/repositories/database/pgsql"
	"github.com/antusaha970/member-management-backend-sub000/internal/utils"
	"github.com/antusaha970/member-management-backend-sub000/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "clubledger",
	Short: "Club ledger backend",
	Long: `clubledger issues member invoices, applies payments and keeps the
transaction, payment, sale, income and due ledgers in step.

Configuration is read from the environment (and a .env file when present).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", slog.String("error", err.Error()))
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

// app bundles everything a command needs once configuration is loaded.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	pool      *pgxpool.Pool
	services  *portssvc.ServiceContainer
	analytics *utils.PosthogClientWrapper
}

func newLogger() *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	return logger
}

// loadApp loads configuration, connects to the database and wires services.
// Callers must call close.
func loadApp(ctx context.Context) (*app, error) {
	logger := newLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, database.PoolOptions{})
	if err != nil {
		return nil, fmt.Errorf("initialize database pool: %w", err)
	}

	analytics := utils.InitializePosthogClient(cfg.PostHogAPIKey, cfg.PostHogEndpoint, logger)
	container := services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool), services.Collaborators{
		Cache:     cache.NewLRUStore(cfg.CacheSize, cfg.CacheTTL),
		Numbers:   idgen.New(),
		Analytics: analytics,
		Logger:    logger,
	})

	return &app{
		cfg:       cfg,
		logger:    logger,
		pool:      pool,
		services:  container,
		analytics: analytics,
	}, nil
}

func (a *app) close() {
	a.analytics.Close()
	database.ClosePgxPool(a.pool)
}
