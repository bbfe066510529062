package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/blitzfilter/item-read/internal/core/config"
	"github.com/blitzfilter/item-read/internal/core/storage/postgres"
	"github.com/blitzfilter/item-read/internal/migrations"
	"github.com/blitzfilter/item-read/internal/projection"
	"github.com/blitzfilter/item-read/internal/query"
	"github.com/blitzfilter/item-read/internal/server"
)

func main() {
	configPath := flag.String("config", corecfg.DefaultPath, "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger (level is raised once config is loaded)
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	level.Set(cfg.Log.SlogLevel())
	slog.Info("Loaded config",
		"addr", cfg.Server.Addr(),
		"mode", cfg.Server.Mode,
		"page_size", cfg.Query.PageSize,
		"max_pages", cfg.Query.MaxPages,
		"query_timeout", cfg.Database.QueryTimeout,
		"log_level", cfg.Log.Level,
	)

	// 2. Initialize Storage (PostgreSQL)
	dbAdapter, err := postgres.NewAdapter(
		cfg.Database.DSN,
		cfg.Database.MaxOpenConns,
		cfg.Database.MaxIdleConns,
	)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer dbAdapter.Close()

	// 2.1. Run Database Migrations, then prepare the read statements
	if err := migrations.RunMigrations(dbAdapter.DB(), cfg.Database.AutoMigrate); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	if err := dbAdapter.Prepare(); err != nil {
		slog.Error("Failed to prepare event store", "error", err)
		os.Exit(1)
	}

	// 3. Initialize Query + Projection (read API)
	querySvc := query.NewService(dbAdapter, query.Options{
		PageSize: cfg.Query.PageSize,
		MaxPages: cfg.Query.MaxPages,
	})
	projectionSvc := projection.NewService(querySvc, cfg.Database.QueryTimeout)

	// 4. Initialize Server
	srv := server.New(cfg.Server.Addr(), dbAdapter, cfg.Server.Mode)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 5. Start Services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}
