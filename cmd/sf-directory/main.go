package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/trinhdvt/storefront/internal/config"
	"github.com/trinhdvt/storefront/internal/http"
	"github.com/trinhdvt/storefront/internal/log"
	"github.com/trinhdvt/storefront/internal/repository"
	"github.com/trinhdvt/storefront/internal/service"
	"github.com/trinhdvt/storefront/internal/storage/db"
	"github.com/trinhdvt/storefront/internal/telemetry"
	"github.com/trinhdvt/storefront/pkg/cmdutil"
	"github.com/trinhdvt/storefront/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("error running directory application: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	time.Local = time.UTC

	type Config struct {
		Log      config.Log
		Postgres config.Postgres
		HTTP     config.HTTP
		Otel     config.Otel
	}
	cfg, err := config.New[Config]()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := log.NewSlogLogger(cfg.Log)

	cleanupTracer, err := telemetry.InitTracer(ctx, cfg.Otel)
	if err != nil {
		return fmt.Errorf("error initializing tracer: %w", err)
	}
	defer func() {
		if err := cleanupTracer(ctx); err != nil {
			logger.ErrorContext(ctx, "error cleaning up tracer", slog.Any("error", err))
		}
	}()

	pgxPool, err := db.NewPgxPool(ctx, cfg.Postgres)
	if err != nil {
		return fmt.Errorf("error creating pgx pool: %w", err)
	}
	defer pgxPool.Close()

	dbClient := db.NewClient(pgxPool)

	userRepository := repository.NewUserRepository(dbClient)
	userService := service.NewUserService(userRepository)

	validate := validator.NewDefaultValidator()

	svc := http.New(cfg.HTTP, logger,
		http.NewUserHandler(logger, userService, validate),
		http.NewHealthHandler(logger, "User Directory Service", dbClient),
		http.NewPasswordHashHandler(logger),
	)

	cleanup, err := svc.Run(ctx)
	if err != nil {
		return fmt.Errorf("error running http service: %w", err)
	}

	logger.InfoContext(ctx, "http service started", slog.String("address", fmt.Sprintf(":%d", cfg.HTTP.Port)))

	<-cmdutil.InterruptChan()

	logger.InfoContext(ctx, "http service is shutting down")
	if err := cleanup(ctx); err != nil {
		logger.ErrorContext(ctx, "error shutting down http service", slog.Any("error", err))
	}

	logger.InfoContext(ctx, "http service is stopped")

	return nil
}
