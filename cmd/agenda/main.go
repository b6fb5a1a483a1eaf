package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/jackc/pgx/v5/pgxpool"

	fiberadapter "github.com/lborres/agenda/adapters/fiber"
	"github.com/lborres/agenda/adapters/firebase"
	"github.com/lborres/agenda/adapters/localauth"
	pgxadapter "github.com/lborres/agenda/adapters/pgx"
	s3adapter "github.com/lborres/agenda/adapters/s3"
	"github.com/lborres/agenda/config"
	"github.com/lborres/agenda/core"
	"github.com/lborres/agenda/services"
)

func setupSlog() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))
}

// backends bundles one adapter set for the external services.
type backends struct {
	identity core.IdentityProvider
	profiles core.ProfileStore
	tasks    core.TaskStore
	blobs    core.BlobStore
	close    func()
}

func buildBackends(ctx context.Context, cfg *config.Config) (*backends, error) {
	switch cfg.Backend {
	case config.BackendFirebase:
		fb, err := firebase.New(ctx, cfg.GoogleCredentialsFile, cfg.StorageBucket)
		if err != nil {
			return nil, err
		}
		return &backends{
			identity: fb,
			profiles: fb,
			tasks:    fb,
			blobs:    fb,
			close:    func() { _ = fb.Close() },
		}, nil

	case config.BackendPostgres:
		if err := pgxadapter.Migrate(cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		pool, err := pgxpool.New(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		store := pgxadapter.New(pool)

		blobs, err := s3adapter.New(ctx, s3adapter.Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Bucket:    cfg.S3Bucket,
		})
		if err != nil {
			pool.Close()
			return nil, err
		}

		return &backends{
			identity: localauth.New(store, []byte(cfg.TokenSecret), cfg.TokenTTL),
			profiles: store,
			tasks:    store,
			blobs:    blobs,
			close:    pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

func main() {
	setupSlog()
	log := slog.Default()

	cfg := config.Load()
	ctx := context.Background()

	be, err := buildBackends(ctx, cfg)
	if err != nil {
		log.Error("backend_initialization_failed", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer be.close()

	authSvc := services.NewAuthService(be.identity, be.profiles, be.blobs, log)
	taskSvc := services.NewTaskService(be.tasks, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: fiberadapter.NewErrorHandler(log),
	})
	app.Use(logger.New())

	fiberadapter.New(app, authSvc, taskSvc).RegisterRoutes()

	log.Info("server_starting", "addr", cfg.Addr, "backend", cfg.Backend)
	if err := app.Listen(cfg.Addr); err != nil {
		log.Error("server_start_failed", "error", err)
		os.Exit(1)
	}
}
