package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/text/language"

	"github.com/dtroode/shopfront/internal/catalog"
	"github.com/dtroode/shopfront/internal/config"
	"github.com/dtroode/shopfront/internal/logger"
	"github.com/dtroode/shopfront/internal/model"
	"github.com/dtroode/shopfront/internal/repository/sqlkv"
	"github.com/dtroode/shopfront/internal/service"
	"github.com/dtroode/shopfront/internal/storage/file"
	"github.com/dtroode/shopfront/internal/storage/kv"
	"github.com/dtroode/shopfront/internal/storage/memory"
	storage "github.com/dtroode/shopfront/internal/storage/minio"
)

// app wires the services shared by every command.
type app struct {
	cfg     *config.Config
	logger  *logger.Logger
	session *service.Session
	source  *catalog.Source
	catalog *service.Catalog
	guard   *service.Guard
	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, logger *logger.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	backend, closer, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if closer != nil {
		a.closers = append(a.closers, closer)
	}

	a.session, err = service.NewSession(ctx, kv.NewStore(backend, logger), logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.guard = service.NewGuard(a.session)

	tag, err := language.Parse(cfg.Catalog.Language)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to parse catalog language: %w", err)
	}

	a.source, err = catalog.NewSource(catalog.SourceOptions{
		BaseURL:               cfg.Catalog.URL,
		Limit:                 cfg.Catalog.Limit,
		AllowInsecureFallback: cfg.Catalog.AllowInsecureFallback,
		Client:                &http.Client{Timeout: cfg.Catalog.Timeout},
	}, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.catalog = service.NewCatalog(a.source, catalog.NewPipeline(tag), cfg.Catalog.PageSize, logger)

	return a, nil
}

// Close releases the storage backend.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openBackend(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.Backend, func() error, error) {
	switch model.StorageBackend(cfg.Storage.Backend) {
	case model.StorageBackendMemory:
		return memory.NewBackend(), nil, nil
	case model.StorageBackendFile:
		return file.NewBackend(cfg.Storage.FilePath, logger), nil, nil
	case model.StorageBackendSQLite:
		conn, err := sqlkv.NewConnection(ctx, sqlkv.SQLite, cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return sqlkv.NewKVRepository(conn), conn.Close, nil
	case model.StorageBackendPostgres:
		conn, err := sqlkv.NewConnection(ctx, sqlkv.Postgres, cfg.Database.DSN, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return sqlkv.NewKVRepository(conn), conn.Close, nil
	case model.StorageBackendMinio:
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		client, err := storage.NewClient(ctx, minioClient, cfg.Minio.Bucket, cfg.Minio.Prefix)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize minio storage: %w", err)
		}
		return client, nil, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// checkRoute checks route against the guard and turns a redirect into an error.
func (a *app) checkRoute(route model.Route) error {
	d := a.guard.Check(route)
	if d.Allowed {
		return nil
	}
	if d.RedirectTo == model.RouteSignIn {
		return fmt.Errorf("%w: run login first", model.ErrNotLoggedIn)
	}
	return fmt.Errorf("%w: run logout first", model.ErrAlreadyLoggedIn)
}
