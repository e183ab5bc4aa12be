package main

import (
	"context"
	"fmt"

	"stocksphere/internal/analytics"
	"stocksphere/internal/auth"
	"stocksphere/internal/backup"
	"stocksphere/internal/config"
	"stocksphere/internal/jobs"
	"stocksphere/internal/storage"
	"stocksphere/internal/store"
	"stocksphere/pkg/database"

	"go.uber.org/zap"
)

// app holds the long-lived services every command shares.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	backend   storage.Backend
	store     *store.LocalStore
	sessions  auth.SessionManager
	analytics *analytics.AnalyticsService
	alerts    *jobs.LowStockAlertService
	snapshots *backup.SnapshotService // nil when backups are not configured

	closers []func()
}

func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	backend, err := a.openBackend(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.backend = backend

	opts := []store.Option{
		store.WithKey(cfg.Storage.Key),
		store.WithInitialStockTransactions(cfg.Storage.RecordInitialStock),
	}
	if cfg.Storage.SeedFile != "" {
		seed, err := store.LoadSeedFile(cfg.Storage.SeedFile)
		if err != nil {
			a.Close()
			return nil, err
		}
		opts = append(opts, store.WithSeed(seed))
	}
	a.store = store.New(backend, log, opts...)

	var verifier auth.CredentialVerifier
	if cfg.AuthEnabled() {
		v, err := auth.NewBcryptVerifier(cfg.Auth.Username, cfg.Auth.PasswordHash)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("auth: %w", err)
		}
		verifier = v
	}
	if cfg.GeneratedSecret {
		log.Warn("no JWT secret configured, using a generated one; sessions will not survive a restart")
	}
	a.sessions = auth.NewSessionManager(backend, verifier, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL.Duration, log)

	a.analytics = analytics.NewAnalyticsService(a.store, log)
	a.alerts = jobs.NewLowStockAlertService(a.store, log)

	if cfg.BackupEnabled() {
		objects, err := backup.NewMinioStorage(cfg.Backup.Endpoint, cfg.Backup.AccessKey, cfg.Backup.SecretKey, cfg.Backup.UseSSL, cfg.Backup.Bucket)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("backup storage: %w", err)
		}
		if err := objects.EnsureBucket(ctx); err != nil {
			log.Warn("backup bucket unavailable", zap.String("bucket", cfg.Backup.Bucket), zap.Error(err))
		}
		a.snapshots = backup.NewSnapshotService(objects, a.store, log)
	}

	return a, nil
}

func (a *app) openBackend(ctx context.Context) (storage.Backend, error) {
	switch a.cfg.Storage.Backend {
	case config.BackendRedis:
		client := storage.NewRedisClient(a.cfg.Redis.Addr, a.cfg.Redis.Password, a.cfg.Redis.DB)
		a.closers = append(a.closers, func() { _ = client.Close() })
		return storage.NewRedisBackend(client, ""), nil

	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, a.cfg.Postgres.URL, a.log)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		if err := storage.EnsurePostgresSchema(ctx, pool); err != nil {
			return nil, fmt.Errorf("postgres schema: %w", err)
		}
		return storage.NewPostgresBackend(pool), nil

	case config.BackendMySQL:
		db, err := database.NewMySQL(ctx, a.cfg.MySQL.DSN, a.log)
		if err != nil {
			return nil, fmt.Errorf("mysql: %w", err)
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		if err := storage.EnsureMySQLSchema(ctx, db); err != nil {
			return nil, fmt.Errorf("mysql schema: %w", err)
		}
		return storage.NewMySQLBackend(db), nil

	default:
		return storage.NewMemoryBackend(a.cfg.Storage.MemoryQuota), nil
	}
}

// requireSnapshots is used by commands that cannot run without object storage.
func (a *app) requireSnapshots() (*backup.SnapshotService, error) {
	if a.snapshots == nil {
		return nil, fmt.Errorf("backups are not configured: set MINIO_ENDPOINT")
	}
	return a.snapshots, nil
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	_ = a.log.Sync()
}
