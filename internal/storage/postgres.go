package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of *pgxpool.Pool the backend needs.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type postgresBackend struct {
	db PgxPool
}

func NewPostgresBackend(db PgxPool) Backend {
	return &postgresBackend{db: db}
}

// EnsurePostgresSchema creates the kv_store table when missing.
func EnsurePostgresSchema(ctx context.Context, db PgxPool) error {
	query := `
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ
		)
	`
	if _, err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (p *postgresBackend) Get(ctx context.Context, key string) (string, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())`
	err := p.db.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrKeyNotFound
		}
		return "", fmt.Errorf("query kv_store: %w", err)
	}
	return value, nil
}

func (p *postgresBackend) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (key, value, updated_at, expires_at)
		VALUES ($1, $2, NOW(), NULL)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW(), expires_at = NULL
	`
	if _, err := p.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("upsert kv_store: %w", err)
	}
	return nil
}

// SetWithTTL also purges rows that have already expired, so short lived
// values do not accumulate.
func (p *postgresBackend) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return p.Set(ctx, key, value)
	}

	if _, err := p.db.Exec(ctx, `DELETE FROM kv_store WHERE expires_at <= NOW()`); err != nil {
		return fmt.Errorf("purge kv_store: %w", err)
	}

	query := `
		INSERT INTO kv_store (key, value, updated_at, expires_at)
		VALUES ($1, $2, NOW(), NOW() + $3 * INTERVAL '1 millisecond')
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW(), expires_at = EXCLUDED.expires_at
	`
	if _, err := p.db.Exec(ctx, query, key, value, ttl.Milliseconds()); err != nil {
		return fmt.Errorf("upsert kv_store: %w", err)
	}
	return nil
}

func (p *postgresBackend) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_store WHERE key = $1`
	if _, err := p.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("delete kv_store: %w", err)
	}
	return nil
}

func (p *postgresBackend) Ping(ctx context.Context) error {
	return p.db.Ping(ctx)
}
