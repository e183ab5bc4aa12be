package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

type mysqlBackend struct {
	db *sql.DB
}

func NewMySQLBackend(db *sql.DB) Backend {
	return &mysqlBackend{db: db}
}

// EnsureMySQLSchema creates the kv_store table when missing.
func EnsureMySQLSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS kv_store (
			`+"`key`"+` VARCHAR(191) PRIMARY KEY,
			value LONGTEXT NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			expires_at DATETIME(3) NULL
		)`)
	if err != nil {
		return fmt.Errorf("create kv_store: %w", err)
	}
	return nil
}

func (m *mysqlBackend) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := m.db.QueryRowContext(ctx, "SELECT value FROM kv_store WHERE `key` = ? AND (expires_at IS NULL OR expires_at > NOW(3))", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", fmt.Errorf("query kv_store: %w", err)
	}
	return value, nil
}

func (m *mysqlBackend) Set(ctx context.Context, key, value string) error {
	_, err := m.db.ExecContext(ctx,
		"INSERT INTO kv_store (`key`, value, expires_at) VALUES (?, ?, NULL) ON DUPLICATE KEY UPDATE value = VALUES(value), expires_at = NULL",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("upsert kv_store: %w", err)
	}
	return nil
}

// SetWithTTL also purges rows that have already expired, so short lived
// values do not accumulate.
func (m *mysqlBackend) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return m.Set(ctx, key, value)
	}

	if _, err := m.db.ExecContext(ctx, "DELETE FROM kv_store WHERE expires_at <= NOW(3)"); err != nil {
		return fmt.Errorf("purge kv_store: %w", err)
	}

	_, err := m.db.ExecContext(ctx,
		"INSERT INTO kv_store (`key`, value, expires_at) VALUES (?, ?, NOW(3) + INTERVAL ? MICROSECOND) ON DUPLICATE KEY UPDATE value = VALUES(value), expires_at = VALUES(expires_at)",
		key, value, ttl.Microseconds(),
	)
	if err != nil {
		return fmt.Errorf("upsert kv_store: %w", err)
	}
	return nil
}

func (m *mysqlBackend) Delete(ctx context.Context, key string) error {
	if _, err := m.db.ExecContext(ctx, "DELETE FROM kv_store WHERE `key` = ?", key); err != nil {
		return fmt.Errorf("delete kv_store: %w", err)
	}
	return nil
}

func (m *mysqlBackend) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}
