package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrKeyNotFound is returned by Get when nothing is stored under the key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrQuotaExceeded is returned by a backend that refuses a write for size.
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Backend is a string key-value store holding whole serialized documents.
type Backend interface {
	// Get returns the value for key or ErrKeyNotFound
	Get(ctx context.Context, key string) (string, error)

	// Set overwrites the value for key in a single write. The value never
	// expires.
	Set(ctx context.Context, key, value string) error

	// SetWithTTL is Set for values that expire after ttl; a non-positive ttl
	// behaves like Set
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete removes key; deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Ping checks the backend is reachable
	Ping(ctx context.Context) error
}
