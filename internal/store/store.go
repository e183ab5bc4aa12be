package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"stocksphere/internal/models"
	"stocksphere/internal/storage"

	"go.uber.org/zap"
)

// DefaultKey is the backend key the document is stored under.
const DefaultKey = "stock_sphere_db"

var (
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInsufficientStock  = errors.New("insufficient stock")
)

// errUnchanged aborts a mutation without writing anything back.
var errUnchanged = errors.New("unchanged")

type Option func(*LocalStore)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(s *LocalStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithClock replaces time.Now, used for id allocation and default dates.
func WithClock(now func() time.Time) Option {
	return func(s *LocalStore) {
		s.now = now
	}
}

// WithInitialStockTransactions controls whether CreateItem records an Inward
// transaction for the opening quantity.
func WithInitialStockTransactions(enabled bool) Option {
	return func(s *LocalStore) {
		s.recordInitialStock = enabled
	}
}

// WithSeed replaces the default seed document.
func WithSeed(seed func() *models.Store) Option {
	return func(s *LocalStore) {
		s.seed = seed
	}
}

// LocalStore owns the persisted Store document. Each instance serializes its
// own mutations; writers in other processes sharing the key are not
// coordinated and the last write wins.
type LocalStore struct {
	backend            storage.Backend
	log                *zap.Logger
	key                string
	now                func() time.Time
	seed               func() *models.Store
	recordInitialStock bool

	mu     sync.Mutex
	lastID int64
}

func New(backend storage.Backend, log *zap.Logger, opts ...Option) *LocalStore {
	s := &LocalStore{
		backend:            backend,
		log:                log,
		key:                DefaultKey,
		now:                time.Now,
		seed:               SeedStore,
		recordInitialStock: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

// Key returns the backend key holding the document.
func (s *LocalStore) Key() string {
	return s.key
}

// Ping checks the backend.
func (s *LocalStore) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

// Initialize writes the seed document when nothing is stored yet. Existing
// content, even unparseable content, is never overwritten.
func (s *LocalStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.backend.Get(ctx, s.key)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}

	s.log.Info("seeding store", zap.String("key", s.key))
	return s.save(ctx, s.seed())
}

// Load returns the persisted document, or the seed when it is missing,
// malformed or unreadable. It never fails.
func (s *LocalStore) Load(ctx context.Context) *models.Store {
	st, err := s.read(ctx)
	if err == nil {
		return st
	}

	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
	case errors.Is(err, ErrMalformedState):
		s.log.Warn("persisted store is malformed, using seed data", zap.String("key", s.key), zap.Error(err))
	default:
		s.log.Warn("reading store failed, using seed data", zap.String("key", s.key), zap.Error(err))
	}
	return s.seed()
}

// Snapshot returns the persisted document for export. Unlike Load it never
// substitutes seed data for content it could not read: a failing backend
// yields ErrStorageUnavailable and malformed content ErrMalformedState. A
// missing key yields the seed, which is what Initialize would write.
func (s *LocalStore) Snapshot(ctx context.Context) (*models.Store, error) {
	st, err := s.read(ctx)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, storage.ErrKeyNotFound):
		return s.seed(), nil
	case errors.Is(err, ErrMalformedState):
		return nil, err
	default:
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
}

// Save overwrites the whole document in one backend write.
func (s *LocalStore) Save(ctx context.Context, st *models.Store) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, st)
}

// Reset replaces the document with the seed.
func (s *LocalStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, s.seed())
}

func (s *LocalStore) read(ctx context.Context) (*models.Store, error) {
	raw, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, err
	}
	return Decode([]byte(raw))
}

// loadForUpdate behaves like Load except that a failing backend read is
// reported instead of silently building on seed data.
func (s *LocalStore) loadForUpdate(ctx context.Context) (*models.Store, error) {
	st, err := s.read(ctx)
	switch {
	case err == nil:
		return st, nil
	case errors.Is(err, storage.ErrKeyNotFound):
		return s.seed(), nil
	case errors.Is(err, ErrMalformedState):
		s.log.Warn("persisted store is malformed, mutating seed data", zap.String("key", s.key), zap.Error(err))
		return s.seed(), nil
	default:
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
}

func (s *LocalStore) save(ctx context.Context, st *models.Store) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, s.key, string(data)); err != nil {
		s.log.Error("writing store failed", zap.String("key", s.key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	return nil
}

// update runs fn against a fresh copy of the document and writes the result.
// fn returning errUnchanged skips the write.
func (s *LocalStore) update(ctx context.Context, fn func(st *models.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, err := s.loadForUpdate(ctx)
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	return s.save(ctx, st)
}

// nextID hands out time based ids that are strictly increasing for this
// instance and never collide with ids already in st. Callers hold s.mu.
func (s *LocalStore) nextID(st *models.Store) int64 {
	id := s.now().UnixMilli()
	if highest := st.MaxID(); id <= highest {
		id = highest + 1
	}
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
