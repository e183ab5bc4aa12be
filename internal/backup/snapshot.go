package backup

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"stocksphere/internal/models"
	"stocksphere/internal/store"

	"go.uber.org/zap"
)

const (
	snapshotPrefix = "snapshots/"
	timestampFmt   = "20060102T150405.000Z"
	contentType    = "application/json"
)

var ErrNoSnapshots = errors.New("no snapshots found")

// StoreSource is the part of the local store a snapshot reads and restores.
type StoreSource interface {
	Key() string
	Snapshot(ctx context.Context) (*models.Store, error)
	Save(ctx context.Context, st *models.Store) error
}

// SnapshotService copies the store document to and from object storage
type SnapshotService struct {
	objects ObjectStorage
	store   StoreSource
	log     *zap.Logger
	now     func() time.Time
}

func NewSnapshotService(objects ObjectStorage, store StoreSource, log *zap.Logger) *SnapshotService {
	if log == nil {
		log = zap.NewNop()
	}
	return &SnapshotService{objects: objects, store: store, log: log.Named("backup"), now: time.Now}
}

// Backup writes the current document to snapshots/<key>-<UTC timestamp>.json
// and returns the object name. Nothing is uploaded when the store cannot be
// read.
func (s *SnapshotService) Backup(ctx context.Context) (string, error) {
	st, err := s.store.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read store: %w", err)
	}
	data, err := store.Encode(st)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%s%s-%s.json", snapshotPrefix, s.store.Key(), s.now().UTC().Format(timestampFmt))
	if err := s.objects.PutObject(ctx, name, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}

	s.log.Info("snapshot written", zap.String("object", name), zap.Int("bytes", len(data)))
	return name, nil
}

// Restore replaces the document with a snapshot. An empty name restores the
// newest snapshot of this store key. The snapshot is validated before
// anything is written.
func (s *SnapshotService) Restore(ctx context.Context, name string) (string, error) {
	if name == "" {
		latest, err := s.Latest(ctx)
		if err != nil {
			return "", err
		}
		name = latest
	}

	data, err := s.objects.GetObject(ctx, name)
	if err != nil {
		return "", fmt.Errorf("failed to download snapshot: %w", err)
	}
	st, err := store.Decode(data)
	if err != nil {
		return "", fmt.Errorf("snapshot %s: %w", name, err)
	}
	if err := s.store.Save(ctx, st); err != nil {
		return "", err
	}

	s.log.Info("snapshot restored", zap.String("object", name),
		zap.Int("items", len(st.Inventory)), zap.Int("suppliers", len(st.Suppliers)))
	return name, nil
}

// Latest returns the newest snapshot name for this store key.
func (s *SnapshotService) Latest(ctx context.Context) (string, error) {
	names, err := s.objects.ListObjects(ctx, snapshotPrefix+s.store.Key()+"-")
	if err != nil {
		return "", fmt.Errorf("failed to list snapshots: %w", err)
	}
	if len(names) == 0 {
		return "", ErrNoSnapshots
	}
	// Timestamps are fixed width, so lexical order is chronological.
	sort.Strings(names)
	return names[len(names)-1], nil
}

func (s *SnapshotService) Ping(ctx context.Context) error {
	return s.objects.Ping(ctx)
}
