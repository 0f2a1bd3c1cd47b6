package core

import (
	"context"
	"fmt"

	"legislativelens/internal/infra/persistence/memory"
	"legislativelens/internal/infra/persistence/postgres"
	"legislativelens/internal/infra/persistence/sqlite"
	"legislativelens/pkg/domain"
)

// StorageDriver identifies a concrete snapshot storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// SnapshotStore aliases the domain contract for callers of this package.
type SnapshotStore = domain.SnapshotStore

// StorageConfig selects and parameterizes a snapshot store. An empty driver
// means sqlite.
type StorageConfig struct {
	Driver      StorageDriver
	SQLitePath  string
	PostgresDSN string
}

// OpenSnapshotStore opens the configured backend.
func OpenSnapshotStore(ctx context.Context, cfg StorageConfig) (SnapshotStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = StorageSQLite
	}
	switch driver {
	case StorageMemory:
		return memory.NewStore(), nil
	case StorageSQLite:
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case StoragePostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", driver)
	}
}

// SaveSnapshot persists the service's catalog into store.
func SaveSnapshot(ctx context.Context, svc *Service, store SnapshotStore) (domain.SnapshotMeta, error) {
	ctx, span := svc.tracer.Start(ctx, "save_snapshot")
	snap := svc.Snapshot()
	err := store.Save(ctx, snap)
	span.End(err)
	if err != nil {
		svc.logger.Error("snapshot save failed", "error", err)
		return domain.SnapshotMeta{}, fmt.Errorf("save snapshot: %w", err)
	}
	svc.logger.Info("snapshot saved", "bills", len(snap.Bills), "members", len(snap.Members), "committees", len(snap.Committees))
	return snap.Meta, nil
}

// LoadSnapshotService hydrates a service from store. ok is false when the
// store holds no snapshot.
func LoadSnapshotService(ctx context.Context, store SnapshotStore, opts ...Option) (*Service, bool, error) {
	snap, ok, err := store.Load(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return NewServiceFromSnapshot(snap, opts...), true, nil
}
