package postgres

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"legislativelens/internal/infra/persistence/postgres/testutil"
	"legislativelens/pkg/domain"
)

func openStub(t *testing.T) (*Store, *testutil.StubConn) {
	t.Helper()
	db, conn := testutil.NewStubDB()
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	t.Cleanup(restore)
	store, err := NewStore(context.Background(), "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store, conn
}

func TestNewStoreEnsuresStateTable(t *testing.T) {
	_, conn := openStub(t)
	if len(conn.Execs) == 0 || !strings.Contains(conn.Execs[0], "CREATE TABLE IF NOT EXISTS state") {
		t.Fatalf("expected state DDL, got %v", conn.Execs)
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	store, conn := openStub(t)
	if _, ok, err := store.Load(ctx); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
	snap := domain.Snapshot{
		Members: []domain.Member{{BioguideID: "P000595", Chamber: domain.ChamberSenate, ChamberLabel: "Senate"}},
		Meta:    domain.SnapshotMeta{Source: "s3:118", Quarantined: 1},
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if got := len(conn.Tables["state"]); got != 4 {
		t.Fatalf("expected 4 bucket rows, got %d", got)
	}
	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got.Members) != 1 || got.Members[0].ChamberLabel != "Senate" || got.Meta.Quarantined != 1 {
		t.Fatalf("unexpected snapshot %+v", got)
	}
}

func TestStoreSaveSurfacesCommitFailure(t *testing.T) {
	store, conn := openStub(t)
	conn.FailCommit = true
	if err := store.Save(context.Background(), domain.Snapshot{}); err == nil || !strings.Contains(err.Error(), "commit") {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestNewStorePingFailure(t *testing.T) {
	db, conn := testutil.NewStubDB()
	conn.FailPing = true
	restore := OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil })
	defer restore()
	if _, err := NewStore(context.Background(), "postgres://example"); err == nil {
		t.Fatalf("expected ping error")
	}
}
