package memory

import (
	"context"
	"testing"

	"legislativelens/pkg/domain"
)

func TestStoreLoadBeforeSave(t *testing.T) {
	store := NewStore()
	_, ok, err := store.Load(context.Background())
	if err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}
}

func TestStoreSaveReplacesSnapshot(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	first := domain.Snapshot{Members: []domain.Member{{BioguideID: "S001184"}, {BioguideID: "P000595"}}}
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := domain.Snapshot{Members: []domain.Member{{BioguideID: "C001087"}}, Meta: domain.SnapshotMeta{Source: "memory:"}}
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if len(got.Members) != 1 || got.Members[0].BioguideID != "C001087" || got.Meta.Source != "memory:" {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	got.Members[0].BioguideID = "mutated"
	again, _, _ := store.Load(ctx)
	if again.Members[0].BioguideID != "C001087" {
		t.Fatalf("loaded snapshot must not alias stored state")
	}
}

func TestStoreHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewStore().Save(ctx, domain.Snapshot{}); err == nil {
		t.Fatalf("expected context error")
	}
}
