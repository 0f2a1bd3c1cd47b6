package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"legislativelens/internal/blob/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestStore_PutGetHeadList(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	info, err := store.Put(ctx, "118/bills.json", bytes.NewReader([]byte("[]")), core.PutOptions{ContentType: "application/json", Metadata: map[string]string{"k": "v"}})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "118/bills.json" || info.Size != 2 || info.ETag == "" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := store.Put(ctx, "118/bills.json", bytes.NewReader([]byte("x")), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	h, err := store.Head(ctx, "118/bills.json")
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	g, rc, err := store.Get(ctx, "118/bills.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	if err := rc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if string(b) != "[]" || g.ETag != h.ETag || g.Metadata["k"] != "v" {
		t.Fatalf("unexpected get artifacts %+v", g)
	}
	list, err := store.List(ctx, "118/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Key != "118/bills.json" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestStore_PutOverwrite(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	if _, err := store.Put(ctx, "members.json", bytes.NewReader([]byte("[1]")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	info, err := store.Put(ctx, "members.json", bytes.NewReader([]byte("[1,2]")), core.PutOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if info.Size != 5 {
		t.Fatalf("expected overwritten size 5, got %d", info.Size)
	}
}

func TestStore_PlainFixtureFilesWithoutSidecar(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "committees.json"), []byte(`[{"committeeId":"HSAP"}]`), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	info, rc, err := store.Get(ctx, "committees.json")
	if err != nil {
		t.Fatalf("get plain file: %v", err)
	}
	defer func() { _ = rc.Close() }()
	if info.ContentType != "application/json" {
		t.Fatalf("expected guessed json content type, got %q", info.ContentType)
	}
	if info.Size == 0 {
		t.Fatalf("expected size from stat")
	}
	list, err := store.List(ctx, "")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v %+v", err, list)
	}
}

func TestStore_MissingKeyIsNotFound(t *testing.T) {
	store := newTempStore(t)
	if _, _, err := store.Get(context.Background(), "bills.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := os.MkdirAll(filepath.Join(store.Root(), "dir"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := store.Head(context.Background(), "dir"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected directories to be not found, got %v", err)
	}
}

func TestStore_CorruptSidecar(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	if _, err := store.Put(ctx, "bills.json", bytes.NewReader([]byte("[]")), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	_, metaPath, _ := store.pathFor("bills.json")
	if err := os.WriteFile(metaPath, []byte("{"), 0o600); err != nil {
		t.Fatalf("corrupt meta: %v", err)
	}
	if _, err := store.Head(ctx, "bills.json"); err == nil {
		t.Fatalf("expected decode error for corrupt sidecar")
	}
}

type errorReader struct{}

func (errorReader) Read(p []byte) (int, error) { return 0, errors.New("boom") }

func TestStore_PutCopyError(t *testing.T) {
	store := newTempStore(t)
	if _, err := store.Put(context.Background(), "bad.bin", errorReader{}, core.PutOptions{}); err == nil {
		t.Fatalf("expected copy error")
	}
}

func TestSanitizeKeyErrors(t *testing.T) {
	for _, c := range []string{"", "../escape", "/abs", "a/../b"} {
		if _, err := sanitizeKey(c); err == nil {
			t.Fatalf("expected error for %q", c)
		}
	}
	if got, err := sanitizeKey("a//b.json"); err != nil || got != "a/b.json" {
		t.Fatalf("unexpected clean key %q %v", got, err)
	}
}
