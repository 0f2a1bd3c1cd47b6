package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"legislativelens/internal/blob/core"
)

func TestStore_MockedFixtureFlow(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if store.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	payload := []byte(`[{"billType":"HR","billNumber":"1"}]`)
	info, err := store.Put(ctx, "118/bills.json", bytes.NewReader(payload), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "118/bills.json" || info.Size != int64(len(payload)) {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := store.Put(ctx, "118/bills.json", bytes.NewReader(payload), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := store.Put(ctx, "118/bills.json", bytes.NewReader([]byte("[]")), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, rc, err := store.Get(ctx, "118/bills.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "[]" {
		t.Fatalf("unexpected body %q", body)
	}
	list, err := store.List(ctx, "118/")
	if err != nil || len(list) != 1 || list[0].Key != "118/bills.json" {
		t.Fatalf("list: %v %+v", err, list)
	}
}

func TestStore_MissingKeysMapToNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if _, _, err := store.Get(ctx, "members.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected get ErrNotFound, got %v", err)
	}
	if _, err := store.Head(ctx, "members.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected head ErrNotFound, got %v", err)
	}
}

func TestStore_NewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
	store, err := New(context.Background(), Config{Bucket: "fixtures", Endpoint: "http://localhost:9000", PathStyle: true, AccessKeyID: "a", SecretAccessKey: "b"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if store.bucket != "fixtures" {
		t.Fatalf("unexpected bucket %s", store.bucket)
	}
}

func TestDecodeChunked(t *testing.T) {
	if got, ok := decodeChunked([]byte("2\r\n[]\r\n0\r\n\r\n")); !ok || string(got) != "[]" {
		t.Fatalf("decode: %q %v", got, ok)
	}
	if _, ok := decodeChunked([]byte("plain body")); ok {
		t.Fatalf("expected plain body to be left alone")
	}
}
