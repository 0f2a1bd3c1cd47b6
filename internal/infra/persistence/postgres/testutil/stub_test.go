package testutil

import (
	"context"
	"database/sql/driver"
	"testing"
)

func TestStubConnUpsertsOnConflict(t *testing.T) {
	ctx := context.Background()
	_, conn := NewStubDB()
	insert := "INSERT INTO state(bucket,payload) VALUES($1,$2) ON CONFLICT(bucket) DO UPDATE SET payload=EXCLUDED.payload"
	for _, payload := range []string{"[1]", "[2]"} {
		if _, err := conn.ExecContext(ctx, insert, []driver.NamedValue{{Value: "bills"}, {Value: []byte(payload)}}); err != nil {
			t.Fatalf("exec: %v", err)
		}
	}
	if got := len(conn.Tables["state"]); got != 1 {
		t.Fatalf("expected one row after upsert, got %d", got)
	}
	rows, err := conn.QueryContext(ctx, "SELECT bucket, payload FROM state", nil)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	dest := make([]driver.Value, 2)
	if err := rows.Next(dest); err != nil {
		t.Fatalf("next: %v", err)
	}
	if dest[0] != "bills" || string(dest[1].([]byte)) != "[2]" {
		t.Fatalf("unexpected row %v", dest)
	}
}

func TestStubConnRejectsUnparsableSelect(t *testing.T) {
	_, conn := NewStubDB()
	if _, err := conn.QueryContext(context.Background(), "PRAGMA table_info(state)", nil); err == nil {
		t.Fatalf("expected parse error")
	}
}
