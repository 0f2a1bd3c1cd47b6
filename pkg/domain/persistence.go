package domain

import (
	"context"
	"time"
)

// SnapshotMeta describes where a persisted catalog came from.
type SnapshotMeta struct {
	Source      string    `json:"source"`
	CreatedAt   time.Time `json:"created_at"`
	Quarantined int       `json:"quarantined"`
}

// Snapshot is the transformed catalog in persistable form.
type Snapshot struct {
	Bills      []Bill       `json:"bills"`
	Members    []Member     `json:"members"`
	Committees []Committee  `json:"committees"`
	Meta       SnapshotMeta `json:"meta"`
}

// SnapshotStore is a minimal abstraction over durable snapshot backends.
// Load reports ok=false when no snapshot has been saved yet.
type SnapshotStore interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context) (snapshot Snapshot, ok bool, err error)
	Close() error
}

// CatalogStats summarizes a loaded catalog. Committees counts loaded
// committees only; FallbackCommittee reports that the sample committee is
// being served in their place.
type CatalogStats struct {
	Bills             int       `json:"bills"`
	Members           int       `json:"members"`
	Committees        int       `json:"committees"`
	FallbackCommittee bool      `json:"fallbackCommittee,omitempty"`
	Quarantined       int       `json:"quarantined"`
	Source            string    `json:"source"`
	LoadedAt          time.Time `json:"loadedAt"`
}

// BillQuery combines bill filters; empty fields are ignored and the rest must
// all match.
type BillQuery struct {
	Sponsor    string
	Status     string
	Committee  string
	ReferredTo string
}

// MemberQuery combines member filters; empty fields are ignored.
type MemberQuery struct {
	State   string
	Chamber string
	Party   string
}
